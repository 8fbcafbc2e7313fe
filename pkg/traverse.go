package structhash

import (
	"bytes"
	"io"
)

// The traversal engine converts an arbitrarily nested value into a
// length-free, tag-delimited byte stream and feeds it to an accumulator
// (any io.Writer; hash.Hash satisfies it). Two formulations exist with
// byte-identical output: updateHasher recurses and mirrors the historical
// control flow, updateHasherIterative runs an explicit work stack and is
// what the public entry points use, since input nesting depth is unbounded.
//
// Separator rule, frozen for backward compatibility: every item is followed
// by an item separator EXCEPT the first item at each level that itself needs
// iteration. Earlier renditions discovered nested items by catching a type
// error mid-stream and forgot the separator when switching to the recovery
// path; every digest ever produced depends on that omission, so both engines
// reproduce it deliberately. Do not "fix" this.

// updateHasher walks data depth-first and writes the encoded stream to w.
func updateHasher(w io.Writer, data any, includeTypes bool, reg *Registry) error {
	if !reg.needsIteration(data) {
		atom, err := convertToHashable(data, includeTypes, reg)
		if err != nil {
			return err
		}
		w.Write(atom.Prefix)
		w.Write(atom.Payload)
		return nil
	}
	items, err := reg.iterate(data)
	if err != nil {
		return err
	}
	w.Write(iterOpen)
	fellBack := false
	for _, item := range items {
		if !fellBack && reg.needsIteration(item) {
			// First nested item: recurse with no trailing separator
			// (the legacy omission described above).
			if err := updateHasher(w, item, includeTypes, reg); err != nil {
				return err
			}
			fellBack = true
			continue
		}
		if err := updateHasher(w, item, includeTypes, reg); err != nil {
			return err
		}
		w.Write(itemSep)
	}
	w.Write(iterClose)
	return nil
}

// traversal work item kinds for the iterative engine
type workKind uint8

const (
	workValue workKind = iota // classify and encode or expand
	workBytes                 // emit literal marker/separator bytes
)

type workItem struct {
	kind workKind
	data any
	lit  []byte
}

// updateHasherIterative produces the same stream as updateHasher using an
// explicit stack instead of the call stack, so deeply nested input cannot
// overflow. Children are pushed in reverse with their separators interleaved
// according to the separator rule above.
func updateHasherIterative(w io.Writer, data any, includeTypes bool, reg *Registry) error {
	stack := []workItem{{kind: workValue, data: data}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.kind == workBytes {
			w.Write(item.lit)
			continue
		}
		if !reg.needsIteration(item.data) {
			atom, err := convertToHashable(item.data, includeTypes, reg)
			if err != nil {
				return err
			}
			w.Write(atom.Prefix)
			w.Write(atom.Payload)
			continue
		}
		items, err := reg.iterate(item.data)
		if err != nil {
			return err
		}
		w.Write(iterOpen)
		// Locate the first nested child: it is the one with no trailing
		// separator at this level.
		firstNested := -1
		for i, child := range items {
			if reg.needsIteration(child) {
				firstNested = i
				break
			}
		}
		stack = append(stack, workItem{kind: workBytes, lit: iterClose})
		for i := len(items) - 1; i >= 0; i-- {
			if i != firstNested {
				stack = append(stack, workItem{kind: workBytes, lit: itemSep})
			}
			stack = append(stack, workItem{kind: workValue, data: items[i]})
		}
	}
	return nil
}

// hashTracer records the raw byte stream instead of digesting it. Container
// encoders use it to build payloads from sub-structures.
type hashTracer struct {
	buf bytes.Buffer
}

func (t *hashTracer) Write(p []byte) (int, error) {
	return t.buf.Write(p)
}

// HashableSequence returns the exact byte stream the traversal engine feeds
// to the accumulator for data. Container extensions call it to encode nested
// sub-structures; type prefixes are always included so a container's payload
// is unambiguous regardless of the caller's untyped mode.
func HashableSequence(data any, reg *Registry) ([]byte, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	tracer := &hashTracer{}
	if err := updateHasher(tracer, data, true, reg); err != nil {
		return nil, err
	}
	return tracer.buf.Bytes(), nil
}
