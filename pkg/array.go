package structhash

import (
	"fmt"
	"iter"
)

// NDArray is a fixed-shape array value: a dtype descriptor string in the
// numpy convention ("<f8", "<i4", ...), the dimensions, and the raw
// flattened element buffer. Shape and dtype are part of the hash, so
// reshaping or retyping an array changes its digest even when the underlying
// bytes are identical.
//
// The special dtype "object" marks an array of arbitrary values held in
// Elems. Such arrays cannot be hashed through a raw buffer; a registered
// iterable check routes them into element-wise traversal instead.
type NDArray struct {
	Shape []int
	DType string
	Data  []byte // raw buffer, row-major, for numeric dtypes
	Elems []any  // element values, only for DType == "object"
}

// DTypeObject marks arrays whose elements are arbitrary values.
const DTypeObject = "object"

// itemSize returns the per-element byte width encoded in the dtype
// descriptor, e.g. 8 for "<f8". Unknown descriptors report 0.
func (a NDArray) itemSize() int {
	if len(a.DType) < 3 {
		return 0
	}
	size := 0
	for _, c := range a.DType[2:] {
		if c < '0' || c > '9' {
			return 0
		}
		size = size*10 + int(c-'0')
	}
	return size
}

func (a NDArray) elemCount() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Items iterates the elements of an object-dtype array so the traversal
// engine can walk them.
func (a NDArray) Items() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range a.Elems {
			if !yield(e) {
				return
			}
		}
	}
}

// registerArrayTypes installs the array encoder and the object-dtype
// iterable check into reg.
func registerArrayTypes(reg *Registry) {
	reg.RegisterTypeOf(encodeNDArray, NDArray{})
	reg.AddIterableCheck(func(data any) bool {
		a, ok := data.(NDArray)
		return ok && a.DType == DTypeObject
	})
}

// encodeNDArray hashes a numeric array: a sub-sequence of (ndim, shape),
// then the dtype descriptor entries, then the raw buffer. Object-dtype
// arrays are rejected here; they must either take the iterable path or be
// pre-converted by the caller into nested sequences.
func encodeNDArray(data any, reg *Registry) (Atom, error) {
	a := data.(NDArray)
	if a.DType == DTypeObject {
		return Atom{}, fmt.Errorf("%w: convert to nested sequences first", ErrObjectArray)
	}
	itemSize := a.itemSize()
	if itemSize == 0 {
		return Atom{}, fmt.Errorf("%w: unrecognized dtype %q", ErrUnhashableArray, a.DType)
	}
	if len(a.Data) != a.elemCount()*itemSize {
		return Atom{}, fmt.Errorf("%w: %d bytes for shape %v of %q",
			ErrUnhashableArray, len(a.Data), a.Shape, a.DType)
	}

	shape := make([]any, len(a.Shape))
	for i, d := range a.Shape {
		shape[i] = d
	}
	header, err := HashableSequence([]any{len(a.Shape), shape}, reg)
	if err != nil {
		return Atom{}, err
	}
	// dtype descriptor in the (name, format) pair convention
	descr, err := HashableSequence([]any{[]any{"", a.DType}}, reg)
	if err != nil {
		return Atom{}, err
	}

	payload := make([]byte, 0, len(header)+len(descr)+len(a.Data))
	payload = append(payload, header...)
	payload = append(payload, descr...)
	payload = append(payload, a.Data...)
	return Atom{tagNDArr, payload}, nil
}
