package structhash

import (
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// EncoderFunc reduces a value of a registered type to an Atom. The registry
// is passed through so container encoders can build their payloads with
// HashableSequence, composing with the traversal engine rather than
// special-casing it.
type EncoderFunc func(data any, reg *Registry) (Atom, error)

// IterableCheck flags a value that is neither a native sequence nor a
// mapping but must nonetheless be traversed element-wise.
type IterableCheck func(data any) bool

// Iterable is implemented by extension values that an IterableCheck routes
// into structural traversal.
type Iterable interface {
	Items() iter.Seq[any]
}

type ifaceEntry struct {
	iface reflect.Type
	enc   EncoderFunc
}

// Registry is an open dispatch table from concrete types to encoder
// functions. Resolution picks the most specific match: exact type first,
// then registered interfaces in registration order, then reflect kind. This
// is the Go rendering of most-specific-ancestor dispatch.
//
// A Registry is safe for concurrent use. Re-registering a type is an
// idempotent overwrite, so racing first-use population is harmless.
type Registry struct {
	mu         sync.RWMutex
	types      map[reflect.Type]EncoderFunc
	ifaces     []ifaceEntry
	kinds      map[reflect.Kind]EncoderFunc
	iterChecks []IterableCheck
}

// NewRegistry returns an empty registry with no default encoders. Tests and
// callers that must not touch global state build private instances with it.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[reflect.Type]EncoderFunc),
		kinds: make(map[reflect.Kind]EncoderFunc),
	}
}

// RegisterType associates one or more concrete types with an encoder.
// Registering an already-known type replaces its encoder.
func (r *Registry) RegisterType(enc EncoderFunc, types ...reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		r.types[t] = enc
	}
}

// RegisterTypeOf registers the dynamic types of the given example values.
// Convenience over RegisterType for callers without reflect in scope.
func (r *Registry) RegisterTypeOf(enc EncoderFunc, examples ...any) {
	for _, ex := range examples {
		r.RegisterType(enc, reflect.TypeOf(ex))
	}
}

// RegisterInterface associates an interface type with an encoder. A value
// matches when its type implements the interface and no exact type entry
// exists; earlier registrations win over later ones.
func (r *Registry) RegisterInterface(iface reflect.Type, enc EncoderFunc) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("RegisterInterface needs an interface type, got %v", iface)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.ifaces {
		if e.iface == iface {
			r.ifaces[i].enc = enc
			return nil
		}
	}
	r.ifaces = append(r.ifaces, ifaceEntry{iface, enc})
	return nil
}

// RegisterKind associates a reflect kind with an encoder, the broadest
// dispatch level. The default registry uses it for maps, named numeric
// types, and byte arrays.
func (r *Registry) RegisterKind(k reflect.Kind, enc EncoderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[k] = enc
}

// AddIterableCheck registers a predicate consulted by the traversal engine
// for values that are not native sequences.
func (r *Registry) AddIterableCheck(check IterableCheck) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.iterChecks = append(r.iterChecks, check)
}

// Lookup resolves the most specific registered encoder for data's runtime
// type. An unresolved lookup is a usage error: the caller must register an
// extension for the type.
func (r *Registry) Lookup(data any) (EncoderFunc, error) {
	t := reflect.TypeOf(data)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if enc, ok := r.types[t]; ok {
		return enc, nil
	}
	for _, e := range r.ifaces {
		if t.Implements(e.iface) {
			return e.enc, nil
		}
	}
	if enc, ok := r.kinds[t.Kind()]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("%w %T", ErrNoHashMethod, data)
}

// needsIteration reports whether the traversal engine must walk data
// element-wise. Iterable checks override everything; an exact-type encoder
// registration beats native-sequence classification so slice-backed
// extension values route to their encoder; otherwise non-byte slices and
// arrays and iterator sequences are iterated.
func (r *Registry) needsIteration(data any) bool {
	if data == nil {
		return false
	}
	r.mu.RLock()
	checks := r.iterChecks
	_, exact := r.types[reflect.TypeOf(data)]
	r.mu.RUnlock()
	for _, check := range checks {
		if check(data) {
			return true
		}
	}
	if exact {
		return false
	}
	switch data.(type) {
	case iter.Seq[any], func(func(any) bool):
		return true
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return true
		}
	}
	return false
}

// iterate materializes the elements of an iterable value. Sequences index
// directly; iterator sequences and Iterable extensions are drained.
func (r *Registry) iterate(data any) ([]any, error) {
	switch d := data.(type) {
	case iter.Seq[any]:
		return collectSeq(d), nil
	case func(func(any) bool):
		return collectSeq(d), nil
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			items := make([]any, rv.Len())
			for i := range items {
				items[i] = rv.Index(i).Interface()
			}
			return items, nil
		}
	}
	if it, ok := data.(Iterable); ok {
		return collectSeq(it.Items()), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotIterable, data)
}

func collectSeq(seq func(func(any) bool)) []any {
	var items []any
	seq(func(v any) bool {
		items = append(items, v)
		return true
	})
	return items
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry, populating the default
// encoders on first use. Population is idempotent, so concurrent first use
// from multiple goroutines is safe.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		reg := NewRegistry()
		registerStructuralTypes(reg)
		registerArrayTypes(reg)
		defaultRegistry = reg
	})
	return defaultRegistry
}
