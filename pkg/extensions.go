package structhash

import (
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"reflect"
	"sort"

	"github.com/google/uuid"
)

// Pair is one key/value entry of an OrderedMap.
type Pair struct {
	Key   any
	Value any
}

// OrderedMap is an order-sensitive mapping: entries hash in declared order
// under the ODICT tag, unlike Go maps which are sorted and tagged DICT.
type OrderedMap []Pair

// Span mirrors a slice expression: start, stop and step bounds, any of which
// may be nil. It hashes as the sub-sequence [start, stop, step] under the
// SLICE tag.
type Span struct {
	Start any
	Stop  any
	Step  any
}

// Path is a filesystem-path-like value. It hashes its string form under the
// PATH tag, so equal path text always digests identically regardless of the
// string type it came from.
type Path string

// registerStructuralTypes installs the default encoders for structural and
// common leaf types into reg.
func registerStructuralTypes(reg *Registry) {
	reg.RegisterKind(reflect.Map, encodeMap)
	reg.RegisterKind(reflect.Array, encodeByteArray)

	reg.RegisterTypeOf(encodeOrderedMap, OrderedMap{})
	reg.RegisterTypeOf(encodeSpan, Span{})
	reg.RegisterTypeOf(encodePath, Path(""))
	reg.RegisterTypeOf(encodeUUID, uuid.UUID{})
	reg.RegisterTypeOf(encodeBigInt, (*big.Int)(nil))
	reg.RegisterTypeOf(encodeBigRat, (*big.Rat)(nil))
	reg.RegisterTypeOf(encodeRandState, (*rand.PCG)(nil), (*rand.ChaCha8)(nil))

	// Named scalar types coerce to their native form and re-delegate, the
	// counterpart of registering abstract numeric ancestors.
	for _, k := range []reflect.Kind{
		reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
	} {
		reg.RegisterKind(k, encodeNamedScalar)
	}
}

// encodeMap hashes Go maps. The set convention map[K]struct{} gets the SET
// tag and hashes its sorted keys; any other map gets DICT and hashes its
// entries sorted by key. Both are therefore insensitive to map iteration
// order.
func encodeMap(data any, reg *Registry) (Atom, error) {
	rv := reflect.ValueOf(data)
	isSet := rv.Type().Elem() == reflect.TypeOf(struct{}{})
	// Keys and values are captured in one range pass. Re-indexing the map
	// afterwards would break on nil interface keys and NaN keys, which never
	// match a lookup.
	keys := make([]any, 0, rv.Len())
	vals := make([]any, 0, rv.Len())
	mr := rv.MapRange()
	for mr.Next() {
		keys = append(keys, mr.Key().Interface())
		vals = append(vals, mr.Value().Interface())
	}
	sortKeyed(keys, vals)
	if isSet {
		payload, err := HashableSequence(keys, reg)
		if err != nil {
			return Atom{}, err
		}
		return Atom{tagSet, payload}, nil
	}
	pairs := make([]any, len(keys))
	for i := range keys {
		pairs[i] = []any{keys[i], vals[i]}
	}
	payload, err := HashableSequence(pairs, reg)
	if err != nil {
		return Atom{}, err
	}
	return Atom{tagDict, payload}, nil
}

// encodeOrderedMap hashes entries in their declared order under ODICT.
func encodeOrderedMap(data any, reg *Registry) (Atom, error) {
	om := data.(OrderedMap)
	pairs := make([]any, len(om))
	for i, p := range om {
		pairs[i] = []any{p.Key, p.Value}
	}
	payload, err := HashableSequence(pairs, reg)
	if err != nil {
		return Atom{}, err
	}
	return Atom{tagODict, payload}, nil
}

// encodeSpan hashes the three bounds as a sub-sequence.
func encodeSpan(data any, reg *Registry) (Atom, error) {
	s := data.(Span)
	payload, err := HashableSequence([]any{s.Start, s.Stop, s.Step}, reg)
	if err != nil {
		return Atom{}, err
	}
	return Atom{tagSlice, payload}, nil
}

// encodePath hashes the string form of the path.
func encodePath(data any, _ *Registry) (Atom, error) {
	return Atom{tagPath, []byte(data.(Path))}, nil
}

// encodeUUID hashes the raw 16 bytes of the UUID.
func encodeUUID(data any, _ *Registry) (Atom, error) {
	u := data.(uuid.UUID)
	return Atom{tagUUID, u[:]}, nil
}

// encodeBigInt re-delegates an arbitrary-precision integer to the integer
// payload encoding, so big.NewInt(5) and int(5) digest identically.
func encodeBigInt(data any, _ *Registry) (Atom, error) {
	v := data.(*big.Int)
	if v == nil {
		return Atom{}, fmt.Errorf("%w *big.Int(nil)", ErrNoHashMethod)
	}
	return Atom{tagInt, intToBytes(v)}, nil
}

// encodeBigRat re-delegates an arbitrary rational to the float payload
// encoding, so big.NewRat(1, 2) and 0.5 digest identically.
func encodeBigRat(data any, _ *Registry) (Atom, error) {
	v := data.(*big.Rat)
	if v == nil {
		return Atom{}, fmt.Errorf("%w *big.Rat(nil)", ErrNoHashMethod)
	}
	return Atom{tagFloat, ratToBytes(v)}, nil
}

// encodeRandState hashes the marshaled internal state of a math/rand/v2
// generator under the RNG tag.
func encodeRandState(data any, _ *Registry) (Atom, error) {
	m, ok := data.(interface{ MarshalBinary() ([]byte, error) })
	if !ok {
		return Atom{}, fmt.Errorf("%w %T", ErrNoHashMethod, data)
	}
	state, err := m.MarshalBinary()
	if err != nil {
		return Atom{}, fmt.Errorf("marshaling generator state: %w", err)
	}
	return Atom{tagRNG, state}, nil
}

// encodeByteArray hashes fixed-size byte arrays as raw text, the array
// analogue of the []byte primitive. Non-byte arrays never reach this point:
// they classify as sequences.
func encodeByteArray(data any, _ *Registry) (Atom, error) {
	rv := reflect.ValueOf(data)
	if rv.Type().Elem().Kind() != reflect.Uint8 {
		return Atom{}, fmt.Errorf("%w %T", ErrNoHashMethod, data)
	}
	buf := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(buf), rv)
	return Atom{tagText, buf}, nil
}

// encodeNamedScalar coerces a named scalar type (type Celsius float64, type
// ID string, ...) to its native form and re-encodes it.
func encodeNamedScalar(data any, reg *Registry) (Atom, error) {
	rv := reflect.ValueOf(data)
	var native any
	switch rv.Kind() {
	case reflect.Bool:
		native = rv.Bool()
	case reflect.String:
		native = rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		native = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		native = rv.Uint()
	case reflect.Float32, reflect.Float64:
		native = rv.Float()
	default:
		return Atom{}, fmt.Errorf("%w %T", ErrNoHashMethod, data)
	}
	return convertToHashable(native, true, reg)
}

// sortHashables orders mixed key sets deterministically: natural order when
// every key is a string or every key is a finite number, otherwise the
// printed representation. Ties between numerically equal keys of different
// types break on the printed form.
func sortHashables(items []any) {
	sort.Slice(items, hashableLess(items))
}

// sortKeyed orders keys with the sortHashables rules, carrying the parallel
// vals slice along with every swap.
func sortKeyed(keys, vals []any) {
	sort.Sort(keyedOrder{keys, vals, hashableLess(keys)})
}

type keyedOrder struct {
	keys []any
	vals []any
	less func(i, j int) bool
}

func (o keyedOrder) Len() int           { return len(o.keys) }
func (o keyedOrder) Less(i, j int) bool { return o.less(i, j) }
func (o keyedOrder) Swap(i, j int) {
	o.keys[i], o.keys[j] = o.keys[j], o.keys[i]
	o.vals[i], o.vals[j] = o.vals[j], o.vals[i]
}

// hashableLess picks the comparator for a key set. The closure reads the live
// slice, so it stays valid while a sort permutes it.
func hashableLess(items []any) func(i, j int) bool {
	allString := true
	allNumeric := true
	for _, it := range items {
		if _, ok := it.(string); !ok {
			allString = false
		}
		if _, ok := numericRat(it); !ok {
			allNumeric = false
		}
	}
	switch {
	case allString:
		return func(i, j int) bool {
			return items[i].(string) < items[j].(string)
		}
	case allNumeric:
		return func(i, j int) bool {
			a, _ := numericRat(items[i])
			b, _ := numericRat(items[j])
			if c := a.Cmp(b); c != 0 {
				return c < 0
			}
			return fmt.Sprintf("%T%v", items[i], items[i]) < fmt.Sprintf("%T%v", items[j], items[j])
		}
	default:
		return func(i, j int) bool {
			return fmt.Sprint(items[i]) < fmt.Sprint(items[j])
		}
	}
}

// numericRat converts finite numeric values to an exact rational for
// comparison. NaN and infinities report false and force the printed-form
// fallback.
func numericRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int8:
		return new(big.Rat).SetInt64(int64(n)), true
	case int16:
		return new(big.Rat).SetInt64(int64(n)), true
	case int32:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	case uint:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Rat).SetUint64(n), true
	case float32:
		if !floatFinite(float64(n)) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(float64(n)), true
	case float64:
		if !floatFinite(n) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(n), true
	case bool:
		if n {
			return new(big.Rat).SetInt64(1), true
		}
		return new(big.Rat).SetInt64(0), true
	default:
		return nil, false
	}
}

func floatFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
