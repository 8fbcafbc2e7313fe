package structhash

import (
	"fmt"
	"math"
	"math/big"
)

// Atom is a primitive encoding: a type tag plus the payload bytes that get
// fed to the hash accumulator. The payload may itself be a full encoded
// sub-stream produced by HashableSequence.
type Atom struct {
	Prefix  []byte
	Payload []byte
}

// intToBytes encodes an integer as its minimal big-endian two's-complement
// signed representation. The bit width is BitLen()+1 so the sign bit is
// always explicit; zero encodes to a single zero byte.
func intToBytes(x *big.Int) []byte {
	bits := x.BitLen() + 1
	n := (bits + 7) / 8
	buf := make([]byte, n)
	if x.Sign() >= 0 {
		x.FillBytes(buf)
		return buf
	}
	// two's complement: 2^(8n) + x
	tc := new(big.Int).Lsh(big.NewInt(1), uint(n)*8)
	tc.Add(tc, x)
	tc.FillBytes(buf)
	return buf
}

// int64ToBytes is the fast path for native integer widths.
func int64ToBytes(v int64) []byte {
	return intToBytes(big.NewInt(v))
}

// uint64ToBytes encodes an unsigned value; values above MaxInt64 still get a
// non-negative signed encoding.
func uint64ToBytes(v uint64) []byte {
	return intToBytes(new(big.Int).SetUint64(v))
}

// floatToBytes encodes a float as the exact reduced numerator/denominator of
// its value, each side in the signed integer form, joined by an ASCII '/'.
// nan, inf and -inf have no finite rational form and encode as those literal
// strings. Negative zero reduces to 0/1, identical to positive zero.
func floatToBytes(f float64) []byte {
	switch {
	case math.IsNaN(f):
		return []byte("nan")
	case math.IsInf(f, 1):
		return []byte("inf")
	case math.IsInf(f, -1):
		return []byte("-inf")
	}
	r := new(big.Rat).SetFloat64(f)
	buf := intToBytes(r.Num())
	buf = append(buf, '/')
	buf = append(buf, intToBytes(r.Denom())...)
	return buf
}

// ratToBytes encodes an arbitrary rational in the float payload form.
func ratToBytes(r *big.Rat) []byte {
	buf := intToBytes(r.Num())
	buf = append(buf, '/')
	buf = append(buf, intToBytes(r.Denom())...)
	return buf
}

// convertToHashable reduces a single non-container value to an Atom. Exact
// builtin types are handled inline; everything else goes through the
// registry. When includeTypes is false the tag is dropped, so equal payloads
// of different types may collide (intentional untyped mode).
func convertToHashable(data any, includeTypes bool, reg *Registry) (Atom, error) {
	var atom Atom
	switch d := data.(type) {
	case nil:
		atom = Atom{tagNull, nullValue}
	case []byte:
		atom = Atom{tagText, d}
	case string:
		atom = Atom{tagText, []byte(d)}
	case bool:
		n := int64(0)
		if d {
			n = 1
		}
		atom = Atom{tagInt, int64ToBytes(n)}
	case int:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case int8:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case int16:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case int32:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case int64:
		atom = Atom{tagInt, int64ToBytes(d)}
	case uint:
		atom = Atom{tagInt, uint64ToBytes(uint64(d))}
	case uint8:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case uint16:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case uint32:
		atom = Atom{tagInt, int64ToBytes(int64(d))}
	case uint64:
		atom = Atom{tagInt, uint64ToBytes(d)}
	case uintptr:
		atom = Atom{tagInt, uint64ToBytes(uint64(d))}
	case float32:
		atom = Atom{tagFloat, floatToBytes(float64(d))}
	case float64:
		atom = Atom{tagFloat, floatToBytes(d)}
	default:
		enc, err := reg.Lookup(data)
		if err != nil {
			return Atom{}, err
		}
		a, err := enc(data, reg)
		if err != nil {
			return Atom{}, fmt.Errorf("encoding %T: %w", data, err)
		}
		atom = a
	}
	if !includeTypes {
		atom.Prefix = emptyTag
	}
	return atom, nil
}
