package structhash

import (
	"fmt"
	"math/big"
	"strings"
)

// Canonical alphabets for the base shorthands. rectifyBase returns these
// exact slices, and ConvertHexBase's no-op fast path triggers on slice
// identity with alphabetHex: a caller-supplied list with the same sixteen
// symbols still goes through the generic conversion, matching the reference
// behavior.
var (
	alphabetHex      = []rune("0123456789abcdef")
	alphabetAbc      = []rune("abcdefghijklmnopqrstuvwxyz")
	alphabetAlphanum = []rune("0123456789abcdefghijklmnopqrstuvwxyz")
	alphabetDec      = []rune("0123456789")
)

// rectifyBase resolves a shorthand name or explicit alphabet to the symbol
// list used for re-basing. An explicit alphabet wins over the shorthand.
func rectifyBase(base string, alphabet []rune) ([]rune, error) {
	if alphabet != nil {
		if len(alphabet) < 2 {
			return nil, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrBadAlphabet, len(alphabet))
		}
		seen := make(map[rune]bool, len(alphabet))
		for _, r := range alphabet {
			if seen[r] {
				return nil, fmt.Errorf("%w: duplicate symbol %q", ErrBadAlphabet, r)
			}
			seen[r] = true
		}
		return alphabet, nil
	}
	switch strings.ToLower(base) {
	case "", BaseHex:
		return alphabetHex, nil
	case BaseAbc:
		return alphabetAbc, nil
	case BaseAlphanum:
		return alphabetAlphanum, nil
	case BaseDec:
		return alphabetDec, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadAlphabet, base)
	}
}

// isCanonicalHex reports whether alphabet is the package's own hex alphabet
// object, not merely hex-equivalent content.
func isCanonicalHex(alphabet []rune) bool {
	return len(alphabet) == len(alphabetHex) && &alphabet[0] == &alphabetHex[0]
}

// ConvertHexBase re-renders a hexadecimal digest string in the given
// alphabet, preserving its integer value and sign. Zero always becomes the
// literal "0" rather than alphabet[0] (a preserved quirk). The conversion is
// order-preserving but not bit-padding: it is value arithmetic, not an
// RFC4648-style fixed-width recoding, so it is not compatible with standard
// base32/base64 text encodings.
func ConvertHexBase(hexStr string, alphabet []rune) (string, error) {
	if isCanonicalHex(alphabet) {
		return hexStr, nil
	}
	neg := strings.HasPrefix(hexStr, "-")
	x, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "-"), 16)
	if !ok {
		return "", fmt.Errorf("invalid hex digest %q", hexStr)
	}
	if x.Sign() == 0 {
		return "0", nil
	}
	baseLen := big.NewInt(int64(len(alphabet)))
	rem := new(big.Int)
	digits := make([]rune, 0, len(hexStr)*2)
	for x.Sign() > 0 {
		x.QuoRem(x, baseLen, rem)
		digits = append(digits, alphabet[rem.Int64()])
	}
	if neg {
		digits = append(digits, '-')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}
