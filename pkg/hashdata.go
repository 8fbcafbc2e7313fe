package structhash

import (
	"encoding/hex"
	"encoding/json"
	"hash"
)

// Options controls HashData. The zero value (or a nil pointer) means: xx64,
// hex output, no type prefixes, no JSON conversion, default registry.
type Options struct {
	// Hasher names a catalog algorithm. Empty means DefaultHasher.
	Hasher string
	// Hash is a pre-built incremental handle. It is fed as-is and never
	// reset, so reusing one across calls accumulates. Overrides Hasher.
	Hash hash.Hash
	// NewHash is an explicit handle factory. Overrides Hash and Hasher.
	NewHash func() hash.Hash
	// Base is an output alphabet shorthand: "hex", "abc", "alphanum", "dec".
	// Empty means hex.
	Base string
	// Alphabet is an explicit output symbol list (>= 2 unique symbols).
	// Overrides Base. Output length depends on the algorithm's bit width
	// and the alphabet size; only hex is fixed at two characters per byte.
	Alphabet []rune
	// IncludeTypes prepends type tags to each encoded atom. Off by default:
	// equal payloads of different types may then collide, intentionally.
	IncludeTypes bool
	// Convert attempts to serialize non-string input to JSON text first and
	// hashes that instead, silently falling back to structural hashing when
	// serialization fails. A performance shortcut for JSON-friendly data,
	// not a correctness feature; digests differ from structural ones.
	Convert bool
	// Registry supplies a private extension registry. Nil means the
	// process-wide default.
	Registry *Registry
}

// HashData computes a deterministic structural digest of an arbitrarily
// nested value: scalars, sequences, maps, sets, and any type registered
// with the extension registry. The traversal is stack-based, so nesting
// depth is bounded only by memory.
func HashData(data any, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	alphabet, err := rectifyBase(opts.Base, opts.Alphabet)
	if err != nil {
		return "", err
	}
	hasher, err := rectifyHasher(opts)
	if err != nil {
		return "", err
	}
	if opts.Convert {
		if _, isText := data.(string); !isText {
			if buf, jerr := json.Marshal(data); jerr == nil {
				data = string(buf)
			}
			// on marshal failure fall through to structural hashing
		}
	}
	if err := updateHasherIterative(hasher, data, opts.IncludeTypes, reg); err != nil {
		return "", err
	}
	return ConvertHexBase(hex.EncodeToString(hasher.Sum(nil)), alphabet)
}
