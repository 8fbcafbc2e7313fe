package structhash

import "errors"

// Sentinel errors returned by the hashing pipeline. All are surfaced via
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	// ErrNoHashMethod indicates a value whose type has no registered encoder
	// and is not a natively hashable primitive or sequence.
	ErrNoHashMethod = errors.New("no hash method registered for type")

	// ErrUnknownHasher indicates an algorithm name not present in the catalog.
	ErrUnknownHasher = errors.New("unknown hash algorithm")

	// ErrBadAlphabet indicates a base that is neither a recognized shorthand
	// nor a usable symbol list (length >= 2, symbols unique).
	ErrBadAlphabet = errors.New("invalid output alphabet")

	// ErrObjectArray indicates an NDArray with object dtype, which cannot be
	// hashed through its raw buffer. Convert the array to nested sequences
	// before hashing.
	ErrObjectArray = errors.New("cannot hash object-dtype array directly")

	// ErrUnhashableArray indicates an NDArray whose buffer does not match its
	// declared shape and dtype.
	ErrUnhashableArray = errors.New("array buffer inconsistent with shape/dtype")

	// ErrNotIterable indicates a value flagged by an iterable check that does
	// not implement the Iterable interface.
	ErrNotIterable = errors.New("value flagged as iterable but does not implement Iterable")
)
