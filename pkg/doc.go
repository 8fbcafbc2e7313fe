// Package structhash provides deterministic structural hashing of arbitrary
// nested in-memory data, plus file-content hashing with tunable sampling.
//
// # Core API
//
// Hash a nested value:
//
//	digest, err := structhash.HashData([]any{1, 2, []any{"a", 2, "c"}}, nil)
//
// Choose an algorithm, output base and typed mode:
//
//	digest, err := structhash.HashData(data, &structhash.Options{
//		Hasher:       "sha256",
//		Base:         structhash.BaseAbc,
//		IncludeTypes: true,
//	})
//
// Hash a file, optionally sampling it:
//
//	opts := structhash.DefaultFileOptions()
//	opts.Stride = 8
//	digest, err := structhash.HashFile("/path/to/file", opts)
//
// # Extensions
//
// Teach the engine about new leaf types by registering encoders, either on
// the process-wide default registry or on a private one passed through
// Options.Registry:
//
//	reg := structhash.NewRegistry()
//	reg.RegisterTypeOf(func(data any, reg *structhash.Registry) (structhash.Atom, error) {
//		c := data.(Color)
//		return structhash.Atom{Prefix: []byte("COLOR"), Payload: []byte(c.Name)}, nil
//	}, Color{})
//
// # Guarantees and limits
//
// Digests are stable across runs, platforms and package versions: the byte
// encoding of every supported type is fixed, including one historical
// separator omission in the traversal of mixed flat/nested sequences that is
// preserved for backward compatibility. The digest is one-directional and is
// not a standardized canonical-encoding hash; the base conversion is value
// arithmetic, not RFC4648-compatible text encoding.
package structhash
