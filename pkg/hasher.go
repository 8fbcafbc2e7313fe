package structhash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm describes one catalog entry: a stable name, the digest size
// in bytes, and a factory producing fresh incremental handles.
type HashAlgorithm struct {
	Name string
	Size int
	New  func() hash.Hash
}

var hasherCatalog = struct {
	once   sync.Once
	mu     sync.RWMutex
	byName map[string]*HashAlgorithm
}{}

// populateHashers installs the built-in algorithms. Guaranteed entries come
// from the standard library; the rest are the fast and modern alternatives
// used across the ecosystem. Registration is idempotent so a concurrent
// first use is safe.
func populateHashers() {
	hasherCatalog.byName = make(map[string]*HashAlgorithm)
	builtin := []*HashAlgorithm{
		{Name: "md5", Size: md5.Size, New: md5.New},
		{Name: "sha1", Size: sha1.Size, New: sha1.New},
		{Name: "sha256", Size: sha256.Size, New: sha256.New},
		{Name: "sha512", Size: sha512.Size, New: sha512.New},
		{Name: "sha3_256", Size: 32, New: func() hash.Hash { return sha3.New256() }},
		{Name: "sha3_512", Size: 64, New: func() hash.Hash { return sha3.New512() }},
		{Name: "blake2b", Size: blake2b.Size256, New: func() hash.Hash {
			h, _ := blake2b.New256(nil) // only errors with a key
			return h
		}},
		{Name: "blake3", Size: 32, New: func() hash.Hash { return blake3.New() }},
		{Name: "xx64", Size: 8, New: func() hash.Hash { return xxhash.New() }},
		{Name: "xxh3", Size: 8, New: func() hash.Hash { return xxh3.New() }},
	}
	for _, alg := range builtin {
		hasherCatalog.byName[alg.Name] = alg
	}
}

// RegisterHasher adds or replaces a catalog entry.
func RegisterHasher(alg *HashAlgorithm) {
	hasherCatalog.once.Do(populateHashers)
	hasherCatalog.mu.Lock()
	defer hasherCatalog.mu.Unlock()
	hasherCatalog.byName[strings.ToLower(alg.Name)] = alg
}

// GetHasher returns the catalog entry for the given name (case-insensitive).
func GetHasher(name string) (*HashAlgorithm, error) {
	hasherCatalog.once.Do(populateHashers)
	hasherCatalog.mu.RLock()
	defer hasherCatalog.mu.RUnlock()
	alg, ok := hasherCatalog.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
	return alg, nil
}

// AvailableHashers returns the sorted names of all registered algorithms.
func AvailableHashers() []string {
	hasherCatalog.once.Do(populateHashers)
	hasherCatalog.mu.RLock()
	defer hasherCatalog.mu.RUnlock()
	names := make([]string, 0, len(hasherCatalog.byName))
	for name := range hasherCatalog.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rectifyHasher resolves the options to a ready incremental handle. An
// explicit factory wins, then a pre-built handle (used as-is, never reset,
// so feeding it twice accumulates), then a catalog name, then the default.
func rectifyHasher(opts *Options) (hash.Hash, error) {
	if opts != nil && opts.NewHash != nil {
		return opts.NewHash(), nil
	}
	if opts != nil && opts.Hash != nil {
		return opts.Hash, nil
	}
	name := DefaultHasher
	if opts != nil && opts.Hasher != "" {
		name = opts.Hasher
	}
	alg, err := GetHasher(name)
	if err != nil {
		return nil, err
	}
	return alg.New(), nil
}
