package structhash

// Structural separator bytes delimiting nested containers in the encoded
// stream. Type tags must never contain any of these sequences, otherwise the
// encoding becomes ambiguous.
var (
	iterOpen  = []byte("_[_") // start of an iterated container
	iterClose = []byte("_]_") // end of an iterated container
	itemSep   = []byte("_,_") // divider between consecutive items
)

// Type tag constants for primitive atoms
var (
	tagNull  = []byte("NULL")
	tagText  = []byte("TXT")
	tagInt   = []byte("INT")
	tagFloat = []byte("FLT")
)

// Type tag constants contributed by the default extensions
var (
	tagUUID   = []byte("UUID")
	tagDict   = []byte("DICT")
	tagODict  = []byte("ODICT")
	tagSet    = []byte("SET")
	tagSlice  = []byte("SLICE")
	tagNDArr  = []byte("NDARR")
	tagRNG    = []byte("RNG")
	tagPath   = []byte("PATH")
	emptyTag  = []byte{}
	nullValue = []byte("NONE") // fixed payload for nil values
)

// Default hashing parameters
const (
	// DefaultHasher is the algorithm used when none is requested. xx64 is
	// non-cryptographic but extremely fast on 64-bit hardware, which suits
	// the common cache-key and data-fingerprint use cases.
	DefaultHasher = "xx64"

	// DefaultBlocksize is the file hashing chunk size (1 MiB).
	DefaultBlocksize = 1 << 20

	// NoLimit disables the byte cap in file hashing.
	NoLimit int64 = -1
)

// Base shorthand names accepted wherever a base can be specified
const (
	BaseHex      = "hex"      // 0-9 a-f
	BaseAbc      = "abc"      // a-z
	BaseAlphanum = "alphanum" // 0-9 a-z
	BaseDec      = "dec"      // 0-9
)
