package structhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileOptions controls HashFile.
type FileOptions struct {
	// Blocksize is the read chunk size in bytes; <= 0 means
	// DefaultBlocksize. With Stride == 1 the digest is independent of it.
	Blocksize int
	// Stride samples the file: after each hashed chunk the reader seeks
	// forward Blocksize*(Stride-1) bytes. With Stride > 1 the digest
	// legitimately depends on Blocksize. Values < 1 mean 1.
	Stride int
	// MaxBytes caps the total bytes fed to the hash; the final chunk is
	// truncated to fit exactly. Negative means unlimited; zero hashes
	// nothing and yields the algorithm's empty digest.
	MaxBytes int64
	// Hasher, Base and Alphabet behave as in Options.
	Hasher   string
	Base     string
	Alphabet []rune
}

// DefaultFileOptions returns the stock settings: 1 MiB blocks, no sampling,
// no byte cap.
func DefaultFileOptions() *FileOptions {
	return &FileOptions{
		Blocksize: DefaultBlocksize,
		Stride:    1,
		MaxBytes:  NoLimit,
	}
}

// HashFile hashes a file's contents in Blocksize chunks through the same
// digest and base-conversion path as HashData. I/O errors propagate wrapped;
// there is no retry and no partial result. The file handle is held only for
// the duration of the call and released on every exit path.
func HashFile(path string, opts *FileOptions) (string, error) {
	if opts == nil {
		opts = DefaultFileOptions()
	}
	blocksize := opts.Blocksize
	if blocksize <= 0 {
		blocksize = DefaultBlocksize
	}
	stride := opts.Stride
	if stride < 1 {
		stride = 1
	}

	alphabet, err := rectifyBase(opts.Base, opts.Alphabet)
	if err != nil {
		return "", err
	}
	name := opts.Hasher
	if name == "" {
		name = DefaultHasher
	}
	alg, err := GetHasher(name)
	if err != nil {
		return "", err
	}
	hasher := alg.New()

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	adviseSequential(file)

	remaining := opts.MaxBytes // negative = unlimited
	buf := make([]byte, blocksize)
	for remaining != 0 {
		want := blocksize
		if remaining >= 0 && remaining < int64(want) {
			want = int(remaining)
		}
		n, rerr := io.ReadFull(file, buf[:want])
		if n > 0 {
			hasher.Write(buf[:n])
			if remaining > 0 {
				remaining -= int64(n)
			}
			VerboseLog(3, "hashed %d bytes of %s", n, path)
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}
		if rerr != nil {
			return "", fmt.Errorf("reading %s: %w", path, rerr)
		}
		if stride > 1 {
			if _, serr := file.Seek(int64(blocksize)*int64(stride-1), io.SeekCurrent); serr != nil {
				return "", fmt.Errorf("seeking in %s: %w", path, serr)
			}
		}
	}

	return ConvertHexBase(hex.EncodeToString(hasher.Sum(nil)), alphabet)
}
