package pow

import (
	"github.com/minio/sha256-simd"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	DefaultHashFunction = "sha2-256"

	blake2b256 = multihash.BLAKE2B_MIN + 31
)

// HashFunc is a 256-bit digest function.
type HashFunc func(data []byte) [32]byte

var (
	hashFuncs = map[uint64]HashFunc{
		multihash.SHA2_256: sha256.Sum256,
		multihash.SHA3_256: sha3.Sum256,
		blake2b256:         blake2b.Sum256,
	}
)

// lookupHash resolves a multihash name to its code and digest function
func lookupHash(name string) (uint64, HashFunc, error) {
	code, ok := multihash.Names[name]
	if !ok {
		return 0, nil, errors.Wrapf(ErrUnsupportedHash, "unknown multihash %q", name)
	}

	fn, ok := hashFuncs[code]
	if !ok {
		return 0, nil, errors.Wrapf(ErrUnsupportedHash, "%s is not a 256-bit digest", name)
	}

	return code, fn, nil
}

// SupportedHashFunctions lists the multihash names usable with
// WithHashFunction.
func SupportedHashFunctions() []string {
	names := make([]string, 0, len(hashFuncs))
	for code := range hashFuncs {
		names = append(names, multihash.Codes[code])
	}

	return names
}
