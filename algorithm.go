package texhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	texerrors "github.com/tamirms/texhash/errors"
	"github.com/tamirms/texhash/internal/strong"
)

// HashAlgorithm identifies the 64-bit mixing hash used by the strong engine.
type HashAlgorithm uint8

const (
	// AlgoXXH3 uses XXH3-64. Checksums match the identifiers used by existing
	// hi-res texture packs.
	AlgoXXH3 HashAlgorithm = 0

	// AlgoXXH64 uses XXH64 with seed 0.
	AlgoXXH64 HashAlgorithm = 1

	// AlgoMurmur3 uses the first half of MurmurHash3 x64 128 with seed 0.
	AlgoMurmur3 HashAlgorithm = 2
)

// String returns the algorithm name.
func (a HashAlgorithm) String() string {
	switch a {
	case AlgoXXH3:
		return "xxh3"
	case AlgoXXH64:
		return "xxh64"
	case AlgoMurmur3:
		return "murmur3"
	default:
		return "unknown"
	}
}

// ParseHashAlgorithm maps an algorithm name to its HashAlgorithm.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch name {
	case "xxh3", "":
		return AlgoXXH3, nil
	case "xxh64":
		return AlgoXXH64, nil
	case "murmur3":
		return AlgoMurmur3, nil
	default:
		return 0, fmt.Errorf("%w: %q", texerrors.ErrUnknownAlgorithm, name)
	}
}

// hashFunc returns the hash implementation for a. Unknown values use XXH3.
func (a HashAlgorithm) hashFunc() strong.HashFunc {
	switch a {
	case AlgoXXH64:
		return xxhash.Sum64
	case AlgoMurmur3:
		return murmur3.Sum64
	default:
		return xxh3.Hash
	}
}
