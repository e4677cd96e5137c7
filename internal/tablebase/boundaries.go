package tablebase

import (
	"fmt"
	"sort"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/helpers"
)

const BoundaryWidth = 5

// BoundariesFile holds the largest fingerprint of each shard, in shard order.
const BoundariesFile = "maximums.dat"

const ShardsPerDirectory = 1000

const DefaultBaseURL = "https://github.com/kylejlin/dobutsu_shogi_database_2024/raw/refs/heads/main"

func decodeUint40(b []byte) Fingerprint {
	return Fingerprint(uint64(b[0]) |
		uint64(b[1])<<8 |
		uint64(b[2])<<16 |
		uint64(b[3])<<24 |
		uint64(b[4])<<32)
}

func encodeUint40(f Fingerprint, b []byte) {
	for i := 0; i < BoundaryWidth; i++ {
		b[i] = byte(f >> (8 * i))
	}
}

func DecodeBoundaries(b []byte) ([]Fingerprint, Error) {
	if len(b)%BoundaryWidth != 0 {
		return nil, Errorf("%w: length %v is not a multiple of %v", ErrMalformedBoundaryTable, len(b), BoundaryWidth)
	}

	result := make([]Fingerprint, 0, len(b)/BoundaryWidth)
	for i := 0; i < len(b); i += BoundaryWidth {
		result = append(result, decodeUint40(b[i:i+BoundaryWidth]))
	}
	return result, NilError
}

func EncodeBoundaries(boundaries []Fingerprint) []byte {
	result := make([]byte, len(boundaries)*BoundaryWidth)
	for i, f := range boundaries {
		encodeUint40(f, result[i*BoundaryWidth:])
	}
	return result
}

// LocateShard returns the index of the first shard whose maximum is at least
// f. The boundaries must be ascending.
func LocateShard(f Fingerprint, boundaries []Fingerprint) (int, Error) {
	i := sort.Search(len(boundaries), func(i int) bool {
		return f <= boundaries[i]
	})
	if i == len(boundaries) {
		return 0, Errorf("%w: %v exceeds every shard maximum", ErrFingerprintOutOfRange, f)
	}
	return i, NilError
}

// ShardPath is the path of shard j relative to the tablebase root.
func ShardPath(j int) string {
	return fmt.Sprintf("%v/%v.dat", j/ShardsPerDirectory, j%ShardsPerDirectory)
}

func ShardURL(base string, j int) string {
	return base + "/" + ShardPath(j)
}
