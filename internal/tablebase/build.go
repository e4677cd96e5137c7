package tablebase

import (
	"sort"

	"github.com/samber/lo"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
)

// Build splits a solved table into shards of at most perShard positions.
// Each shard holds the records of its own positions and of every successor
// of them, so BestAction needs only the shard the current position falls in.
// The returned boundaries are the largest position in each shard.
func Build(records []Record, perShard int) ([]Fingerprint, [][]byte, Error) {
	if perShard < 1 {
		return nil, nil, Errorf("need at least one position per shard, got %v", perShard)
	}

	records = append([]Record{}, records...)
	sort.Slice(records, func(i, j int) bool {
		return records[i].Fingerprint < records[j].Fingerprint
	})
	for i := 1; i < len(records); i++ {
		if records[i].Fingerprint == records[i-1].Fingerprint {
			return nil, nil, Errorf("duplicate record for %v", records[i].Fingerprint)
		}
	}

	byFingerprint := lo.KeyBy(records, func(r Record) Fingerprint {
		return r.Fingerprint
	})

	boundaries := []Fingerprint{}
	shards := [][]byte{}
	for _, group := range lo.Chunk(records, perShard) {
		contents := map[Fingerprint]Record{}
		for _, parent := range group {
			contents[parent.Fingerprint] = parent

			g, err := Decompress(parent.Fingerprint)
			if !IsNil(err) {
				return nil, nil, err
			}
			for _, a := range LegalActions(g) {
				child, ok := byFingerprint[Compress(Apply(g, a))]
				if ok {
					contents[child.Fingerprint] = child
				}
			}
		}

		shard := lo.Values(contents)
		sort.Slice(shard, func(i, j int) bool {
			return shard[i].Fingerprint < shard[j].Fingerprint
		})

		boundaries = append(boundaries, group[len(group)-1].Fingerprint)
		shards = append(shards, EncodeRecords(shard))
	}

	return boundaries, shards, NilError
}
