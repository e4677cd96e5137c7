package tablebase

import (
	"sort"
	"testing"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solvedOpening scores the initial position and its successors; c1c2 is
// the best action.
func solvedOpening() []Record {
	g := InitialState()
	records := []Record{{Fingerprint: Compress(g), Score: 5}}
	for i, a := range LegalActions(g) {
		score := Score(10 * (i + 1))
		if a == Move(2, 5) {
			score = -30
		}
		records = append(records, Record{Fingerprint: successor(g, a), Score: score})
	}
	return records
}

func TestBuild(t *testing.T) {
	boundaries, shards, err := Build(solvedOpening(), 2)
	require.True(t, IsNil(err), err.Error())

	assert.Equal(t, 3, len(boundaries))
	assert.Equal(t, 3, len(shards))
	assert.True(t, sort.SliceIsSorted(boundaries, func(i, j int) bool {
		return boundaries[i] < boundaries[j]
	}))

	g := InitialState()
	index, err := LocateShard(Compress(g), boundaries)
	require.True(t, IsNil(err))

	action, score, err := BestAction(g, shards[index])
	assert.True(t, IsNil(err), err.Error())
	assert.Equal(t, Move(2, 5), action)
	assert.Equal(t, Score(-30), score)

	// every shard holds the records of its own positions
	for _, r := range solvedOpening() {
		index, err := LocateShard(r.Fingerprint, boundaries)
		require.True(t, IsNil(err))
		records, err := DecodeRecords(shards[index])
		require.True(t, IsNil(err))
		assert.Contains(t, records, r)
	}
}

func TestBuildErrors(t *testing.T) {
	_, _, err := Build(solvedOpening(), 0)
	assert.True(t, err.HasError())

	records := append(solvedOpening(), Record{Fingerprint: Compress(InitialState()), Score: 1})
	_, _, err = Build(records, 10)
	assert.True(t, err.HasError())

	boundaries, shards, err := Build(nil, 10)
	assert.True(t, IsNil(err))
	assert.Empty(t, boundaries)
	assert.Empty(t, shards)
}
