package tablebase

import (
	"errors"
	"testing"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successor(g GameState, a Action) Fingerprint {
	return Compress(Apply(g, a))
}

func TestBestActionPicksLowestScore(t *testing.T) {
	g := InitialState()
	actions := LegalActions(g)
	require.Equal(t, 4, len(actions))

	shard := EncodeRecords([]Record{
		{Fingerprint: 42, Score: -150},
		{Fingerprint: successor(g, actions[0]), Score: 10},
		{Fingerprint: successor(g, actions[1]), Score: -3},
		{Fingerprint: successor(g, actions[2]), Score: -50, RequiredChildReportCount: 2},
		{Fingerprint: successor(g, actions[3]), Score: -3},
	})

	action, score, err := BestAction(g, shard)
	assert.True(t, IsNil(err), err.Error())
	assert.Equal(t, actions[1], action)
	assert.Equal(t, Score(-3), score)
}

func TestBestActionIgnoresRecordOrder(t *testing.T) {
	g := InitialState()
	actions := LegalActions(g)

	shard := EncodeRecords([]Record{
		{Fingerprint: successor(g, actions[3]), Score: -120},
		{Fingerprint: successor(g, actions[0]), Score: -121},
	})

	action, score, err := BestAction(g, shard)
	assert.True(t, IsNil(err))
	assert.Equal(t, actions[0], action)
	assert.Equal(t, "loss in 80", score.String())
}

func TestBestActionForSky(t *testing.T) {
	g := Apply(InitialState(), Move(1, 3))
	actions := LegalActions(g)

	records := []Record{}
	for i, a := range actions {
		records = append(records, Record{Fingerprint: successor(g, a), Score: Score(100 + i)})
	}

	action, score, err := BestAction(g, EncodeRecords(records))
	assert.True(t, IsNil(err))
	assert.Equal(t, actions[0], action)
	assert.Equal(t, Score(100), score)
}

func TestImmediateLionCapture(t *testing.T) {
	g, err := GameStateFromPositionString("g1e/1l1/cGC/EL1 f -")
	require.True(t, IsNil(err))

	action, score, err := BestAction(g, nil)
	assert.True(t, IsNil(err), err.Error())
	assert.Equal(t, Move(4, 7), action)
	assert.Equal(t, WinInOne, score)
	assert.True(t, CapturesLion(g, action))
}

func TestBestActionErrors(t *testing.T) {
	g := InitialState()

	_, _, err := BestAction(g, EncodeRecords([]Record{{Fingerprint: 42, Score: 1}}))
	assert.True(t, errors.Is(err, ErrNoMatchingRecord), err.Error())

	_, _, err = BestAction(g, []byte{})
	assert.True(t, errors.Is(err, ErrNoMatchingRecord))

	_, _, err = BestAction(g, make([]byte, 9))
	assert.True(t, errors.Is(err, ErrMalformedShard))

	for _, a := range []Action{Move(4, 7), Move(9, 6), Move(7, 10)} {
		g = Apply(g, a)
	}
	_, _, err = BestAction(g, nil)
	assert.True(t, errors.Is(err, ErrGameOver))
}

func TestCandidates(t *testing.T) {
	g := InitialState()
	candidates := Candidates(g)

	assert.Equal(t, 4, len(candidates))
	seen := map[Fingerprint]bool{}
	for _, c := range candidates {
		assert.False(t, seen[c.Successor])
		seen[c.Successor] = true
		assert.True(t, c.Score.IsEmpty())
	}
}

func TestDuplicateRecordsKeepLowestScore(t *testing.T) {
	g := InitialState()
	actions := LegalActions(g)

	shard := EncodeRecords([]Record{
		{Fingerprint: successor(g, actions[0]), Score: -100},
		{Fingerprint: successor(g, actions[1]), Score: -3},
		{Fingerprint: successor(g, actions[0]), Score: 50},
	})

	action, score, err := BestAction(g, shard)
	assert.True(t, IsNil(err), err.Error())
	assert.Equal(t, actions[0], action)
	assert.Equal(t, Score(-100), score)

	candidates := Candidates(g)
	err = ScoreCandidates(candidates, shard)
	require.True(t, IsNil(err))
	assert.Equal(t, Score(-100), candidates[0].Score.Value())
	assert.Equal(t, Score(-3), candidates[1].Score.Value())
	assert.True(t, candidates[2].Score.IsEmpty())
}
