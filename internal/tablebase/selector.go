package tablebase

import (
	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
)

// Candidate is a legal action together with the fingerprint of the
// position it leads to.
type Candidate struct {
	Action    Action
	Successor Fingerprint
	Score     Optional[Score]
}

func Candidates(g GameState) []Candidate {
	return MapSlice(LegalActions(g), func(a Action) Candidate {
		return Candidate{
			Action:    a,
			Successor: Compress(Apply(g, a)),
		}
	})
}

// CapturesLion reports whether a takes the enemy Lion.
func CapturesLion(g GameState, a Action) bool {
	return Apply(g, a).PassiveHand()[Lion] > 0
}

// ScoreCandidates fills in each candidate's score from the shard. Successors
// missing from the shard keep an empty score; a successor with several
// records keeps the lowest.
func ScoreCandidates(candidates []Candidate, shard []byte) Error {
	err := checkShard(shard)
	if !IsNil(err) {
		return err
	}

	indices := make(map[Fingerprint][]int, len(candidates))
	for i, c := range candidates {
		indices[c.Successor] = append(indices[c.Successor], i)
	}

	for i := 0; i < len(shard); i += RecordWidth {
		r := DecodeRecord(shard[i : i+RecordWidth])
		s := r.EffectiveScore()
		for _, index := range indices[r.Fingerprint] {
			c := &candidates[index]
			if c.Score.IsEmpty() || s < c.Score.Value() {
				c.Score = Some(s)
			}
		}
	}
	return NilError
}

// BestAction picks the action for the side to move in g using the shard g's
// fingerprint falls into. Scores belong to the successor's side to move, so
// the best action is the one with the lowest score; ties go to the action
// listed first by LegalActions.
func BestAction(g GameState, shard []byte) (Action, Score, Error) {
	if IsTerminal(g) {
		return Action{}, Draw, Errorf("%w: %v", ErrGameOver, PositionString(g))
	}

	// Shards do not reliably hold the positions right after a Lion capture,
	// so a capturing action is returned without consulting them.
	for _, a := range LegalActions(g) {
		if CapturesLion(g, a) {
			return a, WinInOne, NilError
		}
	}

	candidates := Candidates(g)
	err := ScoreCandidates(candidates, shard)
	if !IsNil(err) {
		return Action{}, Draw, err
	}

	best := Empty[Candidate]()
	for _, c := range candidates {
		if c.Score.IsEmpty() {
			continue
		}
		if best.IsEmpty() || c.Score.Value() < best.Value().Score.Value() {
			best = Some(c)
		}
	}

	if best.IsEmpty() {
		return Action{}, Draw, Errorf("%w: %v", ErrNoMatchingRecord, PositionString(g))
	}
	return best.Value().Action, best.Value().Score.Value(), NilError
}
