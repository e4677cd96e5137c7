package shards

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

// Lookup finds the tablebase's best action for g. It returns an empty action
// when the tablebase has no data for the position.
func Lookup(ctx context.Context, cache *Cache, g GameState) (Optional[Action], tablebase.Score, Error) {
	if IsTerminal(g) {
		return Empty[Action](), tablebase.Draw, Errorf("%w: %v", tablebase.ErrGameOver, PositionString(g))
	}

	for _, a := range LegalActions(g) {
		if tablebase.CapturesLion(g, a) {
			return Some(a), tablebase.WinInOne, NilError
		}
	}

	f := Compress(g)
	index, err := cache.ShardIndexFor(ctx, f)
	if errors.Is(err, tablebase.ErrFingerprintOutOfRange) {
		log.Debug().Str("fingerprint", f.String()).Msg("position is not in the tablebase")
		return Empty[Action](), tablebase.Draw, NilError
	}
	if !IsNil(err) {
		return Empty[Action](), tablebase.Draw, err
	}

	shard, err := cache.Shard(ctx, index)
	if !IsNil(err) {
		return Empty[Action](), tablebase.Draw, err
	}

	action, score, err := tablebase.BestAction(g, shard)
	if errors.Is(err, tablebase.ErrNoMatchingRecord) {
		log.Error().
			Str("position", PositionString(g)).
			Str("fingerprint", f.String()).
			Int("shard", index).
			Msg("shard has no record for any successor")
	}
	if !IsNil(err) {
		return Empty[Action](), tablebase.Draw, err
	}

	log.Debug().
		Str("position", PositionString(g)).
		Str("action", action.String()).
		Str("score", score.String()).
		Msg("tablebase lookup")

	return Some(action), score, NilError
}
