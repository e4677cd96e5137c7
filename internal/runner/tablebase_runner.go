package runner

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/shards"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

// TablebaseRunner plays the game from the current position and asks the
// tablebase for the best action when searching.
type TablebaseRunner struct {
	cache *shards.Cache

	g        Optional[GameState]
	StartPos string
	history  []HistoryValue
}

var _ Runner = (*TablebaseRunner)(nil)

type HistoryValue struct {
	action Action
	prev   GameState
}

func NewTablebaseRunner(cache *shards.Cache) *TablebaseRunner {
	return &TablebaseRunner{cache: cache}
}

func (r *TablebaseRunner) Reset() {
	r.g = Empty[GameState]()
	r.StartPos = ""
	r.history = []HistoryValue{}
}

func (r *TablebaseRunner) IsNew() bool {
	return r.g.IsEmpty()
}

func (r *TablebaseRunner) State() GameState {
	return r.g.Value()
}

func (r *TablebaseRunner) LastAction() Optional[Action] {
	if len(r.history) > 0 {
		return Some(r.history[len(r.history)-1].action)
	}
	return Empty[Action]()
}

func (r *TablebaseRunner) Rewind(num int) Error {
	if r.IsNew() {
		return Errorf("no game to rewind")
	}
	for i := 0; i < num && len(r.history) > 0; i++ {
		h := r.history[len(r.history)-1]
		r.g = Some(h.prev)
		r.history = r.history[:len(r.history)-1]
	}
	return NilError
}

func (r *TablebaseRunner) PerformAction(a Action) Error {
	g := r.g.Value()
	next := TryApply(g, a)
	if next.IsEmpty() {
		return Errorf("%w: %v in %v", ErrIllegalAction, a, PositionString(g))
	}
	r.history = append(r.history, HistoryValue{action: a, prev: g})
	r.g = next
	return NilError
}

func (r *TablebaseRunner) PerformActionFromString(s string) Error {
	if r.IsNew() {
		return Errorf("no game; set up a position first")
	}
	a, err := ActionFromString(s)
	if !IsNil(err) {
		return err
	}
	return r.PerformAction(a)
}

func firstIndexNotMatching[A any, B any](a []A, b []B, matches func(A, B) bool) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if !matches(a[i], b[i]) {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// PerformActions brings the game to startPos followed by actions, reusing
// the shared prefix of the current history.
func (r *TablebaseRunner) PerformActions(startPos string, actions []string) Error {
	if r.StartPos != startPos {
		return Errorf("positions don't match: %v != %v", r.StartPos, startPos)
	}

	startIndex := firstIndexNotMatching(r.history, actions, func(h HistoryValue, s string) bool {
		return h.action.String() == s
	})

	err := r.Rewind(len(r.history) - startIndex)
	if !IsNil(err) {
		return err
	}

	for i := startIndex; i < len(actions); i++ {
		err := r.PerformActionFromString(actions[i])
		if !IsNil(err) {
			return err
		}
	}
	return NilError
}

func (r *TablebaseRunner) SetupPosition(position Position) Error {
	if !r.IsNew() {
		return Errorf("please use newgame")
	}

	g, err := GameStateFromPositionString(position.PositionString)
	if !IsNil(err) {
		return Errorf("couldn't create game from %v, %w", position, err)
	}
	r.g = Some(g)
	r.StartPos = position.PositionString
	r.history = []HistoryValue{}

	for _, s := range position.Actions {
		err := r.PerformActionFromString(s)
		if !IsNil(err) {
			return err
		}
	}
	return NilError
}

// ActionsForSelection lists the legal actions for a selected square, e.g.
// "b2", or for a piece in hand, e.g. "C*".
func (r *TablebaseRunner) ActionsForSelection(selection string) ([]string, Error) {
	if r.IsNew() {
		return nil, Errorf("no game; set up a position first")
	}
	legal := LegalActions(r.g.Value())

	var matches func(a Action) bool
	if strings.HasSuffix(selection, "*") && len(selection) == 2 {
		species, ok := SpeciesFromLetter(selection[0])
		if !ok {
			return nil, Errorf("invalid selection %q", selection)
		}
		matches = func(a Action) bool {
			return a.IsDrop() && a.Species == species
		}
	} else {
		index, err := BoardIndexFromString(selection)
		if !IsNil(err) {
			return nil, Errorf("failed to parse selection %w", err)
		}
		matches = func(a Action) bool {
			return !a.IsDrop() && a.StartIndex == index
		}
	}

	return MapSlice(FilterSlice(legal, matches), Action.String), NilError
}

func (r *TablebaseRunner) PositionString() string {
	return PositionString(r.g.Value())
}

func (r *TablebaseRunner) ActionHistory() []string {
	return MapSlice(r.history, func(h HistoryValue) string {
		return h.action.String()
	})
}

func (r *TablebaseRunner) Player() Side {
	return r.g.Value().Player
}

func (r *TablebaseRunner) IsTerminal() bool {
	return IsTerminal(r.g.Value())
}

func (r *TablebaseRunner) Winner() Optional[Side] {
	return Winner(r.g.Value())
}

// Search returns an empty action when the game is over or the tablebase has
// nothing for the position.
func (r *TablebaseRunner) Search(ctx context.Context) (Optional[string], Optional[tablebase.Score], Error) {
	if r.IsNew() {
		return Empty[string](), Empty[tablebase.Score](), Errorf("no game; set up a position first")
	}
	g := r.g.Value()
	if IsTerminal(g) {
		return Empty[string](), Empty[tablebase.Score](), NilError
	}

	action, score, err := shards.Lookup(ctx, r.cache, g)
	if !IsNil(err) {
		log.Error().Err(err).Str("position", PositionString(g)).Msg("tablebase search failed")
		return Empty[string](), Empty[tablebase.Score](), err
	}
	if action.IsEmpty() {
		return Empty[string](), Empty[tablebase.Score](), NilError
	}
	return Some(action.Value().String()), Some(score), NilError
}
