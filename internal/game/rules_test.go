package game

import (
	"fmt"
	"testing"

	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pp(t any) string {
	return spew.Sdump(t)
}

// gameFromString accepts diagrams with only the pieces a test cares about.
func gameFromString(t *testing.T, s string) GameState {
	g, err := ParsePositionString(s)
	require.True(t, IsNil(err), err.Error())
	return g
}

func TestInitialActions(t *testing.T) {
	g := InitialState()
	actions := LegalActions(g)

	assert.Equal(t, []Action{
		Move(1, 3),
		Move(1, 5),
		Move(2, 5),
		Move(4, 7),
	}, actions)
	assert.Equal(t, []string{"b1a2", "b1c2", "c1c2", "b2b3"}, MapSlice(actions, Action.String))
	assert.False(t, IsTerminal(g))
	assert.True(t, Winner(g).IsEmpty())
}

func TestDropsComeFirst(t *testing.T) {
	g := gameFromString(t, "l2/3/3/L2 f C")
	actions := LegalActions(g)

	assert.Equal(t, 13, len(actions), pp(actions))
	assert.Equal(t, Drop(Chick, 1), actions[0])
	assert.Equal(t, Move(0, 1), actions[10])
	assert.False(t, Contains(actions, Drop(Chick, 0)))
	assert.False(t, Contains(actions, Drop(Chick, 9)))
}

func TestLionsAreNeverDropped(t *testing.T) {
	g := GameState{Player: Forest}
	g.Board[4] = FL
	g.Hands[Forest][Lion] = 1
	g.Hands[Forest][Elephant] = 1

	for _, a := range LegalActions(g) {
		if a.IsDrop() {
			assert.Equal(t, Elephant, a.Species)
		}
	}
}

func TestApplyDrop(t *testing.T) {
	g := gameFromString(t, "l2/3/3/L2 f C")
	result := Apply(g, Drop(Chick, 4))

	assert.Equal(t, FC, result.Board[4])
	assert.True(t, result.Hands[Forest].IsEmpty())
	assert.Equal(t, Sky, result.Player)
	assert.Equal(t, "l2/3/1C1/L2 s -", PositionString(result))
}

func TestCaptureDemotesHen(t *testing.T) {
	g := gameFromString(t, "3/1h1/1G1/3 f -")
	result := Apply(g, Move(4, 7))

	assert.Equal(t, FG, result.Board[7])
	assert.Equal(t, XX, result.Board[4])
	assert.Equal(t, uint8(1), result.Hands[Forest][Chick])
	assert.Equal(t, "3/1G1/3/3 s C", PositionString(result))
}

func TestPromotion(t *testing.T) {
	g := gameFromString(t, "3/1C1/3/3 f -")
	assert.Equal(t, FH, Apply(g, Move(7, 10)).Board[10])

	g = gameFromString(t, "3/3/1c1/3 s -")
	assert.Equal(t, SH, Apply(g, Move(4, 1)).Board[1])

	// a chick stepping onto a middle row stays a chick
	g = gameFromString(t, "3/3/1C1/3 f -")
	assert.Equal(t, FC, Apply(g, Move(4, 7)).Board[7])
}

func TestLionCaptureEndsGame(t *testing.T) {
	g := InitialState()
	for _, a := range []Action{Move(4, 7), Move(9, 6), Move(7, 10)} {
		next := TryApply(g, a)
		require.True(t, next.HasValue(), "%v is illegal in\n%v", a, g)
		g = next.Value()
	}

	assert.Equal(t, FH, g.Board[10])
	assert.Equal(t, uint8(1), g.Hands[Forest][Lion])
	assert.Equal(t, uint8(1), g.Hands[Forest][Chick])
	assert.True(t, IsTerminal(g))
	assert.Equal(t, Forest, Winner(g).Value())
	assert.Empty(t, LegalActions(g))
}

func TestLionTry(t *testing.T) {
	g := gameFromString(t, "L2/3/2l/3 f -")
	assert.True(t, IsTerminal(g))
	assert.Equal(t, Forest, Winner(g).Value())

	// the lion has only just arrived; sky still gets to respond
	g = gameFromString(t, "L2/3/2l/3 s -")
	assert.False(t, IsTerminal(g))
}

func TestTryApplyRejectsIllegal(t *testing.T) {
	g := InitialState()
	assert.True(t, TryApply(g, Move(4, 1)).IsEmpty())
	assert.True(t, TryApply(g, Move(0, 4)).IsEmpty())
	assert.True(t, TryApply(g, Drop(Chick, 3)).IsEmpty())
	assert.True(t, TryApply(g, Move(7, 4)).IsEmpty())
}

func TestInverted(t *testing.T) {
	g := InitialState()
	inverted := g.Inverted()

	assert.Equal(t, Sky, inverted.Player)
	assert.Equal(t, g.Board, inverted.Board)
	assert.Equal(t, g, inverted.Inverted())

	g = Apply(g, Move(4, 7))
	assert.Equal(t, "gle/3/1c1/ELG f c", PositionString(g.Inverted()))
	assert.Equal(t, Move(7, 4), Move(4, 7).Inverted())
	assert.Equal(t, Drop(Giraffe, 11), Drop(Giraffe, 0).Inverted())
}

type walkResult struct {
	positions int
	terminals int
	drops     int
	captures  int
}

// allActions lists every move and drop that can be written down, legal or
// not.
var allActions = func() []Action {
	result := []Action{}
	for start := 0; start < NumSquares; start++ {
		for dest := 0; dest < NumSquares; dest++ {
			result = append(result, Move(start, dest))
		}
	}
	for _, species := range AllSpecies {
		for dest := 0; dest < NumSquares; dest++ {
			result = append(result, Drop(species, dest))
		}
	}
	return result
}()

// obeysRules decides legality from the rules directly rather than through
// the move generator.
func obeysRules(g GameState, a Action) bool {
	if IsTerminal(g) {
		return false
	}
	if a.IsDrop() {
		return a.Species != Lion && g.ActiveHand()[a.Species] > 0 && g.Board[a.DestIndex] == XX
	}
	p := g.Board[a.StartIndex]
	return p.BelongsTo(g.Player) &&
		!g.Board[a.DestIndex].BelongsTo(g.Player) &&
		Permits(MovesFor(g.Player, p.Species(), p.IsPromoted()), a.StartIndex, a.DestIndex)
}

// checkTryApply asserts TryApply accepts exactly the legal actions.
func checkTryApply(t *testing.T, g GameState) {
	legal := LegalActions(g)
	for _, a := range allActions {
		next := TryApply(g, a)
		assert.Equal(t, obeysRules(g, a), Contains(legal, a), "%v %v", PositionString(g), a)
		if Contains(legal, a) {
			if assert.True(t, next.HasValue(), "%v rejects %v", PositionString(g), a) {
				assert.Equal(t, Apply(g, a), next.Value())
			}
		} else {
			assert.True(t, next.IsEmpty(), "%v accepts %v", PositionString(g), a)
		}
	}
}

// walk visits every action sequence of length n from g, checking the
// invariants that must hold at each step.
func walk(t *testing.T, g GameState, n int, result *walkResult) {
	result.positions++
	assert.True(t, IsNil(ValidatePosition(g)), PositionString(g))
	checkTryApply(t, g)
	if IsTerminal(g) {
		result.terminals++
		assert.Empty(t, LegalActions(g))
		return
	}
	if n == 0 {
		return
	}

	assert.Equal(t, [NumSpecies]int{2, 2, 2, 2}, PieceCounts(g), PositionString(g))

	actions := LegalActions(g)
	assert.NotEmpty(t, actions, PositionString(g))
	assert.Equal(t, len(actions), len(LegalActions(g.Inverted())), PositionString(g))

	for _, a := range actions {
		if a.IsDrop() {
			result.drops++
		} else if g.Board[a.DestIndex] != XX {
			result.captures++
		}

		next := Apply(g, a)
		assert.Equal(t, g.Enemy(), next.Player)
		assert.Equal(t, [NumSpecies]int{2, 2, 2, 2}, PieceCounts(next),
			fmt.Sprintf("%v after %v", PositionString(g), a))
		assert.Equal(t, next.Inverted(), Apply(g.Inverted(), a.Inverted()),
			fmt.Sprintf("%v after %v", PositionString(g), a))

		walk(t, next, n-1, result)
	}
}

func TestWalkInvariants(t *testing.T) {
	result := walkResult{}
	walk(t, InitialState(), 4, &result)

	assert.Greater(t, result.positions, 100)
	assert.Greater(t, result.captures, 0)
	assert.Greater(t, result.drops, 0)
}

func TestCaptureElephantAndHenKeepsPromotion(t *testing.T) {
	g := gameFromString(t, "3/1e1/1G1/3 f E")
	result := Apply(g, Move(4, 7))
	assert.Equal(t, uint8(2), result.Hands[Forest][Elephant])
	assert.Equal(t, FG, result.Board[7])

	g = gameFromString(t, "3/1H1/3/3 f -")
	assert.Equal(t, FH, Apply(g, Move(7, 4)).Board[4])
}
