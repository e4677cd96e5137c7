package game

import (
	"testing"

	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestInvertIsNibbleSwap(t *testing.T) {
	assert.Equal(t, DirectionSetOf(South), Invert(ChickMoves))
	assert.Equal(t, DirectionSetOf(South, East, West, North, SouthEast, SouthWest), Invert(HenMoves))
	assert.Equal(t, ElephantMoves, Invert(ElephantMoves))
	assert.Equal(t, LionMoves, Invert(LionMoves))

	for s := 0; s < 256; s++ {
		assert.Equal(t, DirectionSet(s), Invert(Invert(DirectionSet(s))))
	}
}

func TestOpposite(t *testing.T) {
	for _, d := range AllDirections {
		step := DirectionSteps[d]
		opposite := DirectionSteps[d.Opposite()]
		assert.Equal(t, -step[0], opposite[0], d.String())
		assert.Equal(t, -step[1], opposite[1], d.String())
		assert.Equal(t, Invert(DirectionSetOf(d)), DirectionSetOf(d.Opposite()))
	}
}

func TestPermits(t *testing.T) {
	assert.True(t, Permits(ChickMoves, 4, 7))
	assert.False(t, Permits(ChickMoves, 4, 1))
	assert.True(t, Permits(Invert(ChickMoves), 7, 4))

	assert.True(t, Permits(ElephantMoves, 4, 0))
	assert.True(t, Permits(ElephantMoves, 4, 8))
	assert.False(t, Permits(ElephantMoves, 4, 5))

	// two rows apart is never a single step
	assert.False(t, Permits(LionMoves, 0, 6))
	// wrapping from column c to column a is not a step east
	assert.False(t, Permits(LionMoves, 2, 3))
	assert.False(t, Permits(LionMoves, 4, 4))
}

func TestMovesFor(t *testing.T) {
	assert.Equal(t, ChickMoves, MovesFor(Forest, Chick, false))
	assert.Equal(t, DirectionSetOf(South), MovesFor(Sky, Chick, false))
	assert.Equal(t, HenMoves, MovesFor(Forest, Chick, true))
	assert.Equal(t, GiraffeMoves, MovesFor(Sky, Giraffe, true))
}

func TestDestinationLookup(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, DestinationLookup[FL][4])
	assert.Equal(t, []int{1, 3, 4}, DestinationLookup[SL][0])
	assert.Equal(t, []int{7}, DestinationLookup[FC][4])
	assert.Equal(t, []int{4}, DestinationLookup[SC][7])
	assert.Equal(t, []int{}, DestinationLookup[FC][10])
	assert.Equal(t, []int{7, 9, 11}, DestinationLookup[FH][10])
	assert.Equal(t, []int{1, 3, 5, 7}, DestinationLookup[SG][4])
	assert.Empty(t, DestinationLookup[XX][4])
}

func TestDirectionNames(t *testing.T) {
	assert.Equal(t, []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"},
		MapSlice(AllDirections[:], Direction.String))

	assert.Equal(t, "e", SE.String())
	assert.Equal(t, Elephant, SE.Species())
	assert.Equal(t, Sky, SE.Side())
	assert.Equal(t, [2]int{1, -1}, DirectionSteps[SouthEast])
}
