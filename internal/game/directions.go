package game

// Direction is one of the eight compass steps. North is Forest's forward
// direction, i.e. towards higher rows.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections
)

var AllDirections = [NumDirections]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Unit steps as (column delta, row delta).
var DirectionSteps = [NumDirections][2]int{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

func (d Direction) String() string {
	return [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}[d]
}

// Opposite is the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	return (d + 4) % NumDirections
}

// DirectionSet has bit d set when direction d is allowed.
type DirectionSet uint8

func DirectionSetOf(directions ...Direction) DirectionSet {
	s := DirectionSet(0)
	for _, d := range directions {
		s |= 1 << d
	}
	return s
}

func (s DirectionSet) Has(d Direction) bool {
	return s&(1<<d) != 0
}

func (s DirectionSet) Union(o DirectionSet) DirectionSet {
	return s | o
}

var (
	Orthogonal = DirectionSetOf(North, East, South, West)
	Diagonal   = DirectionSetOf(NorthEast, SouthEast, SouthWest, NorthWest)

	ChickMoves    = DirectionSetOf(North)
	HenMoves      = Orthogonal.Union(DirectionSetOf(NorthEast, NorthWest))
	ElephantMoves = Diagonal
	GiraffeMoves  = Orthogonal
	LionMoves     = Orthogonal.Union(Diagonal)
)

// MovesOf returns the steps a piece may take from Forest's point of view.
// The promoted flag only changes the answer for a Chick.
func MovesOf(species Species, promoted bool) DirectionSet {
	switch species {
	case Chick:
		if promoted {
			return HenMoves
		}
		return ChickMoves
	case Elephant:
		return ElephantMoves
	case Giraffe:
		return GiraffeMoves
	case Lion:
		return LionMoves
	}
	return 0
}

// Invert rotates every direction in the set by 180 degrees. Since bit d+4
// is the opposite of bit d, this is a nibble swap.
func Invert(s DirectionSet) DirectionSet {
	return (s << 4) | (s >> 4)
}

// MovesFor returns the steps available to a piece owned by side.
func MovesFor(side Side, species Species, promoted bool) DirectionSet {
	moves := MovesOf(species, promoted)
	if side == Sky {
		return Invert(moves)
	}
	return moves
}

// Permits reports whether a single step in one of the set's directions
// leads from startIndex to destIndex.
func Permits(s DirectionSet, startIndex int, destIndex int) bool {
	dc := ColumnOf(destIndex) - ColumnOf(startIndex)
	dr := RowOf(destIndex) - RowOf(startIndex)
	for _, d := range AllDirections {
		step := DirectionSteps[d]
		if step[0] == dc && step[1] == dr {
			return s.Has(d)
		}
	}
	return false
}

// DestinationLookup[piece][start] lists every on-board square the piece
// could step to from start, ignoring occupancy.
var DestinationLookup [11][NumSquares][]int = func() [11][NumSquares][]int {
	result := [11][NumSquares][]int{}
	for p := FC; p <= SL; p++ {
		moves := MovesFor(p.Side(), p.Species(), p.IsPromoted())
		for start := 0; start < NumSquares; start++ {
			dests := []int{}
			for dest := 0; dest < NumSquares; dest++ {
				if Permits(moves, start, dest) {
					dests = append(dests, dest)
				}
			}
			result[p][start] = dests
		}
	}
	return result
}()
