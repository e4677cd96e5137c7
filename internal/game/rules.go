package game

import (
	"errors"

	. "github.com/cricklet/dobutsugo/internal/helpers"
)

var ErrInvalidPosition = errors.New("invalid position")

func InitialState() GameState {
	return GameState{
		Board: BoardArray{
			FE, FL, FG,
			XX, FC, XX,
			XX, SC, XX,
			SG, SL, SE,
		},
		Player: Forest,
	}
}

// IsTerminal reports whether the game is over: either the side to move
// has lost its Lion, or its Lion survived a turn on the enemy home row.
func IsTerminal(g GameState) bool {
	return Winner(g).HasValue()
}

func Winner(g GameState) Optional[Side] {
	if g.PassiveHand()[Lion] > 0 {
		return Some(g.Enemy())
	}
	lion := g.LionIndex(g.Player)
	if lion >= 0 && RowOf(lion) == g.Enemy().HomeRow() {
		return Some(g.Player)
	}
	return Empty[Side]()
}

func LegalActions(g GameState) []Action {
	result := make([]Action, 0, 32)
	AppendLegalActions(g, &result)
	return result
}

// AppendLegalActions appends to output so callers walking many positions
// can reuse one buffer.
func AppendLegalActions(g GameState, output *[]Action) {
	if IsTerminal(g) {
		return
	}

	hand := g.ActiveHand()
	for _, species := range DroppableSpecies {
		if hand[species] == 0 {
			continue
		}
		for dest, p := range g.Board {
			if p == XX {
				*output = append(*output, Drop(species, dest))
			}
		}
	}

	for start, p := range g.Board {
		if !p.BelongsTo(g.Player) {
			continue
		}
		for _, dest := range DestinationLookup[p][start] {
			if g.Board[dest].BelongsTo(g.Player) {
				continue
			}
			*output = append(*output, Move(start, dest))
		}
	}
}

func IsLegal(g GameState, a Action) bool {
	return Contains(LegalActions(g), a)
}

// Apply returns the state after a. It must only be called with an action
// from LegalActions(g); use TryApply for unchecked input.
func Apply(g GameState, a Action) GameState {
	result := g

	switch a.ActionType {
	case DropAction:
		{
			result.Board[a.DestIndex] = PieceFor(g.Player, a.Species, false)
			result.Hands[g.Player][a.Species]--
		}
	case MoveAction:
		{
			startPiece := g.Board[a.StartIndex]
			captured := g.Board[a.DestIndex]
			if captured != XX {
				result.Hands[g.Player][captured.Species()]++
			}

			endPiece := startPiece
			if startPiece.Species() == Chick && RowOf(a.DestIndex) == g.Enemy().HomeRow() {
				endPiece = PieceFor(g.Player, Chick, true)
			}

			result.Board[a.DestIndex] = endPiece
			result.Board[a.StartIndex] = XX
		}
	}

	result.Player = g.Player.Other()
	return result
}

func TryApply(g GameState, a Action) Optional[GameState] {
	if !IsLegal(g, a) {
		return Empty[GameState]()
	}
	return Some(Apply(g, a))
}

// Inverted relabels the position so that the sides swap roles, rotating the
// board by 180 degrees. Inverting twice gives back the original state.
func (g GameState) Inverted() GameState {
	result := GameState{
		Hands:  [2]Hand{g.Hands[Sky], g.Hands[Forest]},
		Player: g.Player.Other(),
	}
	for i, p := range g.Board {
		result.Board[InvertIndex(i)] = p.WithSide(p.Side().Other())
	}
	return result
}

// Inverted maps an action onto the inverted position.
func (a Action) Inverted() Action {
	result := a
	if a.ActionType == MoveAction {
		result.StartIndex = InvertIndex(a.StartIndex)
	}
	result.DestIndex = InvertIndex(a.DestIndex)
	return result
}

// PieceCounts totals every species over the board and both hands.
func PieceCounts(g GameState) [NumSpecies]int {
	result := [NumSpecies]int{}
	for _, p := range g.Board {
		if p != XX {
			result[p.Species()]++
		}
	}
	for _, hand := range g.Hands {
		for species, n := range hand {
			result[species] += int(n)
		}
	}
	return result
}

// ValidatePosition checks that every piece is accounted for exactly once and
// that the Lions are where a game could have left them: one each on the
// board, or one on the board and the other in the hand of the side that just
// captured it.
func ValidatePosition(g GameState) Error {
	counts := PieceCounts(g)
	for species, n := range counts {
		if n != PiecesPerSpecies {
			return Errorf("%w: %v %v", ErrInvalidPosition, n, Species(species))
		}
	}

	lions := [2]int{}
	for _, p := range g.Board {
		if p != XX && p.Species() == Lion {
			lions[p.Side()]++
		}
	}
	if g.ActiveHand()[Lion] > 0 {
		return Errorf("%w: %v holds a lion on its own turn", ErrInvalidPosition, g.Player)
	}
	passive := g.Enemy()
	if g.PassiveHand()[Lion] > 0 {
		if lions[passive] != 1 {
			return Errorf("%w: %v captured a lion without one of its own", ErrInvalidPosition, passive)
		}
		return NilError
	}
	if lions[Forest] != 1 || lions[Sky] != 1 {
		return Errorf("%w: forest has %v lions, sky has %v", ErrInvalidPosition, lions[Forest], lions[Sky])
	}
	return NilError
}
