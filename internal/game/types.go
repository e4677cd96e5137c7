package game

import (
	"fmt"
)

const (
	NumRows    = 4
	NumColumns = 3
	NumSquares = NumRows * NumColumns

	// PiecesPerSpecies is the number of each species in play, one per side
	// at the start.
	PiecesPerSpecies = 2
)

// Side is one of the two players. Forest moves first and starts on row 0;
// Sky starts on row 3.
type Side uint8

const (
	Forest Side = iota
	Sky
)

var AllSides = [2]Side{Forest, Sky}

func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	return [2]string{"forest", "sky"}[s]
}

// HomeRow is the row a side's pieces start on. A Chick promotes on its
// opponent's home row, and a Lion standing on it wins by the try rule.
func (s Side) HomeRow() int {
	if s == Forest {
		return 0
	}
	return NumRows - 1
}

type Species uint8

const (
	Chick Species = iota
	Elephant
	Giraffe
	Lion
	NumSpecies
)

var AllSpecies = [NumSpecies]Species{Chick, Elephant, Giraffe, Lion}

var DroppableSpecies = [3]Species{Chick, Elephant, Giraffe}

func (s Species) String() string {
	return [NumSpecies]string{"chick", "elephant", "giraffe", "lion"}[s]
}

func (s Species) Letter() string {
	return [NumSpecies]string{"C", "E", "G", "L"}[s]
}

func SpeciesFromLetter(c byte) (Species, bool) {
	switch c {
	case 'C', 'c':
		return Chick, true
	case 'E', 'e':
		return Elephant, true
	case 'G', 'g':
		return Giraffe, true
	case 'L', 'l':
		return Lion, true
	}
	return Chick, false
}

// Piece is the content of one square. XX is the empty square; every other
// value names an owner, a species and (for chicks) the promotion state.
type Piece uint8

const (
	XX Piece = iota
	FC
	FH
	FE
	FG
	FL
	SC
	SH
	SE
	SG
	SL
)

type pieceData struct {
	side     Side
	species  Species
	promoted bool
}

var _pieceData = [11]pieceData{
	XX: {},
	FC: {Forest, Chick, false},
	FH: {Forest, Chick, true},
	FE: {Forest, Elephant, false},
	FG: {Forest, Giraffe, false},
	FL: {Forest, Lion, false},
	SC: {Sky, Chick, false},
	SH: {Sky, Chick, true},
	SE: {Sky, Elephant, false},
	SG: {Sky, Giraffe, false},
	SL: {Sky, Lion, false},
}

var PieceForSide [2][NumSpecies]Piece = func() [2][NumSpecies]Piece {
	result := [2][NumSpecies]Piece{}

	result[Forest][Chick] = FC
	result[Forest][Elephant] = FE
	result[Forest][Giraffe] = FG
	result[Forest][Lion] = FL

	result[Sky][Chick] = SC
	result[Sky][Elephant] = SE
	result[Sky][Giraffe] = SG
	result[Sky][Lion] = SL

	return result
}()

// PieceFor returns the occupant for the given owner and species. Only a
// Chick can be promoted; the flag is ignored for every other species.
func PieceFor(side Side, species Species, promoted bool) Piece {
	if species == Chick && promoted {
		if side == Forest {
			return FH
		}
		return SH
	}
	return PieceForSide[side][species]
}

func (p Piece) IsEmpty() bool {
	return p == XX
}

func (p Piece) Side() Side {
	return _pieceData[p].side
}

func (p Piece) Species() Species {
	return _pieceData[p].species
}

func (p Piece) IsPromoted() bool {
	return _pieceData[p].promoted
}

func (p Piece) BelongsTo(side Side) bool {
	return p != XX && p.Side() == side
}

// Demoted is the piece as it would be held in hand: promotion is lost.
func (p Piece) Demoted() Piece {
	return PieceFor(p.Side(), p.Species(), false)
}

// WithSide relabels the owner, keeping species and promotion.
func (p Piece) WithSide(side Side) Piece {
	if p == XX {
		return XX
	}
	return PieceFor(side, p.Species(), p.IsPromoted())
}

func (p Piece) String() string {
	return [11]string{
		" ",
		"C", "H", "E", "G", "L",
		"c", "h", "e", "g", "l",
	}[p]
}

func (p Piece) Unicode() string {
	return [11]string{
		" ",
		"🐤", "🐔", "🐘", "🦒", "🦁",
		"🐤", "🐔", "🐘", "🦒", "🦁",
	}[p]
}

func PieceFromString(c byte) (Piece, bool) {
	switch c {
	case 'C':
		return FC, true
	case 'H':
		return FH, true
	case 'E':
		return FE, true
	case 'G':
		return FG, true
	case 'L':
		return FL, true
	case 'c':
		return SC, true
	case 'h':
		return SH, true
	case 'e':
		return SE, true
	case 'g':
		return SG, true
	case 'l':
		return SL, true
	}
	return XX, false
}

// BoardArray is indexed row*3 + column. Row 0 is Forest's home row.
type BoardArray [NumSquares]Piece

func RowOf(index int) int {
	return index / NumColumns
}

func ColumnOf(index int) int {
	return index % NumColumns
}

func IndexOf(row int, column int) int {
	return row*NumColumns + column
}

func IsOnBoard(row int, column int) bool {
	return row >= 0 && row < NumRows && column >= 0 && column < NumColumns
}

// InvertIndex rotates a square index by 180 degrees.
func InvertIndex(index int) int {
	return NumSquares - 1 - index
}

// Hand counts the captured pieces a side may drop, by species.
type Hand [NumSpecies]uint8

func (h Hand) IsEmpty() bool {
	return h == Hand{}
}

type GameState struct {
	Board  BoardArray
	Hands  [2]Hand
	Player Side
}

func (g GameState) Enemy() Side {
	return g.Player.Other()
}

func (g GameState) ActiveHand() Hand {
	return g.Hands[g.Player]
}

func (g GameState) PassiveHand() Hand {
	return g.Hands[g.Enemy()]
}

// LionIndex returns the square holding side's Lion, or -1 when that Lion
// has been captured.
func (g GameState) LionIndex(side Side) int {
	lion := PieceForSide[side][Lion]
	for i, p := range g.Board {
		if p == lion {
			return i
		}
	}
	return -1
}

type ActionType uint8

const (
	MoveAction ActionType = iota
	DropAction
)

func (t ActionType) String() string {
	switch t {
	case MoveAction:
		return "MoveAction"
	case DropAction:
		return "DropAction"
	}
	return "Invalid"
}

// Action is either a move of a piece on the board (StartIndex -> DestIndex)
// or a drop of a held Species onto DestIndex. Actions are comparable with ==.
type Action struct {
	ActionType ActionType
	StartIndex int
	DestIndex  int
	Species    Species
}

func Move(startIndex int, destIndex int) Action {
	return Action{ActionType: MoveAction, StartIndex: startIndex, DestIndex: destIndex}
}

func Drop(species Species, destIndex int) Action {
	return Action{ActionType: DropAction, DestIndex: destIndex, Species: species}
}

func (a Action) IsDrop() bool {
	return a.ActionType == DropAction
}

func (a Action) DebugString() string {
	if a.IsDrop() {
		return fmt.Sprintf("drop %v at %v", a.Species, StringFromBoardIndex(a.DestIndex))
	}
	return fmt.Sprintf("move %v to %v", StringFromBoardIndex(a.StartIndex), StringFromBoardIndex(a.DestIndex))
}
