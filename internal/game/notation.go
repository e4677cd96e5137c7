package game

import (
	"fmt"
	"strings"

	. "github.com/cricklet/dobutsugo/internal/helpers"
)

const InitialPositionString = "gle/1c1/1C1/ELG f -"

func StringFromBoardIndex(index int) string {
	return string(rune('a'+ColumnOf(index))) + string(rune('1'+RowOf(index)))
}

func BoardIndexFromString(s string) (int, Error) {
	if len(s) != 2 {
		return 0, Errorf("invalid square %q", s)
	}
	column := int(s[0]) - 'a'
	row := int(s[1]) - '1'
	if !IsOnBoard(row, column) {
		return 0, Errorf("invalid square %q", s)
	}
	return IndexOf(row, column), NilError
}

// String renders a move as "b1b2" and a drop as "E*b2".
func (a Action) String() string {
	if a.IsDrop() {
		return a.Species.Letter() + "*" + StringFromBoardIndex(a.DestIndex)
	}
	return StringFromBoardIndex(a.StartIndex) + StringFromBoardIndex(a.DestIndex)
}

func ActionFromString(s string) (Action, Error) {
	if len(s) == 4 && s[1] == '*' {
		species, ok := SpeciesFromLetter(s[0])
		if !ok {
			return Action{}, Errorf("invalid drop species in %q", s)
		}
		dest, err := BoardIndexFromString(s[2:4])
		if !IsNil(err) {
			return Action{}, Errorf("invalid drop %q: %w", s, err)
		}
		return Drop(species, dest), NilError
	}

	if len(s) != 4 {
		return Action{}, Errorf("invalid action %q", s)
	}
	start, err := BoardIndexFromString(s[0:2])
	if !IsNil(err) {
		return Action{}, Errorf("invalid move %q: %w", s, err)
	}
	dest, err := BoardIndexFromString(s[2:4])
	if !IsNil(err) {
		return Action{}, Errorf("invalid move %q: %w", s, err)
	}
	return Move(start, dest), NilError
}

func PositionStringForBoard(b BoardArray) string {
	s := ""
	for row := NumRows - 1; row >= 0; row-- {
		numSpaces := 0
		for column := 0; column < NumColumns; column++ {
			piece := b[IndexOf(row, column)]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.String()
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if row != 0 {
			s += "/"
		}
	}
	return s
}

func PositionStringForPlayer(p Side) string {
	if p == Forest {
		return "f"
	}
	return "s"
}

func positionStringForHands(hands [2]Hand) string {
	s := ""
	for _, side := range AllSides {
		for _, species := range AllSpecies {
			letter := PieceForSide[side][species].String()
			s += strings.Repeat(letter, int(hands[side][species]))
		}
	}
	if len(s) == 0 {
		return "-"
	}
	return s
}

// PositionString encodes g as "<rows 4..1> <player> <hands>", for example
// "gle/1c1/1C1/ELG f -". Forest pieces are upper case.
func PositionString(g GameState) string {
	return fmt.Sprintf("%v %v %v",
		PositionStringForBoard(g.Board),
		PositionStringForPlayer(g.Player),
		positionStringForHands(g.Hands))
}

// GameStateFromPositionString parses s and checks that it describes a
// position a game could reach.
func GameStateFromPositionString(s string) (GameState, Error) {
	g, err := ParsePositionString(s)
	if !IsNil(err) {
		return GameState{}, err
	}
	err = ValidatePosition(g)
	if !IsNil(err) {
		return GameState{}, Errorf("%w in '%v'", err, s)
	}
	return g, NilError
}

// ParsePositionString only checks syntax, so it accepts diagrams with
// missing material.
func ParsePositionString(s string) (GameState, Error) {
	ss := strings.Fields(s)
	if len(ss) != 3 && len(ss) != 2 {
		return GameState{}, Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}

	g := GameState{}

	rows := strings.Split(ss[0], "/")
	if len(rows) != NumRows {
		return GameState{}, Errorf("wrong num %v of rows in '%v'", len(rows), ss[0])
	}
	for i, rowString := range rows {
		row := NumRows - 1 - i
		column := 0
		for j := 0; j < len(rowString); j++ {
			c := rowString[j]
			if c >= '1' && c <= '3' {
				column += int(c - '0')
				continue
			}
			piece, ok := PieceFromString(c)
			if !ok {
				return GameState{}, Errorf("invalid piece %q in '%v'", c, rowString)
			}
			if column >= NumColumns {
				return GameState{}, Errorf("row '%v' is too long", rowString)
			}
			g.Board[IndexOf(row, column)] = piece
			column++
		}
		if column != NumColumns {
			return GameState{}, Errorf("row '%v' has %v columns", rowString, column)
		}
	}

	switch ss[1] {
	case "f":
		g.Player = Forest
	case "s":
		g.Player = Sky
	default:
		return GameState{}, Errorf("invalid player %q", ss[1])
	}

	if len(ss) == 3 && ss[2] != "-" {
		for j := 0; j < len(ss[2]); j++ {
			piece, ok := PieceFromString(ss[2][j])
			if !ok || piece.IsPromoted() {
				return GameState{}, Errorf("invalid hand piece %q in '%v'", ss[2][j], ss[2])
			}
			if g.Hands[piece.Side()][piece.Species()] >= PiecesPerSpecies {
				return GameState{}, Errorf("too many %v in '%v'", piece.Species(), ss[2])
			}
			g.Hands[piece.Side()][piece.Species()]++
		}
	}

	return g, NilError
}
