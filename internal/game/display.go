package game

import (
	"strings"
)

func (b BoardArray) String() string {
	result := ""
	for row := NumRows - 1; row >= 0; row-- {
		for column := 0; column < NumColumns; column++ {
			p := b[IndexOf(row, column)]
			if p == XX {
				result += "."
			} else {
				result += p.String()
			}
		}
		if row != 0 {
			result += "\n"
		}
	}
	return result
}

const _hintForeground = "\033[38;5;244m"
const _forestForeground = "\033[38;5;34m"
const _skyForeground = "\033[38;5;33m"
const _lightBackground = "\033[48;5;230m"
const _darkBackground = "\033[48;5;223m"
const _resetColors = "\x1b[0m"

func (b BoardArray) Unicode() string {
	result := "  "
	for column := 0; column < NumColumns; column++ {
		result += _hintForeground + " " + string(rune('a'+column)) + "  " + _resetColors
	}
	result += "\n"

	for row := NumRows - 1; row >= 0; row-- {
		result += _hintForeground + string(rune('1'+row)) + " " + _resetColors
		for column := 0; column < NumColumns; column++ {
			piece := b[IndexOf(row, column)]

			if (row+column)%2 == 0 {
				result += _darkBackground
			} else {
				result += _lightBackground
			}

			switch {
			case piece == XX:
				result += "    "
			case piece.Side() == Forest:
				result += _forestForeground + " " + piece.Unicode() + " "
			default:
				result += _skyForeground + " " + piece.Unicode() + " "
			}
			result += _resetColors
		}
		result += "\n"
	}
	return result
}

func (h Hand) String() string {
	parts := []string{}
	for _, species := range AllSpecies {
		if h[species] > 0 {
			parts = append(parts, strings.Repeat(species.Letter(), int(h[species])))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "")
}

func (g GameState) String() string {
	return strings.Join([]string{
		"sky hand: " + g.Hands[Sky].String(),
		g.Board.String(),
		"forest hand: " + g.Hands[Forest].String(),
		"to move: " + g.Player.String(),
	}, "\n")
}

// Unicode is String with coloured emoji pieces, for terminals.
func (g GameState) Unicode() string {
	return strings.Join([]string{
		"sky hand: " + g.Hands[Sky].String(),
		g.Board.Unicode(),
		"forest hand: " + g.Hands[Forest].String(),
		"to move: " + g.Player.String(),
	}, "\n")
}
