package tablebase

import "fmt"

// Score is a distance to the end of the game, from the point of view of the
// side to move. Positive scores win, negative scores lose and 0 is a draw.
// A score s > 0 means a win in MaxDistance - s plies.
type Score int16

const MaxDistance = 201

// WinInOne is reported for an action that captures the enemy Lion. It is the
// score of the successor, whose side to move has already lost.
const WinInOne Score = -MaxDistance

const Draw Score = 0

func (s Score) IsWin() bool {
	return s > 0
}

func (s Score) IsLoss() bool {
	return s < 0
}

// Plies is the number of plies until the game ends, or 0 for a draw.
func (s Score) Plies() int {
	switch {
	case s > 0:
		return MaxDistance - int(s)
	case s < 0:
		return MaxDistance + int(s)
	}
	return 0
}

func (s Score) String() string {
	switch {
	case s > 0:
		return fmt.Sprintf("win in %v", s.Plies())
	case s < 0:
		return fmt.Sprintf("loss in %v", s.Plies())
	}
	return "draw"
}
