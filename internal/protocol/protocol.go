package protocol

import (
	"context"
	"fmt"
	"strings"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	. "github.com/cricklet/dobutsugo/internal/runner"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

// LineRunner speaks a UCI-like text protocol:
//
//	dsi | isready | newgame
//	position startpos [moves a1 a2 ...]
//	position pos <board> <player> <hands> [moves a1 a2 ...]
//	go | legal | d | fingerprint
type LineRunner struct {
	Runner Runner

	// Unicode renders boards with emoji and colours for "d".
	Unicode bool
}

func NewLineRunner(r Runner) *LineRunner {
	return &LineRunner{Runner: r}
}

func parsePositionString(input string) (string, Error) {
	s := strings.TrimPrefix(input, "position ")

	if strings.HasPrefix(s, "pos ") {
		s = strings.TrimPrefix(s, "pos ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return InitialPositionString, NilError
	}

	return "", Errorf("couldn't parse '%v'", s)
}

func parseActions(input string) []string {
	result := []string{}
	if strings.Contains(input, " moves ") {
		fields := strings.Fields(strings.SplitN(input, " moves ", 2)[1])
		result = append(result, fields...)
	}
	return result
}

func parsePosition(input string) (Position, Error) {
	positionString, err := parsePositionString(input)
	if !IsNil(err) {
		return Position{}, err
	}
	return Position{PositionString: positionString, Actions: parseActions(input)}, NilError
}

func (u *LineRunner) state() (GameState, Error) {
	if u.Runner.IsNew() {
		return GameState{}, Errorf("no position; use 'position' first")
	}
	return GameStateFromPositionString(u.Runner.PositionString())
}

func (u *LineRunner) HandleInput(input string) ([]string, Error) {
	return u.HandleInputContext(context.Background(), input)
}

func (u *LineRunner) HandleInputContext(ctx context.Context, input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	result := []string{}

	if input == "dsi" {
		result = append(result, "id name dobutsugo 1")
		result = append(result, "dsiok")
	} else if input == "newgame" {
		u.Runner.Reset()
	} else if input == "isready" {
		result = append(result, "readyok")
	} else if strings.HasPrefix(input, "position ") {
		position, err := parsePosition(input)
		if !IsNil(err) {
			return result, err
		}
		if u.Runner.IsNew() {
			err = u.Runner.SetupPosition(position)
		} else {
			err = u.Runner.PerformActions(position.PositionString, position.Actions)
		}
		if !IsNil(err) {
			return result, err
		}
	} else if input == "go" || strings.HasPrefix(input, "go ") {
		action, score, err := u.Runner.Search(ctx)
		if !IsNil(err) {
			return result, err
		}
		result = append(result, bestActionString(action, score))
	} else if input == "legal" {
		g, err := u.state()
		if !IsNil(err) {
			return result, err
		}
		result = append(result, strings.Join(MapSlice(LegalActions(g), Action.String), " "))
	} else if input == "d" {
		g, err := u.state()
		if !IsNil(err) {
			return result, err
		}
		if u.Unicode {
			result = append(result, strings.Split(g.Unicode(), "\n")...)
		} else {
			result = append(result, strings.Split(g.String(), "\n")...)
		}
		result = append(result, "position "+PositionString(g))
	} else if input == "fingerprint" {
		g, err := u.state()
		if !IsNil(err) {
			return result, err
		}
		f := Compress(g)
		result = append(result, fmt.Sprintf("fingerprint %v %v", uint64(f), f))
	} else if input != "" {
		return result, Errorf("unknown command '%v'", input)
	}
	return result, NilError
}

func bestActionString(action Optional[string], score Optional[tablebase.Score]) string {
	if action.IsEmpty() {
		return "bestaction (none)"
	}
	if score.IsEmpty() {
		return fmt.Sprintf("bestaction %v", action.Value())
	}
	return fmt.Sprintf("bestaction %v score %v (%v)", action.Value(), int(score.Value()), score.Value())
}
