package runner

import (
	"context"
	"errors"

	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

var ErrIllegalAction = errors.New("illegal action")

// Runner is a game session driven by text: positions, actions and squares
// all use the notation of the game package.
type Runner interface {
	PerformActionFromString(s string) Error
	SetupPosition(position Position) Error
	PerformActions(startPos string, actions []string) Error
	ActionsForSelection(s string) ([]string, Error)
	Rewind(num int) Error
	Reset()
	Search(ctx context.Context) (Optional[string], Optional[tablebase.Score], Error)
	PositionString() string
	IsNew() bool
}

type Position struct {
	PositionString string
	Actions        []string
}
