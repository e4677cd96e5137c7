package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/runner"
	"github.com/cricklet/dobutsugo/internal/shards"
)

type UpdateToWeb struct {
	PositionString  string   `json:"positionString"`
	LastAction      string   `json:"lastAction"`
	Selection       string   `json:"selection"`
	PossibleActions []string `json:"possibleActions"`
	Player          string   `json:"player"`
	Winner          string   `json:"winner,omitempty"`
	Evaluation      string   `json:"evaluation,omitempty"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.PositionString, ", ", u.LastAction, ", ", u.Selection, ", ", u.PossibleActions)
}

type MessageFromWeb struct {
	NewPosition  *string `json:"newPosition"`
	ForestPlayer *string `json:"forestPlayer"`
	SkyPlayer    *string `json:"skyPlayer"`
	Selection    *string `json:"selection"`
	Action       *string `json:"action"`
	Ready        *bool   `json:"ready"`
	Rewind       *int    `json:"rewind"`
}

func (u MessageFromWeb) String() string {
	if u.NewPosition != nil {
		return fmt.Sprint("MessageFromWeb NewPosition: ", *u.NewPosition)
	}
	if u.ForestPlayer != nil {
		return fmt.Sprint("MessageFromWeb ForestPlayer: ", *u.ForestPlayer)
	}
	if u.SkyPlayer != nil {
		return fmt.Sprint("MessageFromWeb SkyPlayer: ", *u.SkyPlayer)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Action != nil {
		return fmt.Sprint("MessageFromWeb Action: ", *u.Action)
	}
	if u.Ready != nil {
		return fmt.Sprint("MessageFromWeb Ready: ", *u.Ready)
	}
	if u.Rewind != nil {
		return fmt.Sprint("MessageFromWeb Rewind: ", *u.Rewind)
	}
	return "MessageFromWeb unknown"
}

type PlayerType int

const (
	User PlayerType = iota
	Tablebase
	Unknown
)

func (t PlayerType) String() string {
	switch t {
	case User:
		return "user"
	case Tablebase:
		return "tablebase"
	}
	return "unknown"
}

func PlayerTypeFromString(s string) PlayerType {
	switch s {
	case "user":
		return User
	case "tablebase":
		return Tablebase
	}
	return Unknown
}

// session is the state of one websocket connection. send is called with
// every outgoing message, either an UpdateToWeb or a []string of log lines.
type session struct {
	runner      *runner.TablebaseRunner
	playerTypes [2]PlayerType
	ready       bool

	sendMutex sync.Mutex
	send      func(bytes []byte) error

	logger zerolog.Logger
}

func newSession(cache *shards.Cache, console io.Writer, send func(bytes []byte) error) *session {
	s := &session{
		runner:      runner.NewTablebaseRunner(cache),
		playerTypes: [2]PlayerType{User, User},
		send:        send,
	}

	forward := FuncWriter(func(message string) {
		bytes, err := json.Marshal([]string{message})
		if err != nil {
			fmt.Fprintln(console, "logging: json marshal:", err)
			return
		}
		err = s.write(bytes)
		if err != nil {
			fmt.Fprintln(console, "logging: websocket:", err)
		}
	})
	s.logger = zerolog.New(zerolog.MultiLevelWriter(console, forward)).
		With().Timestamp().Str("component", "server").Logger()

	err := s.runner.SetupPosition(runner.Position{PositionString: InitialPositionString})
	if !IsNil(err) {
		s.logger.Error().Err(err).Msg("setup")
	}
	return s
}

func (s *session) write(bytes []byte) error {
	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()
	return s.send(bytes)
}

func (s *session) finalizeUpdate(update UpdateToWeb) {
	update.PositionString = s.runner.PositionString()
	update.Player = s.runner.Player().String()
	if lastAction := s.runner.LastAction(); lastAction.HasValue() {
		update.LastAction = lastAction.Value().String()
	}
	if winner := s.runner.Winner(); winner.HasValue() {
		update.Winner = winner.Value().String()
	}

	s.logger.Debug().Stringer("update", update).Msg("sending")
	bytes, err := json.Marshal(update)
	if err != nil {
		s.logger.Error().Err(err).Msg("update: json marshal")
		return
	}
	err = s.write(bytes)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket")
	}
}

// performAction plays for the side to move when that side is not a user.
func (s *session) performAction(ctx context.Context) (bool, string) {
	if !s.ready || s.runner.IsTerminal() {
		return false, ""
	}
	if s.playerTypes[s.runner.Player()] != Tablebase {
		return false, ""
	}

	best, score, err := s.runner.Search(ctx)
	if !IsNil(err) {
		s.logger.Error().Err(err).Msg("search")
		return false, ""
	}
	if best.IsEmpty() {
		s.logger.Info().Str("position", s.runner.PositionString()).Msg("no action found")
		return false, ""
	}

	s.logger.Info().Str("action", best.Value()).Stringer("score", score.Value()).Msg("search")
	err = s.runner.PerformActionFromString(best.Value())
	if !IsNil(err) {
		s.logger.Error().Err(err).Str("action", best.Value()).Msg("perform")
		return false, ""
	}
	return true, score.Value().String()
}

func (s *session) handleMessageFromWeb(ctx context.Context, bytes []byte) {
	var message MessageFromWeb
	err := json.Unmarshal(bytes, &message)
	if err != nil {
		s.logger.Error().Err(err).Msg("handleMessageFromWeb: json unmarshal")
		return
	}
	s.logger.Debug().Stringer("message", message).Msg("received")

	var update UpdateToWeb
	shouldUpdate := false

	if message.NewPosition != nil {
		s.runner.Reset()
		err := s.runner.SetupPosition(runner.Position{PositionString: *message.NewPosition})
		if !IsNil(err) {
			s.logger.Error().Err(err).Msg("setup")
			s.runner.Reset()
			err = s.runner.SetupPosition(runner.Position{PositionString: InitialPositionString})
			if !IsNil(err) {
				s.logger.Error().Err(err).Msg("setup")
			}
		}
		shouldUpdate = true
	} else if message.ForestPlayer != nil {
		s.playerTypes[Forest] = PlayerTypeFromString(*message.ForestPlayer)
	} else if message.SkyPlayer != nil {
		s.playerTypes[Sky] = PlayerTypeFromString(*message.SkyPlayer)
	} else if message.Selection != nil {
		if *message.Selection != "" {
			update.Selection = *message.Selection
			result, err := s.runner.ActionsForSelection(*message.Selection)
			if !IsNil(err) {
				s.logger.Error().Err(err).Str("selection", *message.Selection).Msg("actions for")
			}
			update.PossibleActions = result
		}
		shouldUpdate = true
	} else if message.Action != nil {
		err := s.runner.PerformActionFromString(*message.Action)
		if !IsNil(err) {
			s.logger.Error().Err(err).Str("action", *message.Action).Msg("perform")
		}
		shouldUpdate = true
	} else if message.Rewind != nil {
		err := s.runner.Rewind(*message.Rewind)
		if !IsNil(err) {
			s.logger.Error().Err(err).Int("rewind", *message.Rewind).Msg("rewind")
		}
		shouldUpdate = true
	} else if message.Ready != nil {
		if !s.ready {
			s.ready = *message.Ready
			shouldUpdate = true
		}
	}

	if shouldUpdate {
		s.finalizeUpdate(update)
	}
	if performed, evaluation := s.performAction(ctx); performed {
		s.finalizeUpdate(UpdateToWeb{Evaluation: evaluation})
	}
}
