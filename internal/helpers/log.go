package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger installs a console logger writing to out as the global
// zerolog logger and returns it.
func SetupLogger(debug bool, out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	return logger
}

// FuncWriter adapts a callback into an io.Writer so log lines can be
// forwarded somewhere other than a file, e.g. a websocket.
type FuncWriter func(message string)

func (f FuncWriter) Write(p []byte) (int, error) {
	f(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
