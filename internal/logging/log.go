// Package logging holds the program-wide leveled logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level gates debug output. 0 silences D entirely, 5 is maximally chatty.
var Level int

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// Setup redirects log output, mainly useful for tests.
func Setup(w io.Writer) {
	logger = newLogger(w)
}

// E logs an error message.
func E(format string, args ...any) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

// W logs a warning message.
func W(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// I logs an informational message.
func I(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// S logs a success message.
func S(format string, args ...any) {
	logger.Info().Str("status", "ok").Msg(fmt.Sprintf(format, args...))
}

// D logs a debug message if the given level is at or below the set Level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// P prints directly to stdout, bypassing log decoration. Used for
// user-facing command output.
func P(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
