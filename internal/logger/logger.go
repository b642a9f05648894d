// Package logger provides the zerolog loggers used by the zerocode binaries.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
	"github.com/rs/zerolog/log"
)

// stderr is swapped in tests.
var stderr io.Writer = os.Stderr

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// configureErrors makes .Stack() render pkg/errors stacks, attaching one to
// plain errors.
func configureErrors() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		if _, ok := err.(stackTracer); ok {
			return err
		}
		return pkgerrors.WithStack(err)
	}
}

// New returns a JSON logger on stderr tagged with the service name. Stdout
// stays free for command output and the MCP stdio transport.
// Call sites should use .Stack() on error events to include stacks.
func New(serviceName string) zerolog.Logger {
	configureErrors()
	return zerolog.New(stderr).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// NewConsole returns a human readable logger on stderr. Colour is used only
// when stderr is a terminal.
func NewConsole(serviceName string) zerolog.Logger {
	configureErrors()
	out := stderr
	color := false
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		out = colorable.NewColorable(f)
		color = true
	}
	w := zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: "15:04:05"}
	return zerolog.New(w).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// SetGlobal installs l as the package-global logger used by library code and
// sets the minimum level.
func SetGlobal(l zerolog.Logger, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = l
}

// ParseLevel maps debug|info|warn|error to a level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
