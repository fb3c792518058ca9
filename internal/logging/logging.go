// Package logging builds the zerolog logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level string
	// File, when set, receives JSON lines instead of Out. The TUI uses it so
	// log output never lands on the terminal it draws on.
	File string
	Out  io.Writer
	// Console switches Out to zerolog's human readable writer.
	Console bool
}

// New returns the logger and a close func for the log file (a no-op when
// logging to Out).
func New(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("nível de log inválido %q", opts.Level)
		}
		level = l
	}

	closeFn := func() error { return nil }
	var w io.Writer
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("abrir log %s: %w", opts.File, err)
		}
		w = f
		closeFn = f.Close
	case opts.Out != nil:
		w = opts.Out
	default:
		w = os.Stderr
	}
	if opts.Console && opts.File == "" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, closeFn, nil
}
