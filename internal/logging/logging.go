// Package logging sets up the diagnostic logger for refile.
//
// User-facing lines go through the output package. This logger carries the
// per-candidate decision trace and is silent unless debugging is enabled.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. With debug off it discards
// everything below warn level.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}

	logger := zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()
	if debug {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
