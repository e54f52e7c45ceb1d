// internal/logutil/log.go
package logutil

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the run logger. Console output by default; jsonOut switches to
// machine-readable JSON lines. quiet raises the level to warn so progress
// chatter disappears but problems still surface.
func New(out io.Writer, quiet, jsonOut bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	w := out
	if !jsonOut {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
