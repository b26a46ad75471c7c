// Package xlog sets up the engine's structured logger.
//
// Grounded on the teacher's pack-mate danmuck-edgectl's
// internal/observability/logger.go: zerolog with a console writer and
// an app-name field stamped on every event, the ambient logging
// convention the corpus reaches for whenever a library is available
// rather than wrapping log.Printf by hand.
package xlog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger tagged with component (e.g. "engine",
// "transport") at the given level ("debug", "info", "warn", "error";
// an unrecognized level falls back to info).
func New(component, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
