package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// New builds the logger handed to every component. Without debug only warnings
// and errors are written; with debug everything is, along with source lines.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return NewLevel(w, level, debug)
}

// NewLevel builds a logger at an explicit level.
func NewLevel(w io.Writer, level slog.Level, addSource bool) *slog.Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  addSource,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	})
	return slog.New(h)
}
