package logging

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON slog logger. Structured records matter here:
// cancellation audit entries are consumed downstream by log tooling.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
