package resolve

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates an slog.Logger that respects the given log level string.
// The level string should be one of: disabled, trace, debug, info, warn, error.
// Records go to w, or to stderr when w is nil.
func NewLogger(logLevel string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "disabled":
		return slog.New(discardHandler{})
	case "trace", "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	default: // "error" or unknown
		level = slog.LevelError
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
