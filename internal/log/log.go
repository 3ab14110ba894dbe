package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/codex-k8s/trademe-mcp-server/internal/constants"
)

// New builds a slog logger on stderr with the given level, format and logger name.
func New(level, format, name string) *slog.Logger {
	return NewWriter(os.Stderr, level, format, name)
}

// NewWriter builds a slog logger writing to w.
func NewWriter(w io.Writer, level, format, name string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case constants.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if name != "" {
		logger = logger.With("logger", name)
	}
	return logger
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
