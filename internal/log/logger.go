// Package log configures the process-wide slog default. Every other
// package logs through slog directly; this only decides handler and
// level once at startup.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default logger. format is "text" or "json"; level
// is one of debug, info, warn, error. Unknown values fall back to text
// and info.
func Setup(format, level string, component string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if component != "" {
		logger = logger.With("component", component)
	}
	slog.SetDefault(logger)
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
