// Package logger configures the application's structured slog logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup returns a text-handler logger at the given level, tagged with the
// component name. Unknown levels fall back to info.
func Setup(level, component string) *slog.Logger {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	return log.With(slog.String("component", component))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
