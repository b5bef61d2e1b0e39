package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

// Init configures the process-wide JSON logger. The level comes from
// LOG_LEVEL (debug, info, warn, error); unset or unknown means info.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
	Log = slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
