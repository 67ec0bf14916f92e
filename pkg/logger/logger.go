package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is the application logger. It writes JSON at info level until Init
// replaces it.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init installs the JSON handler at the given level ("debug", "info",
// "warn", "error"); unknown levels mean debug.
func Init(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
