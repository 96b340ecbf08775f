package internal

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

// InitLogging installs a text slog handler at the given level (debug|info|warn|error) as
// the default structured logger, and keeps the standard logger writing plain lines to
// stdout with microsecond timestamps.
func InitLogging(level string) {
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)})
	slog.SetDefault(slog.New(h))

	// SetDefault reroutes the log package through h; point it back at stdout.
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// ParseLevel maps a config level name to a slog level; unknown names mean info.
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
