// Package logging provides the shared structured logger for cli-mindmap.
//
// All components derive their logger from one slog handler so output format
// and level are consistent. The level is read once from MINDMAP_LOG_LEVEL
// (debug, info, warn, error; default info).
//
// The terminal UI owns stdout and redraws the whole screen, so log output
// goes to stderr by default. Set MINDMAP_LOG_FILE to append to a file
// instead, which is the practical choice while the UI is running:
//
//	MINDMAP_LOG_LEVEL=debug MINDMAP_LOG_FILE=/tmp/mindmap.log mindmap notes.hmm
//
// Usage:
//
//	log := logging.New("engine")
//	log.Debug("dispatch", "action", action)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger tagged with component=<component>. An empty
// component returns the base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(output(os.Getenv("MINDMAP_LOG_FILE")), &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("MINDMAP_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// output opens the log file when one is configured and falls back to stderr
// when it is unset or cannot be opened.
func output(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
