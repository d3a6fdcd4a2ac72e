// Package logging provides file-based logging for taskdeck. Log output goes
// to a file in the user state directory so it never interferes with CLI
// output or the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file name within the state directory.
const FileName = "taskdeck.log"

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultDir returns the log directory under the user state directory
// (XDG_STATE_HOME or ~/.local/state).
func DefaultDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "taskdeck")
}

// New opens a file-backed slog.Logger at the given level in dir. The caller
// owns the returned closer. An empty dir disables logging.
func New(dir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if dir == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
