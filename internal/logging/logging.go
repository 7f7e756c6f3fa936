// Package logging provides structured logging for hbaprobe.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Setup creates a logger that writes to ~/.hbaprobe/hbaprobe.log. The file
// is the only sink; stdout and stderr belong to the CLI contract.
func Setup(level string) (*slog.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, err
	}

	logDir := filepath.Join(home, ".hbaprobe")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, err
	}

	logPath := filepath.Join(logDir, "hbaprobe.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)

	cleanup := func() { f.Close() }
	return logger, cleanup, nil
}
