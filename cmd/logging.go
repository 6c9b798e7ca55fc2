package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"batchpix/internal/config"
)

// newLogger builds the process logger. The returned file is nil unless the
// logs go to a file, in which case the caller closes it.
func newLogger(c config.LoggingConfig) (*slog.Logger, *os.File, error) {
	var (
		w    io.Writer = os.Stderr
		file *os.File
	)
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, file = f, f
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(c.Level),
	}

	var handler slog.Handler
	if c.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), file, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
