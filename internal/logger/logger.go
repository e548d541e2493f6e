// Package logger provides the structured slog logger used across the server.
// All logs are written in JSON format, either to stderr or to a rotating
// <logDir>/system.log.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 14
)

// New creates a JSON slog.Logger. When logDir is empty logs go to stderr;
// otherwise to <logDir>/system.log with size-based rotation. The directory
// is created if it does not exist.
func New(logDir string, level slog.Level) (*slog.Logger, error) {
	if logDir == "" {
		return NewWithWriter(os.Stderr, level), nil
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}
	w := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "system.log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return NewWithWriter(w, level), nil
}

// NewWithWriter creates a JSON slog.Logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return NewWithWriter(io.Discard, slog.LevelError)
}
