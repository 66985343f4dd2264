// Package logging builds the structured logger for the journal CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and destination of log records.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean warn.
	Level string
	// Verbose forces the debug level.
	Verbose bool
	// File, when set, receives JSON records through a rotating writer
	// instead of Stderr.
	File string
	// Stderr receives text records when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// ParseLevel maps a config value to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New returns a logger for opts and a Closer that releases the log file.
// The Closer is a no-op when logging to stderr.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, nil, err
		}
		w := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), w, nil
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return slog.New(slog.NewTextHandler(stderr, handlerOpts)), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
