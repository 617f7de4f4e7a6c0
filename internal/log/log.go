// Package log sets up the process wide slog logger. The terminal belongs to
// the UI, so interactive runs log to a rotated file.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	charmlog "charm.land/log/v2"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Setup sends the default logger to a JSON log file at path, rotated by
// size. Every record carries the id of this run. The returned function
// closes the file.
func Setup(path string, verbose bool) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	slog.SetDefault(slog.New(handler).With("run", uuid.NewString()))
	return w.Close, nil
}

// SetupConsole sends the default logger to w in a human readable format.
// It is used by commands that do not take over the terminal.
func SetupConsole(w io.Writer, verbose bool) {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmlog.Level(level(verbose)),
	})
	slog.SetDefault(slog.New(handler))
}

// RecoverPanic logs a panic in the calling goroutine and runs cleanup. It
// must be deferred.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error("Panic recovered", "name", name, "panic", r, "stack", string(debug.Stack()))
		if cleanup != nil {
			cleanup()
		}
	}
}
