// Package watch reports when a data file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long the file must stay quiet before a reload is sent.
const Debounce = 100 * time.Millisecond

// ReloadMsg tells the UI the file at Path changed.
type ReloadMsg struct {
	Path string
}

// Watch calls send with a [ReloadMsg] each time the file at path is written
// or replaced, coalescing bursts of events. It blocks until ctx is done.
//
// The parent directory is watched so editors replacing the file through a
// rename are noticed.
func Watch(ctx context.Context, path string, send func(ReloadMsg)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	slog.Debug("Watching data file", "path", abs)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(Debounce, func() {
				if ctx.Err() != nil {
					return
				}
				slog.Debug("Data file changed", "path", abs)
				send(ReloadMsg{Path: abs})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}
