// Package watch re-runs a callback when a file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/fileformat/pkg/log"
)

// Func is called after each change to the watched file. An error is logged
// and does not stop the watch.
type Func func(ctx context.Context) error

// File calls fn whenever the file at path is written, created, removed or
// renamed, until ctx is done. The parent directory is watched, so editors
// that replace the file on save are followed. File returns nil when ctx is
// done.
func File(ctx context.Context, path string, fn Func) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // Best effort.

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	logger := log.WithContext(ctx).With(slog.String("path", path))
	logger.DebugContext(ctx, "watching file")

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(evt.Name) != path || !evt.Has(fsnotify.Create|fsnotify.Remove|fsnotify.Write|fsnotify.Rename) {
				continue
			}

			logger.DebugContext(ctx, "file changed", slog.String("op", evt.Op.String()))

			err := fn(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "handle file change", slog.Any("err", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.ErrorContext(ctx, "watch file", slog.Any("err", err))
		}
	}
}
