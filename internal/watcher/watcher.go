package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
)

type implWatcher struct {
	inputDir string
	match    MatchFunc
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	settle   time.Duration
}

// Start monitors the input directory until ctx is cancelled or the handler
// returns an error. Files are handled sequentially in event order.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if !event.Has(fsnotify.Create) {
				continue
			}

			name := filepath.Base(event.Name)
			if !w.match(name) {
				w.logger.Debug(ctx, "Ignoring non-matching file: %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New file detected: %s", event.Name)

			// Give the writer time to finish before the codec reads the file
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.handler(ctx, name); err != nil {
				return fmt.Errorf("handle %s: %w", name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
