package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
)

// New creates a Watcher on inputDir. Matching files are handled one at a
// time, each after waiting settle for the writer to finish.
func New(inputDir string, match MatchFunc, handler EventHandler, log logger.Logger, settle time.Duration) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		match:    match,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   settle,
	}, nil
}
