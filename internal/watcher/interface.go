package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one newly created file, identified by its base name.
// A returned error stops the watcher.
type EventHandler func(ctx context.Context, name string) error

// MatchFunc reports whether a created file should be handled.
type MatchFunc func(name string) bool
