package watcher

import "context"

// Watcher feeds media files dropped into a directory to a handler.
type Watcher interface {
	// Start blocks until ctx ends, then waits for in-flight handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one file. Errors are logged, not retried.
type EventHandler func(ctx context.Context, filePath string) error
