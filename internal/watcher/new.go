package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/mediascribe/internal/logger"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
)

// Options tunes a Watcher. Zero values pick the defaults.
type Options struct {
	// MaxConcurrent bounds handlers running at once. Default 1.
	MaxConcurrent int
	// Settle is the pause after CREATE before a file is handed over, giving
	// the writer time to finish. Default 500ms.
	Settle time.Duration
	// Match selects files to handle. Default media.IsMediaFile.
	Match func(path string) bool
	// ScanExisting hands over matching files already present at Start.
	ScanExisting bool
}

// New creates a Watcher on inputDir.
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}
	if opts.Match == nil {
		opts.Match = media.IsMediaFile
	}

	return &implWatcher{
		inputDir:  inputDir,
		handler:   handler,
		logger:    log,
		watcher:   watcher,
		opts:      opts,
		semaphore: make(chan struct{}, opts.MaxConcurrent),
		inFlight:  make(map[string]bool),
	}, nil
}
