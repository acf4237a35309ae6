package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/mediascribe/internal/logger"
)

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	opts      Options
	semaphore chan struct{}
	wg        sync.WaitGroup

	// inFlight dedupes paths that fire CREATE more than once.
	mu       sync.Mutex
	inFlight map[string]bool
}

// Start begins monitoring the input directory for new media files.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.inputDir)

	if w.opts.ScanExisting {
		if err := w.scan(ctx); err != nil {
			w.logger.Warn(ctx, "Initial scan of %s failed: %v", w.inputDir, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.opts.Match(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New media detected: %s", event.Name)
			if err := w.dispatch(ctx, event.Name, w.opts.Settle); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := filepath.Join(w.inputDir, e.Name())
		if e.IsDir() || !w.opts.Match(path) {
			continue
		}
		w.logger.Info(ctx, "Found pending media: %s", path)
		if err := w.dispatch(ctx, path, 0); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler in a goroutine once a slot is free.
func (w *implWatcher) dispatch(ctx context.Context, path string, settle time.Duration) error {
	w.mu.Lock()
	if w.inFlight[path] {
		w.mu.Unlock()
		return nil
	}
	w.inFlight[path] = true
	w.mu.Unlock()

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		w.done(path)
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()
		defer w.done(path)

		if settle > 0 {
			select {
			case <-time.After(settle):
			case <-ctx.Done():
				return
			}
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
