package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches a pack directory and re-syncs the store when pack
// files change. Rapid bursts of events (editor save sequences, git
// checkouts) are debounced into a single sync.
type DirWatcher struct {
	dir      string
	source   Source
	store    Store
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// NewDirWatcher creates a watcher over the given directory. The debounce
// interval defaults to 200ms when zero.
func NewDirWatcher(dir string, source Source, store Store, interval time.Duration, logger *slog.Logger) *DirWatcher {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DirWatcher{
		dir:      dir,
		source:   source,
		store:    store,
		interval: interval,
		logger:   logger.With("component", "catalog.watcher"),
	}
}

// Watch blocks until the context is cancelled, re-syncing the store
// whenever a pack file changes.
func (w *DirWatcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.dir, err)
	}

	w.logger.Info("pack watcher started",
		"dir", w.dir,
		"debounce_ms", w.interval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("pack watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isPackEvent(event) {
				continue
			}

			w.logger.Debug("pack file changed",
				"path", event.Name,
				"op", event.Op.String(),
			)
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("pack watcher error", "error", err)
			// Keep watching despite errors.
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a sync.
func (w *DirWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.interval, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.source.Sync(ctx, w.store); err != nil {
			w.logger.Error("pack re-sync failed", "error", err)
		}
	})
}

// isPackEvent reports whether an fsnotify event concerns a pack file.
func isPackEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
