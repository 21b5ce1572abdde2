// Package watcher observes a replay directory tree and delivers each newly
// written replay file to a callback exactly once.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long the watcher waits after a filesystem event
// before trusting that the producing process has finished writing the file.
const DefaultSettleDelay = 3 * time.Second

// ReplayWatcher watches a directory tree for new replay files. Partial
// writes are absorbed by a settle delay plus a zero-size check, and a
// processed-set spanning the watcher's lifetime guarantees one-shot
// delivery per file name.
type ReplayWatcher struct {
	dir      string
	settle   time.Duration
	onReplay func(path string)

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	mu        sync.Mutex
	started   bool
	processed map[string]bool
}

// Config carries the optional knobs of NewReplayWatcher.
type Config struct {
	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration
}

// NewReplayWatcher creates a watcher over dir. onReplay is invoked from the
// watcher's worker goroutine once per delivered replay file.
func NewReplayWatcher(dir string, onReplay func(path string), cfg Config) (*ReplayWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	settle := cfg.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	return &ReplayWatcher{
		dir:       dir,
		settle:    settle,
		onReplay:  onReplay,
		watcher:   w,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		processed: make(map[string]bool),
	}, nil
}

// Start begins watching in a background goroutine. The directory and its
// existing subdirectories are all subscribed; subdirectories created later
// are picked up from their create events.
func (rw *ReplayWatcher) Start() error {
	err := filepath.WalkDir(rw.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return rw.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", rw.dir, err)
	}

	slog.Info("replay watcher started", "dir", rw.dir)
	rw.mu.Lock()
	rw.started = true
	rw.mu.Unlock()
	go rw.watchLoop()
	return nil
}

// Stop stops the watcher and releases its directory subscriptions. It
// returns after the worker goroutine has exited; a settle wait in progress
// is abandoned. Stop is idempotent.
func (rw *ReplayWatcher) Stop() {
	rw.stopOnce.Do(func() {
		close(rw.done)
		_ = rw.watcher.Close()
		rw.mu.Lock()
		started := rw.started
		rw.mu.Unlock()
		if started {
			<-rw.stopped
		}
		slog.Info("replay watcher stopped", "dir", rw.dir)
	})
}

// Run watches until ctx is cancelled, then stops. This is the blocking
// operating mode; Start/Stop is the background one.
func (rw *ReplayWatcher) Run(ctx context.Context) error {
	if err := rw.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	rw.Stop()
	return ctx.Err()
}

// watchLoop is the single worker: it owns the settle waits and the
// callback dispatch, so at most one file is being settled at a time.
func (rw *ReplayWatcher) watchLoop() {
	defer close(rw.stopped)

	for {
		select {
		case <-rw.done:
			return
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = rw.watcher.Add(event.Name)
					continue
				}
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				rw.handle(event.Name)
			}
		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "dir", rw.dir, "error", err)
		}
	}
}

func (rw *ReplayWatcher) handle(path string) {
	if !strings.EqualFold(filepath.Ext(path), ".rep") {
		return
	}

	name := filepath.Base(path)
	if rw.isProcessed(name) {
		return
	}

	// Give the game time to finish writing the file.
	slog.Info("new replay detected", "file", name, "settle", rw.settle)
	select {
	case <-rw.done:
		return
	case <-time.After(rw.settle):
	}

	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("replay stat failed", "file", name, "error", err)
		return
	}
	if info.Size() == 0 {
		// Still being written; a later event for this name retries.
		slog.Debug("replay still empty after settle, deferring", "file", name)
		return
	}

	rw.markProcessed(name)
	rw.deliver(path)
}

// deliver invokes the callback behind a recover boundary: a panicking or
// failing consumer must not take down the watcher, and the name stays in
// the processed set (failed deliveries are not retried).
func (rw *ReplayWatcher) deliver(path string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("replay callback panicked", "file", filepath.Base(path), "panic", r)
		}
	}()
	if rw.onReplay != nil {
		rw.onReplay(path)
	}
}

func (rw *ReplayWatcher) isProcessed(name string) bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.processed[name]
}

func (rw *ReplayWatcher) markProcessed(name string) {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	rw.processed[name] = true
}
