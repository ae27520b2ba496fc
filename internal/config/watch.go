package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"toolbridge/internal/logging"
)

// Watcher reloads a config file when it changes on disk and hands every
// valid reload to a callback. It watches the parent directory so editors
// that replace the file on save are still picked up.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	onChange    func(*Config)
	pending     time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats WatcherStats
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	Events   int
	Reloads  int
	Rejected int
	Errors   int
}

// NewWatcher creates a watcher for the config file at path. onChange runs on
// the watcher goroutine.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:     fw,
		path:        abs,
		onChange:    onChange,
		debounceDur: 200 * time.Millisecond, // Debounce rapid saves
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// SetDebounce changes how long the file must be quiet before a reload.
// It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounceDur = d
	w.mu.Unlock()
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Config("watching config file: %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		logging.ConfigWarn("error closing config watcher: %v", err)
	}
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.ConfigWarn("config watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logging.ConfigWarn("ignoring config change: %v", err)
		w.mu.Lock()
		w.stats.Rejected++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.Reloads++
	w.mu.Unlock()

	logging.Config("config reloaded from %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
