package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for further writes before
// emitting a reload signal. Editors and atomic-rename saves produce bursts
// of events for a single logical change.
const defaultDebounce = 500 * time.Millisecond

// Watcher emits a signal whenever the automation configuration file changes
// on disk, debounced so one logical edit yields one signal.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   bool

	events chan struct{}
}

// NewWatcher creates a watcher for the configuration file at path.
// A zero debounce selects the default.
func NewWatcher(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		path:     path,
		debounce: debounce,
		fsw:      fsw,
		logger:   logger,
		events:   make(chan struct{}, 1),
	}, nil
}

// Events returns the channel of reload signals.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Start begins watching. The parent directory is watched rather than the file
// itself so atomic-rename saves keep working. Stops when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("watching automation config", "path", w.path, "debounce", w.debounce)
	return nil
}

// Stop stops the watcher. The events channel is closed by the processing
// goroutine when it exits.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.pendingMu.Lock()
				w.pending = true
				w.pendingMu.Unlock()
				w.logger.Debug("config change detected", "op", event.Op.String())
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = false
	w.pendingMu.Unlock()

	if !pending {
		return
	}

	select {
	case w.events <- struct{}{}:
	default:
		// A reload is already queued; collapsing signals is fine.
	}
}
