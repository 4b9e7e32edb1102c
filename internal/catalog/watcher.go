package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watcherDebounceInterval = 250 * time.Millisecond

// Watcher reloads a catalog file into a Store whenever the file changes.
// A file that fails to parse is logged and the previous catalog stays active.
type Watcher struct {
	path     string
	store    *Store
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onReload func(*Catalog)

	debounce  time.Duration
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// NewWatcher starts watching the directory holding path. The directory is
// watched rather than the file so editors that replace the file on save
// keep triggering reloads.
func NewWatcher(path string, store *Store, logger *slog.Logger, onReload func(*Catalog)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating catalog watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:      path,
		store:     store,
		watcher:   fsWatcher,
		logger:    logger,
		onReload:  onReload,
		debounce:  watcherDebounceInterval,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	go w.eventLoop()
	return w, nil
}

func (w *Watcher) eventLoop() {
	defer close(w.stoppedCh)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !isRelevant(event) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			debounceCh = debounceTimer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", "error", err)

		case <-debounceCh:
			debounceCh = nil
			w.reload()
		}
	}
}

func isRelevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.logger.Warn("catalog reload failed, keeping previous catalog", "path", w.path, "error", err)
		return
	}

	w.store.Set(c)
	w.logger.Info("catalog reloaded",
		"path", w.path,
		"sources", len(c.Sources),
		"hotspots", len(c.Hotspots),
	)
	if w.onReload != nil {
		w.onReload(c)
	}
}

// Stop ends the watch loop. Safe to call more than once.
func (w *Watcher) Stop() {
	select {
	case <-w.stopCh:
		return
	default:
		close(w.stopCh)
	}
	_ = w.watcher.Close()
	<-w.stoppedCh
}
