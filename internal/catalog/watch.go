package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/takayama/storefront/internal/logger"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a catalog file whenever it changes on disk. The parent
// directory is watched so editors that replace the file by rename are seen.
// A file that fails to load is logged and the previous catalog stays.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onReload func(*Catalog)

	mu    sync.Mutex
	timer *time.Timer

	done    chan struct{}
	stopped chan struct{}
}

// NewWatcher creates a watcher for path. onReload is called from the
// watcher goroutine with each successfully loaded catalog.
func NewWatcher(path string, onReload func(*Catalog)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating catalog watcher: %w", err)
	}
	return &Watcher{
		watcher:  w,
		path:     abs,
		onReload: onReload,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Start adds the watch and starts the event loop.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	go w.eventLoop()
	logger.Info("catalog: watching %s", w.path)
	return nil
}

// Stop shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	close(w.done)
	<-w.stopped

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.done:
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
			logger.Warn("catalog watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	// Editors often write in several steps; reload once they settle.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	c, err := Load(w.path)
	if err != nil {
		logger.Warn("catalog: keeping previous catalog: %v", err)
		return
	}
	logger.Info("catalog: reloaded %d products from %s", c.Len(), w.path)
	w.onReload(c)
}
