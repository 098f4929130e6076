package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the user palettes directory and reports changed
// palette files so the window can hot-reload them.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	dir     string

	onChangeCallback func(name string)

	done    chan struct{}
	exited  chan struct{}
	running bool
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		dir:     dir,
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}, nil
}

// SetChangeCallback sets the callback invoked with the palette name
// (file name without extension) whenever a palette file is written.
func (w *Watcher) SetChangeCallback(callback func(name string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Unlock()
		return err
	}
	w.running = true
	w.mu.Unlock()

	go w.watch(ctx)

	w.logger.Debug("palette watcher started", "dir", w.dir)
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.exited)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != PaletteExt {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			base := filepath.Base(event.Name)
			name := base[:len(base)-len(PaletteExt)]
			w.logger.Debug("palette file changed", "file", event.Name)

			w.mu.Lock()
			callback := w.onChangeCallback
			w.mu.Unlock()
			if callback != nil {
				callback(name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("palette watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher and releases the fsnotify handle.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	close(w.done)
	w.mu.Unlock()

	<-w.exited
	w.logger.Debug("palette watcher stopped")
	return w.watcher.Close()
}

func (w *Watcher) isRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
