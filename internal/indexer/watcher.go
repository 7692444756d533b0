package indexer

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last event on the
// snapshot file before reporting a change. Hosts often rewrite the file in
// several steps (truncate, write, rename).
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a single file. It watches the parent directory
// so that replace-by-rename is seen as well as in-place writes.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex
	timer    *time.Timer
}

// NewWatcher creates a new file watcher. A debounce of zero uses DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fw:       fw,
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Watch starts monitoring path. onChange runs on its own goroutine once the
// file has been quiet for the debounce interval.
func (w *Watcher) Watch(path string, onChange func()) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.fw.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(onChange)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are dropped; fsnotify keeps delivering events

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule(onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, onChange)
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fw.Close()
}
