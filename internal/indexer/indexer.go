// Package indexer owns the lifetime of the item name index: it loads the
// catalog snapshot, publishes an immutable index for readers, and rebuilds
// the index when the snapshot file changes.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/claytono/go-itemcmd/internal/catalog"
	"github.com/claytono/go-itemcmd/internal/resolve"
)

// snapshot is one published catalog together with its index.
type snapshot struct {
	catalog  *catalog.Catalog
	index    *resolve.Index
	loadedAt time.Time
}

// Indexer holds the current index. Readers call Current and use the index
// they got for the whole request; reloads swap in a new snapshot.
type Indexer struct {
	src     catalog.Source
	logger  *slog.Logger
	current atomic.Pointer[snapshot]

	mu      sync.Mutex
	watcher *Watcher
}

// New creates an Indexer for src. src may be nil when no catalog is
// configured, in which case the index stays absent.
func New(src catalog.Source, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = resolve.NewLogger("disabled", nil)
	}
	return &Indexer{src: src, logger: logger}
}

// Source returns the configured catalog source, or nil.
func (ix *Indexer) Source() catalog.Source {
	return ix.src
}

// Load reads the source and publishes a fresh index. On failure the
// previously published index, if any, stays in place.
func (ix *Indexer) Load(ctx context.Context) error {
	if ix.src == nil {
		return fmt.Errorf("no catalog source configured: %w", catalog.ErrUnavailable)
	}
	start := time.Now()
	c, err := ix.src.Load(ctx)
	if err != nil {
		ix.logger.Warn("indexer: catalog load failed", "source", ix.src.String(), "error", err)
		return err
	}
	ix.current.Store(&snapshot{
		catalog:  c,
		index:    resolve.BuildIndex(c, ix.logger),
		loadedAt: time.Now(),
	})
	ix.logger.Info("indexer: catalog loaded",
		"source", ix.src.String(),
		"items", c.Len(),
		"duration", time.Since(start))
	return nil
}

// Current returns the published index, or nil when none has been loaded.
func (ix *Indexer) Current() *resolve.Index {
	if s := ix.current.Load(); s != nil {
		return s.index
	}
	return nil
}

// Catalog returns the published catalog, or nil.
func (ix *Indexer) Catalog() *catalog.Catalog {
	if s := ix.current.Load(); s != nil {
		return s.catalog
	}
	return nil
}

// Item looks up an item in the published catalog.
func (ix *Indexer) Item(hrid string) (catalog.Item, bool) {
	return ix.Catalog().Lookup(hrid)
}

// LoadedAt returns when the published snapshot was loaded.
func (ix *Indexer) LoadedAt() (time.Time, bool) {
	if s := ix.current.Load(); s != nil {
		return s.loadedAt, true
	}
	return time.Time{}, false
}

// Watch reloads the index whenever the snapshot file changes, until ctx is
// done or Close is called. Sources that are not files are not watched.
func (ix *Indexer) Watch(ctx context.Context, debounce time.Duration) error {
	path := sourcePath(ix.src)
	if path == "" {
		ix.logger.Debug("indexer: source is not a file, not watching")
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.watcher != nil {
		return fmt.Errorf("already watching %s", path)
	}
	w, err := NewWatcher(debounce)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Watch(path, func() {
		ix.logger.Debug("indexer: snapshot changed", "path", path)
		_ = ix.Load(ctx)
	}); err != nil {
		w.Stop()
		return fmt.Errorf("watch %s: %w", path, err)
	}
	ix.watcher = w

	go func() {
		<-ctx.Done()
		ix.Close()
	}()
	return nil
}

// Close stops watching. Safe to call multiple times.
func (ix *Indexer) Close() error {
	ix.mu.Lock()
	w := ix.watcher
	ix.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Stop()
}

func sourcePath(src catalog.Source) string {
	switch s := src.(type) {
	case *catalog.FileSource:
		return s.Path
	case *catalog.BoltSource:
		return s.Path
	}
	return ""
}
