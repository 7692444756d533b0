package resolve

import (
	"log/slog"
	"strings"

	"github.com/claytono/go-itemcmd/internal/catalog"
)

// Index is the case-insensitive name index built from a catalog.
// Keys are lowercase item names, values are HRIDs; names maps each HRID
// back to its original-case display name. An Index is never modified after
// BuildIndex returns.
type Index struct {
	ids   map[string]string // lowercase name -> HRID
	names map[string]string // HRID -> display name
	keys  []string          // lowercase names in catalog order
}

// BuildIndex builds the name index for a catalog. When two items fold to the
// same lowercase name, or share an HRID, the first one in catalog order wins.
func BuildIndex(c *catalog.Catalog, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(discardHandler{})
	}
	items := c.Items()
	idx := &Index{
		ids:   make(map[string]string, len(items)),
		names: make(map[string]string, len(items)),
		keys:  make([]string, 0, len(items)),
	}
	var skipped int
	for _, it := range items {
		key := strings.ToLower(it.Name)
		if _, dup := idx.ids[key]; dup {
			skipped++
			logger.Debug("resolve: duplicate item name skipped", "name", it.Name, "hrid", it.HRID)
			continue
		}
		if _, dup := idx.names[it.HRID]; dup {
			skipped++
			logger.Debug("resolve: duplicate item hrid skipped", "name", it.Name, "hrid", it.HRID)
			continue
		}
		idx.ids[key] = it.HRID
		idx.names[it.HRID] = it.Name
		idx.keys = append(idx.keys, key)
	}
	logger.Debug("resolve: index built", "items", len(idx.keys), "skipped", skipped)
	return idx
}

// Len returns the number of indexed names.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

// Lookup returns the HRID for an exact, case-insensitive name.
func (idx *Index) Lookup(name string) (string, bool) {
	if idx == nil {
		return "", false
	}
	id, ok := idx.ids[strings.ToLower(name)]
	return id, ok
}

// Name returns the display name for an HRID.
func (idx *Index) Name(hrid string) (string, bool) {
	if idx == nil {
		return "", false
	}
	name, ok := idx.names[hrid]
	return name, ok
}

// Names returns all display names in catalog order.
func (idx *Index) Names() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, 0, len(idx.keys))
	for _, key := range idx.keys {
		out = append(out, idx.names[idx.ids[key]])
	}
	return out
}
