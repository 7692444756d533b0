// Package suggest offers "did you mean" corrections for item queries that
// match nothing in the catalog.
package suggest

import (
	"strings"
	"sync"

	"github.com/f1monkey/spellchecker"

	"github.com/claytono/go-itemcmd/internal/resolve"
)

// alphabet lists the runes the checker indexes; others are ignored.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789'-"

// Suggester corrects query words against the words used in item names.
type Suggester struct {
	sc  *spellchecker.Spellchecker
	idx *resolve.Index
}

// New builds a Suggester from the names in idx. It returns nil when idx is
// nil or the checker cannot be created; a nil Suggester suggests nothing.
func New(idx *resolve.Index) *Suggester {
	if idx == nil {
		return nil
	}
	sc, err := spellchecker.New(alphabet, spellchecker.WithMaxErrors(2))
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, name := range idx.Names() {
		for _, w := range strings.Fields(strings.ToLower(name)) {
			if !seen[w] {
				seen[w] = true
				sc.Add(w)
			}
		}
	}
	return &Suggester{sc: sc, idx: idx}
}

// Suggest returns item names the query was probably meant to be. Each word
// the checker does not know is replaced by its best correction and the
// corrected query is resolved again. It returns nil when nothing changed or
// the corrected query still matches nothing.
func (s *Suggester) Suggest(query string) []string {
	if s == nil {
		return nil
	}
	words := strings.Fields(strings.ToLower(query))
	changed := false
	for i, w := range words {
		if s.sc.IsCorrect(w) {
			continue
		}
		fixes, err := s.sc.Suggest(w, 1)
		if err != nil || len(fixes) == 0 {
			continue
		}
		words[i] = fixes[0]
		changed = true
	}
	if !changed {
		return nil
	}

	res := resolve.Resolve(strings.Join(words, " "), s.idx)
	switch res.Kind {
	case resolve.Resolved:
		return []string{res.Name}
	case resolve.Ambiguous:
		shown, _ := res.Shown()
		return shown
	}
	return nil
}

// Cache keeps the Suggester for the most recent index, rebuilding it when
// a reload publishes a different one.
type Cache struct {
	mu  sync.Mutex
	idx *resolve.Index
	s   *Suggester
}

// For returns a Suggester for idx.
func (c *Cache) For(idx *resolve.Index) *Suggester {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx != c.idx || c.s == nil {
		c.idx = idx
		c.s = New(idx)
	}
	return c.s
}
