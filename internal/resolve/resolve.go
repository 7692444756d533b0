// Package resolve maps user-typed item names to canonical catalog items.
// A query is matched exactly (case-insensitive) first, then as a substring
// of every indexed name. When neither yields a single item the query is
// either reported as ambiguous or formatted on a best-effort basis.
package resolve

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind tells which variant a Result is.
type Kind int

const (
	// Unresolved: no catalog item matched; Name holds the formatted query.
	Unresolved Kind = iota
	// Resolved: exactly one catalog item matched.
	Resolved
	// Ambiguous: several items matched; Candidates holds their names.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unresolved"
	}
}

// Result is the outcome of resolving one query.
type Result struct {
	Kind Kind
	// Name is the canonical display name (Resolved) or the best-effort
	// formatted query (Unresolved). Empty when Ambiguous.
	Name string
	// HRID is set only when Resolved.
	HRID string
	// Candidates lists every matching name in catalog order (Ambiguous only).
	Candidates []string
}

// HasID reports whether the result carries an item identifier.
func (r Result) HasID() bool {
	return r.Kind == Resolved && r.HRID != ""
}

// Resolve resolves query against idx. A nil idx means no catalog is
// available, and the query is formatted without validation. Resolve never
// modifies idx and always returns a result.
func Resolve(query string, idx *Index) Result {
	if idx == nil {
		return unresolved(query)
	}

	if id, ok := idx.Lookup(query); ok {
		name, _ := idx.Name(id)
		return Result{Kind: Resolved, Name: name, HRID: id}
	}

	folded := strings.ToLower(query)

	var matches []string
	for _, key := range idx.keys {
		if strings.Contains(key, folded) {
			matches = append(matches, key)
		}
	}

	switch len(matches) {
	case 0:
		return unresolved(query)
	case 1:
		id, _ := idx.Lookup(matches[0])
		name, _ := idx.Name(id)
		return Result{Kind: Resolved, Name: name, HRID: id}
	}

	candidates := make([]string, len(matches))
	for i, key := range matches {
		id, _ := idx.Lookup(key)
		candidates[i], _ = idx.Name(id)
	}
	return Result{Kind: Ambiguous, Candidates: candidates}
}

func unresolved(query string) Result {
	return Result{Kind: Unresolved, Name: FormatBestEffort(query)}
}

// FormatBestEffort title-cases each space-separated word of query and joins
// the words with underscores: "ancient log" -> "Ancient_Log". Every single
// space is a boundary, so repeated spaces yield empty words.
func FormatBestEffort(query string) string {
	words := strings.Split(query, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, "_")
}

// titleWord upper-cases the first rune of w and lower-cases the rest.
func titleWord(w string) string {
	if w == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// Resolver wraps Resolve with debug logging.
type Resolver struct {
	logger *slog.Logger
}

// New creates a new Resolver.
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(discardHandler{})
	}
	return &Resolver{logger: logger}
}

// Resolve resolves query against idx and logs the outcome.
func (r *Resolver) Resolve(query string, idx *Index) Result {
	res := Resolve(query, idx)
	r.logger.Debug("resolve: query resolved",
		"query", query,
		"kind", res.Kind.String(),
		"name", res.Name,
		"hrid", res.HRID,
		"candidates", len(res.Candidates),
		"index_present", idx != nil)
	return res
}

// discardHandler is an slog.Handler that discards all records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
