// Package host defines the actions a resolved item command can trigger and
// provides implementations for a terminal session and for recording.
package host

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/claytono/go-itemcmd/internal/catalog"
	"github.com/dustin/go-humanize"
	"github.com/pkg/browser"
)

// Host performs the navigation a command resolves to.
type Host interface {
	// OpenDictionary shows the item dictionary entry for hrid.
	OpenDictionary(ctx context.Context, hrid string) error
	// OpenMarketplace shows the marketplace listing for hrid.
	OpenMarketplace(ctx context.Context, hrid string) error
	// OpenURL opens an external page.
	OpenURL(ctx context.Context, url string) error
	// Notify shows a one-line status message to the user.
	Notify(ctx context.Context, message string) error
}

// LookupFunc returns catalog details for an HRID.
type LookupFunc func(hrid string) (catalog.Item, bool)

// Terminal is a Host for an interactive terminal. Dictionary entries are
// printed; URLs are opened in the system browser.
type Terminal struct {
	out       io.Writer
	lookup    LookupFunc
	marketURL string
	open      func(url string) error
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithMarketURL sets the marketplace page template. "{hrid}" and "{name}"
// are replaced with the query-escaped item HRID and display name.
func WithMarketURL(tmpl string) Option {
	return func(t *Terminal) { t.marketURL = tmpl }
}

// WithOpener replaces the browser launcher.
func WithOpener(open func(url string) error) Option {
	return func(t *Terminal) { t.open = open }
}

// NewTerminal creates a Terminal writing to out. lookup may be nil.
func NewTerminal(out io.Writer, lookup LookupFunc, opts ...Option) *Terminal {
	t := &Terminal{
		out:    out,
		lookup: lookup,
		open:   browser.OpenURL,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) item(hrid string) catalog.Item {
	if t.lookup != nil {
		if it, ok := t.lookup(hrid); ok {
			return it
		}
	}
	return catalog.Item{HRID: hrid}
}

// OpenDictionary prints the item's dictionary card.
func (t *Terminal) OpenDictionary(_ context.Context, hrid string) error {
	_, err := io.WriteString(t.out, DictionaryCard(t.item(hrid)))
	return err
}

// OpenMarketplace opens the configured marketplace page, or prints the
// listing target when no template is configured.
func (t *Terminal) OpenMarketplace(ctx context.Context, hrid string) error {
	it := t.item(hrid)
	if t.marketURL == "" {
		_, err := fmt.Fprintf(t.out, "market: %s\n", label(it))
		return err
	}
	r := strings.NewReplacer(
		"{hrid}", url.QueryEscape(it.HRID),
		"{name}", url.QueryEscape(it.Name),
	)
	return t.OpenURL(ctx, r.Replace(t.marketURL))
}

// OpenURL opens u in the browser. When no browser can be started the URL is
// printed so the user can open it by hand.
func (t *Terminal) OpenURL(_ context.Context, u string) error {
	if err := t.open(u); err != nil {
		_, werr := fmt.Fprintf(t.out, "%s\n  (could not open browser: %v)\n", u, err)
		return werr
	}
	_, err := fmt.Fprintf(t.out, "opening %s\n", u)
	return err
}

// Notify prints message on its own line.
func (t *Terminal) Notify(_ context.Context, message string) error {
	_, err := fmt.Fprintln(t.out, message)
	return err
}

func label(it catalog.Item) string {
	if it.Name == "" {
		return it.HRID
	}
	return fmt.Sprintf("%s (%s)", it.Name, it.HRID)
}

// DictionaryCard renders the dictionary view of an item.
func DictionaryCard(it catalog.Item) string {
	var sb strings.Builder
	if it.Name != "" {
		sb.WriteString(it.Name + "\n")
	}
	sb.WriteString(fmt.Sprintf("  HRID:      %s\n", it.HRID))
	if it.Category != "" {
		sb.WriteString(fmt.Sprintf("  Category:  %s\n", it.Category))
	}
	if it.Level != 0 {
		sb.WriteString(fmt.Sprintf("  Level:     %d\n", it.Level))
	}
	if it.SellPrice != 0 {
		sb.WriteString(fmt.Sprintf("  Sells for: %s\n", humanize.Comma(int64(it.SellPrice))))
	}
	if it.Description != "" {
		sb.WriteString("  " + it.Description + "\n")
	}
	return sb.String()
}
