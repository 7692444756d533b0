// Package dispatch routes parsed item commands to host actions.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/claytono/go-itemcmd/internal/command"
	"github.com/claytono/go-itemcmd/internal/host"
	"github.com/claytono/go-itemcmd/internal/resolve"
)

// DefaultWikiBaseURL is the item wiki. Page names are item names with
// spaces replaced by underscores.
const DefaultWikiBaseURL = "https://milkywayidle.wiki.gg/wiki/"

// Action is what a dispatched command did.
type Action string

const (
	ActionDictionary Action = "dictionary"
	ActionMarket     Action = "market"
	ActionURL        Action = "url"
	ActionNotice     Action = "notice"
	// ActionSkipped: the command needs an HRID and the query did not resolve.
	ActionSkipped Action = "skipped"
)

// Outcome describes one dispatched command.
type Outcome struct {
	Command command.Command
	Result  resolve.Result
	Action  Action
	// Target is the HRID, URL or notice text the action was given.
	Target string
}

// Options configures a Dispatcher.
type Options struct {
	// Index returns the current name index, or nil while no catalog is loaded.
	Index       func() *resolve.Index
	Host        host.Host
	WikiBaseURL string
	Logger      *slog.Logger
}

// Dispatcher resolves command arguments and calls the host.
type Dispatcher struct {
	index    func() *resolve.Index
	resolver *resolve.Resolver
	host     host.Host
	wikiBase string
	logger   *slog.Logger
}

// New creates a Dispatcher.
func New(opts Options) (*Dispatcher, error) {
	if opts.Host == nil {
		return nil, fmt.Errorf("host is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = resolve.NewLogger("disabled", nil)
	}
	wikiBase := opts.WikiBaseURL
	if wikiBase == "" {
		wikiBase = DefaultWikiBaseURL
	}
	index := opts.Index
	if index == nil {
		index = func() *resolve.Index { return nil }
	}
	return &Dispatcher{
		index:    index,
		resolver: resolve.New(logger),
		host:     opts.Host,
		wikiBase: wikiBase,
		logger:   logger,
	}, nil
}

// HandleLine dispatches line if it is an item command. The bool result is
// false for ordinary chat, which the caller should pass through unchanged.
func (d *Dispatcher) HandleLine(ctx context.Context, line string) (Outcome, bool, error) {
	cmd, ok := command.Parse(line)
	if !ok {
		return Outcome{}, false, nil
	}
	out, err := d.Run(ctx, cmd)
	return out, true, err
}

// Run resolves the command argument against the current index and performs
// the matching host action. Host errors are returned wrapped; they never
// affect the index.
func (d *Dispatcher) Run(ctx context.Context, cmd command.Command) (Outcome, error) {
	res := d.resolver.Resolve(cmd.Arg, d.index())
	out := Outcome{Command: cmd, Result: res}

	if res.Kind == resolve.Ambiguous {
		out.Action = ActionNotice
		out.Target = fmt.Sprintf("Multiple items match %q: %s", cmd.Arg, res.CandidateList())
		return out, d.call(cmd, func() error { return d.host.Notify(ctx, out.Target) })
	}

	switch cmd.Kind {
	case command.Wiki:
		out.Action = ActionURL
		out.Target = WikiURL(d.wikiBase, res.Name)
		return out, d.call(cmd, func() error { return d.host.OpenURL(ctx, out.Target) })

	case command.Dictionary, command.Market:
		if !res.HasID() {
			out.Action = ActionSkipped
			d.logger.Debug("dispatch: no item id, action skipped",
				"command", cmd.Kind.String(), "query", cmd.Arg, "formatted", res.Name)
			return out, nil
		}
		out.Target = res.HRID
		if cmd.Kind == command.Dictionary {
			out.Action = ActionDictionary
			return out, d.call(cmd, func() error { return d.host.OpenDictionary(ctx, res.HRID) })
		}
		out.Action = ActionMarket
		return out, d.call(cmd, func() error { return d.host.OpenMarketplace(ctx, res.HRID) })
	}

	return out, fmt.Errorf("unknown command kind %d", cmd.Kind)
}

func (d *Dispatcher) call(cmd command.Command, f func() error) error {
	if err := f(); err != nil {
		d.logger.Warn("dispatch: host action failed", "command", cmd.Kind.String(), "error", err)
		return fmt.Errorf("%s %s: %w", cmd.Kind.Keyword(), cmd.Arg, err)
	}
	return nil
}

// WikiURL returns the wiki page URL for an item name.
func WikiURL(base, name string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(strings.ReplaceAll(name, " ", "_"))
}
