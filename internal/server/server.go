package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claytono/go-itemcmd/internal/catalog"
	"github.com/claytono/go-itemcmd/internal/dispatch"
	"github.com/claytono/go-itemcmd/internal/host"
	"github.com/claytono/go-itemcmd/internal/query"
	"github.com/claytono/go-itemcmd/internal/resolve"
	"github.com/claytono/go-itemcmd/internal/suggest"
)

// Version is set at build time.
var Version = "dev"

const ServerName = "go-itemcmd"

// Snapshot exposes the currently loaded catalog and its name index.
// Either may be nil while nothing is loaded.
type Snapshot interface {
	Current() *resolve.Index
	Catalog() *catalog.Catalog
}

// Options configures server creation.
type Options struct {
	Snapshot    Snapshot
	WikiBaseURL string
	Suggest     bool // offer spelling suggestions for unresolved queries
	Logger      *slog.Logger
}

// defaultListFields is the projection list_items uses when called with no
// filter, search or fields.
var defaultListFields = []string{"name", "hrid"}

type handlers struct {
	snap     Snapshot
	wikiBase string
	resolver *resolve.Resolver
	suggest  *suggest.Cache
	logger   *slog.Logger
}

// New creates a new MCP server with the item tools registered.
func New(opts Options) (*server.MCPServer, error) {
	h, err := newHandlers(opts)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(mcp.NewTool("resolve_item",
		mcp.WithDescription("Resolve a free-text item name to its catalog name and HRID. "+
			"Returns kind (resolved, ambiguous or unresolved), the matched name and hrid, "+
			"up to 5 candidates for ambiguous queries, and spelling suggestions for unresolved ones."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Item name or fragment, any case")),
		mcp.WithBoolean("suggest", mcp.Description("Include spelling suggestions (default true)")),
	), h.wrapSuggestions(h.resolveItem))

	s.AddTool(mcp.NewTool("chat_command",
		mcp.WithDescription("Run a chat line such as \"/item radiant fiber\", \"/wiki cheese\" or "+
			"\"/market silk fiber\" and return the actions it would perform."),
		mcp.WithString("line", mcp.Required(), mcp.Description("Chat line starting with /item, /wiki or /market")),
	), h.chatCommand)

	s.AddTool(mcp.NewTool("list_items",
		mcp.WithDescription("List catalog items as JSON, optionally filtered, searched and projected. "+
			"With no arguments only name and hrid are returned."),
		mcp.WithString("search", mcp.Description("Case-insensitive text search across string fields")),
		mcp.WithObject("filter", mcp.Description(
			`Field filters: {"category": "/item_categories/resource"}, {"name": {"contains": "fiber"}}, {"hrid": {"regex": "^/items/s"}}`)),
		mcp.WithArray("fields", mcp.Description("Fields to return (name, hrid, category, description, sell_price, level)"),
			mcp.Items(map[string]any{"type": "string"})),
	), h.listItems)

	return s, nil
}

func newHandlers(opts Options) (*handlers, error) {
	if opts.Snapshot == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = resolve.NewLogger("disabled", nil)
	}
	wikiBase := opts.WikiBaseURL
	if wikiBase == "" {
		wikiBase = dispatch.DefaultWikiBaseURL
	}
	h := &handlers{
		snap:     opts.Snapshot,
		wikiBase: wikiBase,
		resolver: resolve.New(logger),
		logger:   logger,
	}
	if opts.Suggest {
		h.suggest = &suggest.Cache{}
	}
	return h, nil
}

func (h *handlers) resolveItem(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, _ := req.GetArguments()["query"].(string)
	q = strings.TrimSpace(q)
	if q == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	res := h.resolver.Resolve(q, h.snap.Current())
	return jsonResult(res.Report(nil))
}

func (h *handlers) chatCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, _ := req.GetArguments()["line"].(string)

	rec := &host.Recorder{}
	d, err := dispatch.New(dispatch.Options{
		Index:       h.snap.Current,
		Host:        rec,
		WikiBaseURL: h.wikiBase,
		Logger:      h.logger,
	})
	if err != nil {
		return nil, err
	}

	out, ok, err := d.HandleLine(ctx, line)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not an item command: %q", line)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if out.Action == dispatch.ActionSkipped {
		return mcp.NewToolResultText(fmt.Sprintf("skipped: %s", out.Result.Display())), nil
	}
	return mcp.NewToolResultText(strings.Join(rec.Actions, "\n")), nil
}

func (h *handlers) listItems(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := h.snap.Catalog()
	if c == nil {
		return mcp.NewToolResultError("no item catalog loaded"), nil
	}
	opts := query.ParseOptions(req.GetArguments())
	if !opts.HasQuery() {
		opts.Fields = defaultListFields
	}
	return jsonResult(query.Items(c.Items(), opts))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
