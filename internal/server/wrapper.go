package server

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claytono/go-itemcmd/internal/resolve"
)

// wrapSuggestions decorates a resolve handler to add spelling suggestions
// to unresolved reports. Suggestions are on by default. Set "suggest": false
// to disable them.
func (h *handlers) wrapSuggestions(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	if h.suggest == nil {
		return handler
	}

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := handler(ctx, req)
		if err != nil {
			return result, err
		}

		args := req.GetArguments()
		if on, ok := args["suggest"].(bool); ok && !on {
			return result, nil
		}

		if result == nil || result.IsError || len(result.Content) == 0 {
			return result, nil
		}
		text, ok := result.Content[0].(mcp.TextContent)
		if !ok {
			return result, nil
		}

		var report resolve.Report
		if err := json.Unmarshal([]byte(text.Text), &report); err != nil {
			h.logger.Debug("suggest: could not decode report, returning original", "error", err)
			return result, nil
		}
		if report.Kind != resolve.Unresolved.String() {
			return result, nil
		}

		q, _ := args["query"].(string)
		report.Suggestions = h.suggest.For(h.snap.Current()).Suggest(q)
		if len(report.Suggestions) == 0 {
			return result, nil
		}
		return jsonResult(report)
	}
}
