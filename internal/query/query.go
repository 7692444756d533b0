// Package query filters, searches and projects catalog listings.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/claytono/go-itemcmd/internal/catalog"
)

// Options holds listing parameters from CLI flags or MCP arguments.
type Options struct {
	Filter map[string]any // field -> value | {"contains":"..."} | {"regex":"..."}
	Search string         // case-insensitive text search across string fields
	Fields []string       // field projection (nil = all fields)
}

// HasQuery returns true if any query parameters are set.
func (o Options) HasQuery() bool {
	return len(o.Filter) > 0 || o.Search != "" || len(o.Fields) > 0
}

// ParseOptions extracts query options from MCP request arguments.
// Arguments of the wrong type are ignored.
func ParseOptions(args map[string]any) Options {
	var opts Options
	if f, ok := args["filter"].(map[string]any); ok {
		opts.Filter = f
	}
	if s, ok := args["search"].(string); ok {
		opts.Search = s
	}
	if arr, ok := args["fields"].([]any); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				opts.Fields = append(opts.Fields, s)
			}
		}
	}
	return opts
}

// ParseFilters turns CLI filter expressions into a filter map.
//
//	field=value    exact match
//	field~=text    case-insensitive substring
//	field/=regex   regular expression
func ParseFilters(exprs []string) (map[string]any, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	filter := make(map[string]any, len(exprs))
	for _, expr := range exprs {
		field, value, ok := strings.Cut(expr, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q: want field=value", expr)
		}
		switch {
		case strings.HasSuffix(field, "~"):
			filter[strings.TrimSuffix(field, "~")] = map[string]any{"contains": value}
		case strings.HasSuffix(field, "/"):
			if _, err := regexp.Compile(value); err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
			}
			filter[strings.TrimSuffix(field, "/")] = map[string]any{"regex": value}
		default:
			filter[field] = value
		}
	}
	return filter, nil
}

// Items lists catalog items as field maps after applying opts.
// Order: filter → search → fields (projection last so filter/search see all fields).
func Items(items []catalog.Item, opts Options) []map[string]any {
	result := make([]map[string]any, 0, len(items))
	search := strings.ToLower(opts.Search)
	for _, it := range items {
		fields := it.Fields()
		if !matchesFilter(fields, opts.Filter) {
			continue
		}
		if search != "" && !matchesSearch(fields, search) {
			continue
		}
		if len(opts.Fields) > 0 {
			fields = project(fields, opts.Fields)
		}
		result = append(result, fields)
	}
	return result
}

func matchesFilter(item map[string]any, filter map[string]any) bool {
	for field, want := range filter {
		got, exists := item[field]
		if !exists || !matchesValue(fmt.Sprintf("%v", got), want) {
			return false
		}
	}
	return true
}

func matchesValue(got string, want any) bool {
	op, ok := want.(map[string]any)
	if !ok {
		return got == fmt.Sprintf("%v", want)
	}
	if s, ok := op["contains"].(string); ok {
		return strings.Contains(strings.ToLower(got), strings.ToLower(s))
	}
	if expr, ok := op["regex"].(string); ok {
		matched, err := regexp.MatchString(expr, got)
		return err == nil && matched
	}
	return false // unknown operator
}

func matchesSearch(item map[string]any, searchLower string) bool {
	for _, value := range item {
		if s, ok := value.(string); ok && strings.Contains(strings.ToLower(s), searchLower) {
			return true
		}
	}
	return false
}

func project(item map[string]any, fields []string) map[string]any {
	projected := make(map[string]any, len(fields))
	for _, field := range fields {
		if val, ok := item[field]; ok {
			projected[field] = val
		}
	}
	return projected
}
