package query

import (
	"testing"

	"github.com/claytono/go-itemcmd/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testItems = []catalog.Item{
	{Name: "Radiant Fiber", HRID: "/items/radiant_fiber", Category: "/item_categories/resource", Level: 90},
	{Name: "Silk Fiber", HRID: "/items/silk_fiber", Category: "/item_categories/resource", Level: 35},
	{Name: "Cheese Sword", HRID: "/items/cheese_sword", Category: "/item_categories/equipment", Description: "Smells strong."},
}

func names(rows []map[string]any) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r["name"].(string))
	}
	return out
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected Options
	}{
		{
			name:     "empty args",
			args:     map[string]any{},
			expected: Options{},
		},
		{
			name:     "nil args",
			args:     nil,
			expected: Options{},
		},
		{
			name: "wrong types ignored",
			args: map[string]any{
				"filter": "not an object",
				"search": 123,
				"fields": "not an array",
			},
			expected: Options{},
		},
		{
			name: "fields with non-string elements skipped",
			args: map[string]any{
				"fields": []any{"name", 123, "hrid"},
			},
			expected: Options{
				Fields: []string{"name", "hrid"},
			},
		},
		{
			name: "all params together",
			args: map[string]any{
				"filter": map[string]any{"category": "/item_categories/resource"},
				"search": "fiber",
				"fields": []any{"name"},
			},
			expected: Options{
				Filter: map[string]any{"category": "/item_categories/resource"},
				Search: "fiber",
				Fields: []string{"name"},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseOptions(tc.args))
		})
	}
}

func TestHasQuery(t *testing.T) {
	assert.False(t, Options{}.HasQuery())
	assert.True(t, Options{Search: "x"}.HasQuery())
	assert.True(t, Options{Fields: []string{"name"}}.HasQuery())
	assert.True(t, Options{Filter: map[string]any{"a": "b"}}.HasQuery())
}

func TestParseFilters(t *testing.T) {
	filter, err := ParseFilters([]string{"category=/item_categories/resource", "name~=fib", "hrid/=^/items/s"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"category": "/item_categories/resource",
		"name":     map[string]any{"contains": "fib"},
		"hrid":     map[string]any{"regex": "^/items/s"},
	}, filter)

	filter, err = ParseFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, filter)

	for _, bad := range []string{"noequals", "=value", "name/=[unclosed"} {
		_, err := ParseFilters([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestItems_NoOptions(t *testing.T) {
	rows := Items(testItems, Options{})
	assert.Equal(t, []string{"Radiant Fiber", "Silk Fiber", "Cheese Sword"}, names(rows))
}

func TestItems_Filter(t *testing.T) {
	rows := Items(testItems, Options{Filter: map[string]any{"category": "/item_categories/resource"}})
	assert.Equal(t, []string{"Radiant Fiber", "Silk Fiber"}, names(rows))

	rows = Items(testItems, Options{Filter: map[string]any{"level": 90}})
	assert.Equal(t, []string{"Radiant Fiber"}, names(rows))

	rows = Items(testItems, Options{Filter: map[string]any{"name": map[string]any{"contains": "SWORD"}}})
	assert.Equal(t, []string{"Cheese Sword"}, names(rows))

	rows = Items(testItems, Options{Filter: map[string]any{"hrid": map[string]any{"regex": "^/items/s"}}})
	assert.Equal(t, []string{"Silk Fiber"}, names(rows))

	rows = Items(testItems, Options{Filter: map[string]any{"hrid": map[string]any{"regex": "["}}})
	assert.Empty(t, rows)

	rows = Items(testItems, Options{Filter: map[string]any{"name": map[string]any{"unknown": "x"}}})
	assert.Empty(t, rows)

	rows = Items(testItems, Options{Filter: map[string]any{"description": "Smells strong."}})
	assert.Equal(t, []string{"Cheese Sword"}, names(rows))
}

func TestItems_Search(t *testing.T) {
	rows := Items(testItems, Options{Search: "FIBER"})
	assert.Equal(t, []string{"Radiant Fiber", "Silk Fiber"}, names(rows))

	rows = Items(testItems, Options{Search: "smells"})
	assert.Equal(t, []string{"Cheese Sword"}, names(rows))
}

func TestItems_Fields(t *testing.T) {
	rows := Items(testItems, Options{Search: "silk", Fields: []string{"hrid", "missing"}})
	assert.Equal(t, []map[string]any{{"hrid": "/items/silk_fiber"}}, rows)
}

func TestItems_Empty(t *testing.T) {
	assert.Empty(t, Items(nil, Options{Search: "x"}))
}
