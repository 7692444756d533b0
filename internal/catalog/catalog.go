// Package catalog reads the host application's item catalog: the ordered set of
// (display name, HRID) pairs for every item the game knows about.
// Catalogs are read from snapshots owned by the host and are never written back.
package catalog

import (
	"strconv"
	"strings"
)

// Item is a single catalog entry. Only Name and HRID take part in name
// resolution; the remaining fields feed the dictionary view and listings.
type Item struct {
	Name        string `json:"name" yaml:"name"`
	HRID        string `json:"hrid" yaml:"hrid"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SellPrice   int    `json:"sell_price,omitempty" yaml:"sell_price,omitempty"`
	Level       int    `json:"level,omitempty" yaml:"level,omitempty"`
}

// Fields returns the item as a generic map for query post-processing.
// Keys match the JSON field names.
func (it Item) Fields() map[string]any {
	m := map[string]any{
		"name": it.Name,
		"hrid": it.HRID,
	}
	if it.Category != "" {
		m["category"] = it.Category
	}
	if it.Description != "" {
		m["description"] = it.Description
	}
	if it.SellPrice != 0 {
		m["sell_price"] = strconv.Itoa(it.SellPrice)
	}
	if it.Level != 0 {
		m["level"] = strconv.Itoa(it.Level)
	}
	return m
}

// Catalog is an immutable, ordered snapshot of items.
type Catalog struct {
	items  []Item
	byHRID map[string]int
}

// New builds a catalog from items in the given order. Entries with an empty
// name or HRID are dropped.
func New(items []Item) *Catalog {
	c := &Catalog{
		items:  make([]Item, 0, len(items)),
		byHRID: make(map[string]int, len(items)),
	}
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		it.HRID = strings.TrimSpace(it.HRID)
		if it.Name == "" || it.HRID == "" {
			continue
		}
		if _, dup := c.byHRID[it.HRID]; !dup {
			c.byHRID[it.HRID] = len(c.items)
		}
		c.items = append(c.items, it)
	}
	return c
}

// Len returns the number of items. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of the items in snapshot order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup returns the first item with the given HRID.
func (c *Catalog) Lookup(hrid string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.byHRID[hrid]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}
