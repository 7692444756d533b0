package catalog

import (
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// hridPrefix is the host's namespace for item identifiers.
const hridPrefix = "/items/"

// ParseYAML decodes a hand-maintained catalog: a YAML list of items. An entry
// without an hrid gets one derived from its name the way the host names
// items ("Radiant Fiber" -> "/items/radiant_fiber").
func ParseYAML(data []byte) (*Catalog, error) {
	data, err := maybeGunzip(data)
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "decode yaml: %v", err)
	}
	for i := range items {
		if items[i].HRID == "" && items[i].Name != "" {
			items[i].HRID = DeriveHRID(items[i].Name)
		}
	}
	return New(items), nil
}

// DeriveHRID returns the conventional HRID for an item name.
func DeriveHRID(name string) string {
	return hridPrefix + strcase.ToSnake(name)
}
