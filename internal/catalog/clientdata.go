package catalog

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"

	goccy "github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// itemDetailMapKey is the client-data field holding per-item details keyed by HRID.
const itemDetailMapKey = "itemDetailMap"

var (
	// ErrUnavailable means the snapshot does not exist (yet).
	ErrUnavailable = errors.New("catalog snapshot unavailable")
	// ErrMalformed means the snapshot exists but could not be decoded.
	ErrMalformed = errors.New("catalog snapshot malformed")
)

// clientItem mirrors one entry of the host's itemDetailMap.
type clientItem struct {
	HRID         string `json:"hrid"`
	Name         string `json:"name"`
	CategoryHRID string `json:"categoryHrid"`
	Description  string `json:"description"`
	SellPrice    int    `json:"sellPrice"`
	ItemLevel    int    `json:"itemLevel"`
}

type clientData struct {
	ItemDetailMap map[string]clientItem `json:"itemDetailMap"`
}

// ParseJSON decodes a JSON snapshot. Two shapes are accepted: the host's
// client data (an object with an itemDetailMap keyed by HRID) and a flat
// object mapping item name to HRID. Object key order is kept, so the
// catalog lists items in the order the snapshot does. Gzip-compressed input
// is detected and inflated.
func ParseJSON(data []byte) (*Catalog, error) {
	data, err := maybeGunzip(data)
	if err != nil {
		return nil, err
	}

	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "decode json object: %v", err)
	}

	if raw, ok := om.Get(itemDetailMapKey); ok {
		return parseClientData(data, raw)
	}
	return parseFlat(om)
}

func parseClientData(data []byte, raw any) (*Catalog, error) {
	var order []string
	switch details := raw.(type) {
	case orderedmap.OrderedMap:
		order = details.Keys()
	case *orderedmap.OrderedMap:
		if details != nil {
			order = details.Keys()
		}
	default:
		return nil, errors.Wrapf(ErrMalformed, "%s is %T, want object", itemDetailMapKey, raw)
	}

	var cd clientData
	if err := goccy.Unmarshal(data, &cd); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "decode %s: %v", itemDetailMapKey, err)
	}

	items := make([]Item, 0, len(order))
	for _, key := range order {
		ci, ok := cd.ItemDetailMap[key]
		if !ok {
			continue
		}
		hrid := ci.HRID
		if hrid == "" {
			hrid = key
		}
		items = append(items, Item{
			Name:        ci.Name,
			HRID:        hrid,
			Category:    ci.CategoryHRID,
			Description: ci.Description,
			SellPrice:   ci.SellPrice,
			Level:       ci.ItemLevel,
		})
	}
	return New(items), nil
}

func parseFlat(om *orderedmap.OrderedMap) (*Catalog, error) {
	keys := om.Keys()
	items := make([]Item, 0, len(keys))
	for _, name := range keys {
		value, _ := om.Get(name)
		hrid, ok := value.(string)
		if !ok {
			return nil, errors.Wrapf(ErrMalformed, "value for %q is %T, want string", name, value)
		}
		items = append(items, Item{Name: name, HRID: hrid})
	}
	return New(items), nil
}

// maybeGunzip inflates data when it carries the gzip magic header.
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "gzip header: %v", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "gzip body: %v", err)
	}
	return out, nil
}
