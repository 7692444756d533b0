package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source supplies catalog snapshots. Implementations only read; the snapshot
// belongs to the host application.
type Source interface {
	// Load reads and decodes the current snapshot. It returns an error
	// wrapping ErrUnavailable when there is nothing to read and ErrMalformed
	// when the snapshot cannot be decoded.
	Load(ctx context.Context) (*Catalog, error)
	String() string
}

// boltPrefix marks a source string that points at a bbolt database.
const boltPrefix = "bolt:"

// ParseSource turns a source string into a Source.
//
//	bolt:/path/to/client.db               bucket "localStorage", key "initClientData"
//	bolt:/path/to/client.db#bucket/key    explicit bucket and key
//	/path/to/items.json[.gz] | items.yaml plain snapshot file
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty catalog source")
	}
	if !strings.HasPrefix(raw, boltPrefix) {
		return &FileSource{Path: raw}, nil
	}

	rest := strings.TrimPrefix(raw, boltPrefix)
	path, loc, hasLoc := strings.Cut(rest, "#")
	if path == "" {
		return nil, errors.Errorf("bolt source %q has no path", raw)
	}
	src := &BoltSource{Path: path}
	if hasLoc {
		bucket, key, ok := strings.Cut(loc, "/")
		if !ok || bucket == "" || key == "" {
			return nil, errors.Errorf("bolt source %q: want #bucket/key", raw)
		}
		src.Bucket = bucket
		src.Key = key
	}
	return src, nil
}

// FileSource reads a snapshot file. The format follows the extension, after
// an optional .gz suffix: .yaml/.yml are YAML, everything else is JSON.
type FileSource struct {
	Path string
}

// Load implements Source.
func (f *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrUnavailable, "%s: %v", f.Path, err)
		}
		return nil, errors.Wrapf(err, "read %s", f.Path)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.Wrapf(ErrUnavailable, "%s is empty", f.Path)
	}

	var c *Catalog
	if isYAML(f.Path) {
		c, err = ParseYAML(data)
	} else {
		c, err = ParseJSON(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", f.Path)
	}
	return c, nil
}

func (f *FileSource) String() string {
	return f.Path
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz")))
	return ext == ".yaml" || ext == ".yml"
}
