package catalog

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Default location of the client data blob inside a bolt snapshot, named
// after the browser storage the host keeps it in.
const (
	DefaultBoltBucket = "localStorage"
	DefaultBoltKey    = "initClientData"
)

// BoltSource reads client data JSON from a bbolt database opened read-only.
type BoltSource struct {
	Path   string
	Bucket string // defaults to DefaultBoltBucket
	Key    string // defaults to DefaultBoltKey
}

func (b *BoltSource) bucket() []byte {
	if b.Bucket == "" {
		return []byte(DefaultBoltBucket)
	}
	return []byte(b.Bucket)
}

func (b *BoltSource) key() []byte {
	if b.Key == "" {
		return []byte(DefaultBoltKey)
	}
	return []byte(b.Key)
}

// Load implements Source.
func (b *BoltSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// bolt.Open in read-only mode fails on a missing file, but report that
	// the same way FileSource does.
	if _, err := os.Stat(b.Path); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrUnavailable, "%s: %v", b.Path, err)
	}

	db, err := bolt.Open(b.Path, 0400, &bolt.Options{ReadOnly: true, Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt open %s", b.Path)
	}
	defer db.Close()

	var data []byte
	err = db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket())
		if bk == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := bk.Get(b.key()); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt read %s", b.Path)
	}
	if len(data) == 0 {
		return nil, errors.Wrapf(ErrUnavailable, "%s has no %s/%s", b.Path, b.bucket(), b.key())
	}

	c, err := ParseJSON(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", b)
	}
	return c, nil
}

func (b *BoltSource) String() string {
	return boltPrefix + b.Path + "#" + string(b.bucket()) + "/" + string(b.key())
}
