package source

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// BoltSource stores records in a bbolt file. Records live in the namespace
// bucket keyed by a big-endian sequence number, so a cursor walks them in
// insertion order; a second bucket maps ids to sequence keys.
type BoltSource struct {
	db      *bolt.DB
	records []byte
	ids     []byte
}

// NewBoltSource opens (or creates) the database file at path.
func NewBoltSource(path, namespace string) (*BoltSource, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "open %s", path)
	}
	s := &BoltSource{
		db:      db,
		records: []byte(namespace),
		ids:     []byte(namespace + ".ids"),
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(s.records); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(s.ids)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.ErrCodeSource, err, "create buckets")
	}
	return s, nil
}

// Load returns every record in insertion order.
func (s *BoltSource) Load(_ context.Context) ([]*hierarchy.Record, error) {
	var out []*hierarchy.Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.records).ForEach(func(k, v []byte) error {
			var w row
			if err := json.Unmarshal(v, &w); err != nil {
				return errs.Wrap(errs.ErrCodeCorruption, err, "record at seq %d", binary.BigEndian.Uint64(k))
			}
			r, err := w.record()
			if err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts records in one transaction.
func (s *BoltSource) Save(_ context.Context, recs ...*hierarchy.Record) error {
	if err := checkSave(recs); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, ids := tx.Bucket(s.records), tx.Bucket(s.ids)
		for _, r := range recs {
			v, err := json.Marshal(toRow(r))
			if err != nil {
				return fmt.Errorf("encode %s: %w", r.ID(), err)
			}
			// Values from Get are only valid inside the transaction.
			key := slices.Clone(ids.Get([]byte(r.ID())))
			if key == nil {
				seq, err := data.NextSequence()
				if err != nil {
					return err
				}
				key = seqKey(seq)
				if err := ids.Put([]byte(r.ID()), key); err != nil {
					return err
				}
			}
			if err := data.Put(key, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "save")
	}
	return nil
}

// Close closes the database file.
func (s *BoltSource) Close() error {
	return s.db.Close()
}

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

var _ Source = (*BoltSource)(nil)
