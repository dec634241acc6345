// Package savedb persists the saved meal list in a bbolt file so saved meals
// survive restarts.
package savedb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/five82/whattocook/internal/meals"
)

const (
	bucketSaved = "saved"
	bucketOrder = "saved_order"
)

// initDB holds the bucket setup run on every Open.
var initDB = map[string]func(*bolt.Tx) error{
	"initialize saved meal table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSaved))
		return err
	},
	"initialize saved order table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketOrder))
		return err
	},
}

// DB is a bbolt-backed meals.SavedStore. Meals are stored as JSON keyed by
// id; a second bucket keeps the save order.
type DB struct {
	db *bolt.DB
}

var _ meals.SavedStore = (*DB)(nil)

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open saved db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Load returns every saved meal in the order it was saved.
func (d *DB) Load() ([]meals.Meal, error) {
	var out []meals.Meal
	err := d.db.View(func(tx *bolt.Tx) error {
		saved := tx.Bucket([]byte(bucketSaved))
		return tx.Bucket([]byte(bucketOrder)).ForEach(func(_, id []byte) error {
			raw := saved.Get(id)
			if raw == nil {
				return nil
			}
			var m meals.Meal
			if err := json.Unmarshal(raw, &m); err != nil {
				return fmt.Errorf("decode saved meal %s: %w", id, err)
			}
			out = append(out, m)
			return nil
		})
	})
	return out, err
}

// Put stores m, keeping its original position when it is already saved.
func (d *DB) Put(m meals.Meal) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode saved meal: %w", err)
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		saved := tx.Bucket([]byte(bucketSaved))
		if saved.Get([]byte(m.ID)) == nil {
			order := tx.Bucket([]byte(bucketOrder))
			seq, err := order.NextSequence()
			if err != nil {
				return err
			}
			if err := order.Put(seqKey(seq), []byte(m.ID)); err != nil {
				return err
			}
		}
		return saved.Put([]byte(m.ID), raw)
	})
}

// Delete removes the meal with id. Deleting an unknown id is not an error.
func (d *DB) Delete(id string) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketSaved)).Delete([]byte(id)); err != nil {
			return err
		}
		c := tx.Bucket([]byte(bucketOrder)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == id {
				return c.Delete()
			}
		}
		return nil
	})
}

// Close releases the database file.
func (d *DB) Close() error {
	return d.db.Close()
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
