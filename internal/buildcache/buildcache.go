// Package buildcache memoizes the preprocessor's grid-sweep step, the
// slowest part of a build, across runs over an unchanged source. It is a
// development convenience only: it never runs on the query path and its
// contents are never shipped as part of an artifact (grounded on
// geostore.go's NewGeoStore/bucket pattern, the teacher's own bbolt use).
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const bucketGrids = "grids"

// Cache wraps a bbolt database keyed by a source-content hash plus build
// parameters, so re-running the preprocessor over the same GeoJSON with the
// same epsilon skips the grid sweep entirely.
type Cache struct {
	db *bolt.DB
}

// Open creates or opens the memoization database at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open build cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketGrids))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init build cache buckets: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives a cache key from the corpus source bytes and the
// simplification epsilon applied to it; any change to either invalidates
// the entry.
func Key(sourceBytes []byte, epsilon float64) string {
	h := sha256.New()
	h.Write(sourceBytes)
	fmt.Fprintf(h, "|eps=%v", epsilon)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the memoized encoded lookup grid for key, if present.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketGrids))
		if v := b.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

// Put stores the encoded lookup grid for key.
func (c *Cache) Put(key string, grid []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketGrids))
		return b.Put([]byte(key), grid)
	})
}
