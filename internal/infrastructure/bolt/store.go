package bolt

import (
	"os"
	"path/filepath"
	"time"

	bboltlib "go.etcd.io/bbolt"
)

// Store wraps a bbolt database holding one bucket per collection. Unlike the
// snapshot-file backend, records are keyed individually so a mutation touches
// a single entry instead of rewriting the whole collection.
type Store struct {
	db *bboltlib.DB
}

// Open initializes the database file and ensures the named buckets exist.
func Open(path string, buckets ...string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bboltlib.Open(path, 0o600, &bboltlib.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bboltlib.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Update runs fn in a read-write transaction.
func (s *Store) Update(fn func(tx *bboltlib.Tx) error) error {
	if s == nil || s.db == nil {
		return bboltlib.ErrDatabaseNotOpen
	}
	return s.db.Update(fn)
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *bboltlib.Tx) error) error {
	if s == nil || s.db == nil {
		return bboltlib.ErrDatabaseNotOpen
	}
	return s.db.View(fn)
}

// Ping verifies the database is open and readable.
func (s *Store) Ping() error {
	return s.View(func(tx *bboltlib.Tx) error { return nil })
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
