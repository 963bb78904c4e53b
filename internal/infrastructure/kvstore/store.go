package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Collection names. Each one is a bolt bucket keyed by record id.
const (
	CollectionUsers      = "users"
	CollectionUserEmails = "user_emails"
	CollectionTeams      = "teams"
	CollectionBoards     = "boards"
	CollectionTasks      = "tasks"
	CollectionSessions   = "sessions"
)

// Collections lists every bucket the application uses.
var Collections = []string{
	CollectionUsers,
	CollectionUserEmails,
	CollectionTeams,
	CollectionBoards,
	CollectionTasks,
	CollectionSessions,
}

// Record is a stored value together with its key.
type Record struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Store wraps BoltDB and exposes whole-collection and per-record access.
type Store struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures the buckets exist.
func Open(path string, collections ...string) (*Store, error) {
	if len(collections) == 0 {
		collections = Collections
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Get returns the whole collection in key order. A missing collection is
// empty and values that are not valid JSON are skipped.
func (s *Store) Get(collection string) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	records := []Record{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if !json.Valid(v) {
				return nil
			}
			records = append(records, Record{
				Key:   string(k),
				Value: append(json.RawMessage(nil), v...),
			})
			return nil
		})
	})
	return records, err
}

// Put replaces the whole collection with records.
func (s *Store) Put(collection string, records []Record) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(collection)) != nil {
			if err := tx.DeleteBucket([]byte(collection)); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket([]byte(collection))
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.Key == "" {
				return fmt.Errorf("collection %s: record without key", collection)
			}
			if err := b.Put([]byte(rec.Key), rec.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// Update runs fn in a read-write transaction. Returning an error rolls back.
func (s *Store) Update(fn func(tx *Tx) error) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// Size returns the number of records in a collection.
func (s *Store) Size(collection string) (int, error) {
	var count int
	err := s.View(func(tx *Tx) error {
		count = tx.Size(collection)
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for monitoring endpoints.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}
