package kvstore

import (
	"encoding/json"
	"errors"

	bolt "go.etcd.io/bbolt"
)

// ErrStop ends a ForEach scan early without reporting an error.
var ErrStop = errors.New("kvstore: stop iteration")

// Tx is a per-record view of one bolt transaction.
type Tx struct {
	tx *bolt.Tx
}

// Get decodes the record stored under key into v. It reports false when the
// record is missing or corrupt.
func (t *Tx) Get(collection, key string, v any) (bool, error) {
	b := t.tx.Bucket([]byte(collection))
	if b == nil {
		return false, nil
	}
	raw := b.Get([]byte(key))
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, nil
	}
	return true, nil
}

// Put stores v as JSON under key.
func (t *Tx) Put(collection, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return t.PutRaw(collection, key, payload)
}

// PutRaw stores payload under key as-is.
func (t *Tx) PutRaw(collection, key string, payload []byte) error {
	b, err := t.tx.CreateBucketIfNotExists([]byte(collection))
	if err != nil {
		return err
	}
	return b.Put([]byte(key), payload)
}

// Delete removes key. Deleting a missing key is not an error.
func (t *Tx) Delete(collection, key string) error {
	b := t.tx.Bucket([]byte(collection))
	if b == nil {
		return nil
	}
	return b.Delete([]byte(key))
}

// Exists reports whether key is present.
func (t *Tx) Exists(collection, key string) bool {
	b := t.tx.Bucket([]byte(collection))
	return b != nil && b.Get([]byte(key)) != nil
}

// ForEach calls fn for every record in key order. The value slice is only
// valid during the call. Returning ErrStop ends the scan.
func (t *Tx) ForEach(collection string, fn func(key string, value []byte) error) error {
	b := t.tx.Bucket([]byte(collection))
	if b == nil {
		return nil
	}
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if err := fn(string(k), v); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Size returns the number of keys in a collection.
func (t *Tx) Size(collection string) int {
	b := t.tx.Bucket([]byte(collection))
	if b == nil {
		return 0
	}
	var count int
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}
	return count
}
