package kvstore

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_GetEmptyCollection(t *testing.T) {
	store := openTestStore(t)

	records, err := store.Get(CollectionTasks)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = store.Get("unknown")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_PutReplacesCollection(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put(CollectionBoards, []Record{
		{Key: "b", Value: json.RawMessage(`{"id":"b"}`)},
		{Key: "a", Value: json.RawMessage(`{"id":"a"}`)},
	}))

	records, err := store.Get(CollectionBoards)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Key)
	assert.Equal(t, "b", records[1].Key)

	require.NoError(t, store.Put(CollectionBoards, []Record{
		{Key: "c", Value: json.RawMessage(`{"id":"c"}`)},
	}))

	records, err = store.Get(CollectionBoards)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c", records[0].Key)
	assert.JSONEq(t, `{"id":"c"}`, string(records[0].Value))
}

func TestStore_PutRejectsMissingKey(t *testing.T) {
	store := openTestStore(t)

	err := store.Put(CollectionTeams, []Record{{Value: json.RawMessage(`{}`)}})
	assert.Error(t, err)
}

func TestStore_CorruptRecordsAreSkipped(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Update(func(tx *Tx) error {
		if err := tx.PutRaw(CollectionTasks, "1", []byte(`{"id":"1"}`)); err != nil {
			return err
		}
		return tx.PutRaw(CollectionTasks, "2", []byte(`{not json`))
	}))

	records, err := store.Get(CollectionTasks)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].Key)

	err = store.View(func(tx *Tx) error {
		var v map[string]any
		found, err := tx.Get(CollectionTasks, "2", &v)
		assert.False(t, found)
		return err
	})
	require.NoError(t, err)
}

func TestTx_ForEachStopsEarly(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Update(func(tx *Tx) error {
		for _, key := range []string{"a", "b", "c"} {
			if err := tx.Put(CollectionTeams, key, map[string]string{"id": key}); err != nil {
				return err
			}
		}
		return nil
	}))

	var seen []string
	err := store.View(func(tx *Tx) error {
		return tx.ForEach(CollectionTeams, func(key string, _ []byte) error {
			seen = append(seen, key)
			if key == "b" {
				return ErrStop
			}
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)

	size, err := store.Size(CollectionTeams)
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(func(tx *Tx) error {
		if err := tx.Put(CollectionUsers, "u1", map[string]string{"id": "u1"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	size, err := store.Size(CollectionUsers)
	require.NoError(t, err)
	assert.Zero(t, size)
}
