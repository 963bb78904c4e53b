package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
)

// Version of the snapshot document layout.
const Version = 1

// Document is a full copy of the store.
type Document struct {
	Version     int                         `json:"version"`
	ExportedAt  time.Time                   `json:"exported_at"`
	Collections map[string][]kvstore.Record `json:"collections"`
}

// Export writes every collection of store to w as JSON.
func Export(store *kvstore.Store, w io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	doc := Document{
		Version:     Version,
		ExportedAt:  time.Now().UTC(),
		Collections: make(map[string][]kvstore.Record, len(kvstore.Collections)),
	}
	for _, name := range kvstore.Collections {
		records, err := store.Get(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		doc.Collections[name] = records
		logger.Info("collection exported", zap.String("collection", name), zap.Int("records", len(records)))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Import replaces the store's collections with those found in r.
// Collections missing from the document are left untouched. The email index
// is always rebuilt from the imported users.
func Import(store *kvstore.Store, r io.Reader, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version != Version {
		return fmt.Errorf("unsupported snapshot version %d", doc.Version)
	}

	for _, name := range kvstore.Collections {
		records, ok := doc.Collections[name]
		if !ok {
			continue
		}
		if err := store.Put(name, records); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		logger.Info("collection imported", zap.String("collection", name), zap.Int("records", len(records)))
	}

	indexed, err := rebuildEmailIndex(store)
	if err != nil {
		return fmt.Errorf("rebuild email index: %w", err)
	}
	logger.Info("email index rebuilt", zap.Int("records", indexed))
	return nil
}

func rebuildEmailIndex(store *kvstore.Store) (int, error) {
	owners := make(map[string]string)
	index := []kvstore.Record{}
	err := store.View(func(tx *kvstore.Tx) error {
		return tx.ForEach(kvstore.CollectionUsers, func(_ string, raw []byte) error {
			var user domain.User
			if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
				return nil
			}
			email := domain.NormalizeEmail(user.Email)
			if email == "" {
				return nil
			}
			if owner, ok := owners[email]; ok && owner != user.ID {
				return fmt.Errorf("users %s and %s share %s: %w", owner, user.ID, email, domain.ErrDuplicateEmail)
			}
			owners[email] = user.ID
			id, err := json.Marshal(user.ID)
			if err != nil {
				return err
			}
			index = append(index, kvstore.Record{Key: email, Value: id})
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	if err := store.Put(kvstore.CollectionUserEmails, index); err != nil {
		return 0, err
	}
	return len(index), nil
}
