package bolt

import (
	"encoding/json"

	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
)

// scan decodes every record of a collection in key order and keeps those
// accepted by keep. Corrupt records are skipped.
func scan[T any](tx *kvstore.Tx, collection string, keep func(*T) bool) ([]T, error) {
	out := []T{}
	err := tx.ForEach(collection, func(_ string, raw []byte) error {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil
		}
		if keep == nil || keep(&item) {
			out = append(out, item)
		}
		return nil
	})
	return out, err
}
