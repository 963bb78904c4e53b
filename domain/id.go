package domain

import "github.com/google/uuid"

// NewID returns a UUIDv7 string. Ids sort lexically in creation order, which
// is what keeps every list in insertion order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
