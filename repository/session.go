package repository

import (
	"context"
	"time"

	"github.com/fastygo/ministryflow/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttlSeconds int) error
}

// SessionSweeper is implemented by stores without native key expiry.
type SessionSweeper interface {
	PurgeExpired(ctx context.Context, reference time.Time) (int, error)
}
