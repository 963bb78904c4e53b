package bolt

import (
	"context"
	"time"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
)

type sessionRepository struct {
	store *kvstore.Store
	ttl   time.Duration
}

// SessionStore is a bolt session repository that also supports sweeping.
type SessionStore interface {
	repository.SessionRepository
	repository.SessionSweeper
}

// NewSessionRepository creates a bolt-backed session repository. Expired
// sessions stay on disk until PurgeExpired runs.
func NewSessionRepository(store *kvstore.Store, ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionRepository{store: store, ttl: ttl}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	var found bool
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		found, err = tx.Get(kvstore.CollectionSessions, id, &session)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}
	return r.store.Update(func(tx *kvstore.Tx) error {
		return tx.Put(kvstore.CollectionSessions, session.ID, session)
	})
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(tx *kvstore.Tx) error {
		return tx.Delete(kvstore.CollectionSessions, id)
	})
}

func (r *sessionRepository) Extend(ctx context.Context, id string, ttlSeconds int) error {
	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = r.ttl
	}
	return r.store.Update(func(tx *kvstore.Tx) error {
		var session domain.Session
		found, err := tx.Get(kvstore.CollectionSessions, id, &session)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrSessionNotFound
		}
		session.ExtendFrom(time.Now(), duration)
		return tx.Put(kvstore.CollectionSessions, id, &session)
	})
}

func (r *sessionRepository) PurgeExpired(ctx context.Context, reference time.Time) (int, error) {
	var purged int
	err := r.store.Update(func(tx *kvstore.Tx) error {
		expired, err := scan(tx, kvstore.CollectionSessions, func(s *domain.Session) bool {
			return s.IsExpired(reference)
		})
		if err != nil {
			return err
		}
		for _, s := range expired {
			if err := tx.Delete(kvstore.CollectionSessions, s.ID); err != nil {
				return err
			}
		}
		purged = len(expired)
		return nil
	})
	return purged, err
}
