package bolt

import (
	"context"
	"time"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
)

type userRepository struct {
	store *kvstore.Store
}

// NewUserRepository returns a bolt-backed user repository. Emails are kept
// unique through the user_emails index bucket, which maps each email to a
// JSON-encoded user id.
func NewUserRepository(store *kvstore.Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	var found bool
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		found, err = tx.Get(kvstore.CollectionUsers, id, &user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	var found bool
	err := r.store.View(func(tx *kvstore.Tx) error {
		var id string
		indexed, err := tx.Get(kvstore.CollectionUserEmails, domain.NormalizeEmail(email), &id)
		if err != nil || !indexed {
			return err
		}
		found, err = tx.Get(kvstore.CollectionUsers, id, &user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = domain.NewID()
	}
	user.Email = domain.NormalizeEmail(user.Email)
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	return r.store.Update(func(tx *kvstore.Tx) error {
		if tx.Exists(kvstore.CollectionUserEmails, user.Email) {
			return domain.ErrDuplicateEmail
		}
		if err := tx.Put(kvstore.CollectionUsers, user.ID, user); err != nil {
			return err
		}
		return tx.Put(kvstore.CollectionUserEmails, user.Email, user.ID)
	})
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	user.Email = domain.NormalizeEmail(user.Email)
	user.UpdatedAt = time.Now().UTC()

	return r.store.Update(func(tx *kvstore.Tx) error {
		var current domain.User
		found, err := tx.Get(kvstore.CollectionUsers, user.ID, &current)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrUserNotFound
		}
		if current.Email != user.Email {
			var owner string
			taken, err := tx.Get(kvstore.CollectionUserEmails, user.Email, &owner)
			if err != nil {
				return err
			}
			if taken && owner != user.ID {
				return domain.ErrDuplicateEmail
			}
			if err := tx.Delete(kvstore.CollectionUserEmails, current.Email); err != nil {
				return err
			}
			if err := tx.Put(kvstore.CollectionUserEmails, user.Email, user.ID); err != nil {
				return err
			}
		}
		user.CreatedAt = current.CreatedAt
		return tx.Put(kvstore.CollectionUsers, user.ID, user)
	})
}
