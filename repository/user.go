package repository

import (
	"context"

	"github.com/fastygo/ministryflow/domain"
)

// UserRepository enforces email uniqueness on Create and Update.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}
