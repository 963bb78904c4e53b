package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
	appLogger "github.com/fastygo/ministryflow/pkg/logger"
	"github.com/fastygo/ministryflow/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile merges the update into the acting user's record.
func (uc *UseCase) UpdateProfile(ctx context.Context, session *domain.Session, update domain.ProfileUpdate) (*domain.User, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if update.Email != nil && strings.TrimSpace(*update.Email) == "" {
		return nil, domain.Invalid("email is required")
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	update.Apply(user)

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("profile updated", zap.String("user_id", user.ID))
	return user.Public(), nil
}
