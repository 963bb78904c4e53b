package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/ministryflow/domain"
	appLogger "github.com/fastygo/ministryflow/pkg/logger"
	"github.com/fastygo/ministryflow/repository"
)

// Config controls session lifetime and password hashing cost.
type Config struct {
	SessionTTL time.Duration
	BcryptCost int
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates an account and signs it in.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.Session, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, nil, domain.Invalid("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrCodeInvalid, "unusable password", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("user registered", zap.String("user_id", user.ID))

	session, err := uc.CreateSession(ctx, user.ID, uc.cfg.SessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user.Public(), session, nil
}

// Login checks credentials and opens a new session.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Debug("password mismatch", zap.String("user_id", user.ID))
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := uc.CreateSession(ctx, user.ID, uc.cfg.SessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user.Public(), session, nil
}

// Logout ends the given session only.
func (uc *UseCase) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	return uc.sessions.Delete(ctx, session.ID)
}

func (uc *UseCase) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = uc.cfg.SessionTTL
	}

	session := domain.NewSession(uuid.NewString(), userID, time.Now(), ttl)

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = uc.cfg.SessionTTL
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExtendFrom(time.Now(), ttl)
	return session, nil
}
