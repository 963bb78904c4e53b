package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/internal/testutil"
)

func setupAuth(t *testing.T) (*UseCase, testutil.Repos) {
	t.Helper()
	repos := testutil.NewRepos(t)
	uc := New(repos.Users, repos.Sessions, Config{SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost}, nil)
	return uc, repos
}

func register(t *testing.T, uc *UseCase, email string) (*domain.User, *domain.Session) {
	t.Helper()
	user, session, err := uc.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "s3cret",
		FirstName: "Ana",
		LastName:  "Lee",
	})
	require.NoError(t, err)
	return user, session
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	uc, repos := setupAuth(t)

	user, session := register(t, uc, "ana@example.com")

	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	stored, err := repos.Users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, repos := setupAuth(t)
	ctx := context.Background()

	register(t, uc, "ana@example.com")
	_, _, err := uc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "other"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	records, err := repos.Store.Get(kvstore.CollectionUsers)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRegister_RequiresEmailAndPassword(t *testing.T) {
	uc, _ := setupAuth(t)

	_, _, err := uc.Register(context.Background(), RegisterInput{Email: "  ", Password: "x"})

	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestLogin(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()
	registered, _ := register(t, uc, "ana@example.com")

	user, session, err := uc.Login(ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, user.ID, session.UserID)

	_, _, err = uc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout_OnlyEndsSession(t *testing.T) {
	uc, repos := setupAuth(t)
	ctx := context.Background()
	user, session := register(t, uc, "ana@example.com")

	require.NoError(t, uc.Logout(ctx, session))

	_, err := uc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = repos.Users.GetByID(ctx, user.ID)
	assert.NoError(t, err)
}

func TestGetSession_ExpiredIsDeleted(t *testing.T) {
	uc, repos := setupAuth(t)
	ctx := context.Background()
	user, _ := register(t, uc, "ana@example.com")

	past := time.Now().UTC().Add(-2 * time.Hour)
	expired := &domain.Session{ID: "expired", UserID: user.ID, CreatedAt: past, ExpiresAt: past.Add(time.Hour)}
	require.NoError(t, repos.Sessions.Save(ctx, expired))

	_, err := uc.GetSession(ctx, "expired")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = repos.Sessions.Get(ctx, "expired")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRefreshSession(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()
	_, session := register(t, uc, "ana@example.com")

	refreshed, err := uc.RefreshSession(ctx, session.ID, 48*time.Hour)

	require.NoError(t, err)
	assert.True(t, refreshed.ExpiresAt.After(session.ExpiresAt))
}
