package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/domain"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *sessionRepository) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return server, NewSessionRepository(client, time.Hour).(*sessionRepository)
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	server, repo := setupRedis(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	assert.True(t, server.Exists("ministryflow:session:s1"))
	assert.InDelta(t, time.Minute.Seconds(), server.TTL("ministryflow:session:s1").Seconds(), 2)

	session, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_KeyExpires(t *testing.T) {
	server, repo := setupRedis(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	server.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Extend(t *testing.T) {
	server, repo := setupRedis(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Extend(ctx, "s1", 3600))

	session, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, session.ExpiresAt.After(now.Add(50*time.Minute)))
	assert.Greater(t, server.TTL("ministryflow:session:s1"), 50*time.Minute)

	assert.ErrorIs(t, repo.Extend(ctx, "missing", 60), domain.ErrSessionNotFound)
}
