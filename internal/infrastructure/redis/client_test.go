package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/internal/config"
)

func TestOptions_Overrides(t *testing.T) {
	opts, err := Options(config.RedisConfig{URL: "redis://:urlpass@cache:6380/1", Password: "secret", DB: 3})
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = Options(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + server.Addr()}, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := server.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + addr}, nil)
	assert.Error(t, err)
}
