package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, DriverBolt, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.UsesBolt())
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("SESSION_SWEEP_INTERVAL", "30s")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.UsesBolt())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Session.SweepInterval)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Contains(t, cfg.Database.URL, "@db:5432/")
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "bolt")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}
