package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := PoolConfig(config.DatabaseConfig{
		URL:             "postgres://app:secret@db:5433/ministryflow?sslmode=disable",
		MaxOpenConns:    8,
		MaxIdleConns:    20,
		MaxConnLifetime: time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), cfg.ConnConfig.Port)
	assert.Equal(t, "ministryflow", cfg.ConnConfig.Database)
	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Equal(t, int32(8), cfg.MinConns)
	assert.Equal(t, time.Minute, cfg.MaxConnLifetime)
}

func TestPoolConfig_BadURL(t *testing.T) {
	_, err := PoolConfig(config.DatabaseConfig{URL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestMigrationSource(t *testing.T) {
	assert.Equal(t, "file://assets/migrations", migrationSource("assets/migrations"))
}
