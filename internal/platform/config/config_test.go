package config_test

import (
	"testing"

	"contesthub/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("refuses to start without a signing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("refuses a hash cost below the floor", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("HASH_COST", "4")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HASH_COST")
	})

	t.Run("loads with defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.APIPort)
		assert.Equal(t, []byte("secret"), cfg.JWTSecret)
		assert.False(t, cfg.IsProduction())
		assert.False(t, cfg.DenylistEnabled())
		assert.Contains(t, cfg.DBConnStr, "dbname=contesthub_db")
	})

	t.Run("redis address enables the deny-list", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.True(t, cfg.DenylistEnabled())
	})
}
