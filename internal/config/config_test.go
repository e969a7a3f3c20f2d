package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/token"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8431", cfg.HTTPAddr)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "plaintext", cfg.PasswordHasher)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Log.RotationTime)
	assert.Equal(t, "secret", cfg.Token.SigningKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("JWT_ISSUER", "accounts")
	t.Setenv("JWT_AUDIENCE", "web")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/accounts")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "postgres://u:p@db:5432/accounts", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "accounts", cfg.Token.Issuer)
	assert.Equal(t, "web", cfg.Token.Audience)
}

func TestLoadMissingSigningKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, token.ErrMissingSigningKey)
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv("CACHE_BACKEND", "none")
	t.Setenv("STORE_BACKEND", "sqlite")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("CACHE_TTL", "ten minutes")

	_, err := Load()
	assert.Error(t, err)
}
