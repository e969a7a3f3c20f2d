package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/token"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/utilities"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

var ErrInvalid = errors.New("invalid configuration")

// Redis holds the connection settings used when CACHE_BACKEND=redis.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

// Config is the whole process configuration, read from the environment.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"        envDefault:"0.0.0.0:8431"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	StoreBackend    string        `env:"STORE_BACKEND"    envDefault:"postgres"`
	CacheBackend    string        `env:"CACHE_BACKEND"    envDefault:"memory"`
	CacheTTL        time.Duration `env:"CACHE_TTL"        envDefault:"10m"`
	PasswordHasher  string        `env:"PASSWORD_HASHER"  envDefault:"plaintext"`
	BcryptCost      int           `env:"BCRYPT_COST"`

	Redis    Redis
	Log      utilities.Config
	Database database.Config
	Token    token.Config
}

// Load parses the environment and validates the result. A missing JWT_KEY
// is reported as token.ErrMissingSigningKey.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return err
	}
	switch c.StoreBackend {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("%w: STORE_BACKEND %q", ErrInvalid, c.StoreBackend)
	}
	switch c.CacheBackend {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("%w: CACHE_BACKEND %q", ErrInvalid, c.CacheBackend)
	}
	if c.CacheTTL <= 0 && c.CacheBackend != CacheNone {
		return fmt.Errorf("%w: CACHE_TTL must be positive", ErrInvalid)
	}
	return nil
}
