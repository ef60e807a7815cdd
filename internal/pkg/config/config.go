// Package config loads process configuration from the environment. A .env
// file in the working directory, when present, is read first; variables
// already set in the environment win over it.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	// AllowDefaultSecret lets the service sign with the built-in development
	// secret when JWT_SECRET is unset. Set to false in production.
	AllowDefaultSecret bool `env:"JWT_ALLOW_DEFAULT_SECRET, default=true"`
	BcryptCost         int  `env:"BCRYPT_COST,              default=10"`
	// HashWorkers bounds concurrent bcrypt calls; 0 means one per CPU.
	HashWorkers int `env:"HASH_WORKERS,             default=0"`
	// LoginRateLimit is the number of login attempts allowed per client IP
	// per minute; 0 disables the limiter.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT,         default=10"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=kgl_groceries"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig describes the manager account created at startup when no
// account with that username or email exists yet.
type SeedConfig struct {
	ManagerUsername string `env:"SEED_MANAGER_USERNAME"`
	ManagerEmail    string `env:"SEED_MANAGER_EMAIL"`
	ManagerPassword string `env:"SEED_MANAGER_PASSWORD"`
}

// Enabled reports whether a bootstrap manager is configured.
func (s SeedConfig) Enabled() bool {
	return s.ManagerUsername != "" && s.ManagerEmail != "" && s.ManagerPassword != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return nil, fmt.Errorf("config: BCRYPT_COST must be between 4 and 31, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.JWTSecret == "" && !cfg.Auth.AllowDefaultSecret {
		return nil, errors.New("config: JWT_SECRET is required when JWT_ALLOW_DEFAULT_SECRET=false")
	}
	return &cfg, nil
}
