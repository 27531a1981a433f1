package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config is read from the environment by LoadConfig.
type Config struct {
	Issuer string `env:"AUTH_ISSUER" envDefault:"tenantry-auth"`

	// HS256 secrets, at least 32 bytes each. Both unset outside prod means
	// ephemeral secrets generated at startup.
	AccessSecret  string `env:"AUTH_ACCESS_SECRET"`
	RefreshSecret string `env:"AUTH_REFRESH_SECRET"`

	AccessTokenTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"720h"`

	PasswordCost        int   `env:"AUTH_PASSWORD_COST" envDefault:"12"`
	MaxConcurrentHashes int64 `env:"AUTH_MAX_CONCURRENT_HASHES"` // 0 means GOMAXPROCS

	CORSAllowedOrigins []string `env:"AUTH_CORS_ALLOWED_ORIGINS" envSeparator:","`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`

	Env       string `env:"ENV" envDefault:"dev"` // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. Secret checks happen in LoadSecrets.
func (c Config) Validate() error {
	var errs []error

	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_ACCESS_TOKEN_TTL must be positive, got %s", c.AccessTokenTTL))
	}
	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		errs = append(errs, fmt.Errorf("AUTH_REFRESH_TOKEN_TTL (%s) must exceed AUTH_ACCESS_TOKEN_TTL (%s)",
			c.RefreshTokenTTL, c.AccessTokenTTL))
	}
	if c.PasswordCost < bcrypt.MinCost || c.PasswordCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_PASSWORD_COST must be in [%d, %d], got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.PasswordCost))
	}
	if c.MaxConcurrentHashes < 0 {
		errs = append(errs, errors.New("AUTH_MAX_CONCURRENT_HASHES must not be negative"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("AUTH_DATABASE_FILE must not be empty"))
	}

	return errors.Join(errs...)
}

// IsProd reports whether the service runs in production.
func (c Config) IsProd() bool { return c.Env == "prod" || c.Env == "production" }
