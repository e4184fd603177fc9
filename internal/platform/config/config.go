// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, KV store, security) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/condominio/condoadmin/internal/security"
)

// # Store Drivers

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Shared key-value store for sessions, CSRF tokens and rate limit records.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// Bearer token signing secret and lifetime (seconds)
	TokenSecret string `env:"TOKEN_SECRET,required,notEmpty"`
	TokenTTL    int    `env:"TOKEN_TTL" envDefault:"3600"`

	// Field-level encryption key (64 hex characters)
	EncryptionKey string `env:"ENCRYPTION_KEY,required,notEmpty"`

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	Session      SessionConfig   `envPrefix:"SESSION_"`
	CSRF         CSRFConfig      `envPrefix:"CSRF_"`
	RateLimiting RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// OwnershipStrict rejects requests whose target condominium cannot be resolved.
	OwnershipStrict bool `env:"OWNERSHIP_STRICT" envDefault:"false"`
}

// SessionConfig maps the session.* settings (seconds).
type SessionConfig struct {
	Lifetime           int    `env:"LIFETIME"            envDefault:"7200"`
	RegenerateInterval int    `env:"REGENERATE_INTERVAL" envDefault:"300"`
	CookieName         string `env:"COOKIE_NAME"         envDefault:"condo_session"`
}

// CSRFConfig maps the csrf.* settings.
type CSRFConfig struct {
	Enabled          bool `env:"ENABLED"           envDefault:"true"`
	ExpireTime       int  `env:"EXPIRE_TIME"       envDefault:"3600"`
	RegenerateOnUse  bool `env:"REGENERATE_ON_USE" envDefault:"true"`
	ValidateReferrer bool `env:"VALIDATE_REFERRER" envDefault:"false"`
}

// RateLimitConfig maps the rate_limiting.* settings. Zero values keep the
// built-in bucket defaults.
type RateLimitConfig struct {
	Enabled         bool `env:"ENABLED"          envDefault:"true"`
	LoginRequests   int  `env:"LOGIN_REQUESTS"`
	LoginWindow     int  `env:"LOGIN_WINDOW"`
	APIRequests     int  `env:"API_REQUESTS"`
	APIWindow       int  `env:"API_WINDOW"`
	GeneralRequests int  `env:"GENERAL_REQUESTS"`
	GeneralWindow   int  `env:"GENERAL_WINDOW"`
	LockoutTime     int  `env:"LOCKOUT_TIME"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// Fields tagged required+notEmpty fail when unset or set to "".
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field constraints env tags cannot express.
func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("config: REDIS_URL is required when STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Session.Lifetime <= 0 || c.Session.RegenerateInterval <= 0 {
		return errors.New("config: session lifetime and regenerate interval must be positive")
	}

	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}

	if c.CSRF.ExpireTime <= 0 {
		return errors.New("config: CSRF_EXPIRE_TIME must be positive")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// # Security Projection

// Security layers the environment values over [security.DefaultSettings].
func (c *Config) Security() security.Settings {
	settings := security.DefaultSettings()

	settings.Session.Lifetime = seconds(c.Session.Lifetime)
	settings.Session.RegenerateInterval = seconds(c.Session.RegenerateInterval)
	settings.Session.CookieName = c.Session.CookieName
	settings.Session.CookieSecure = c.IsProduction()

	settings.Token.Secret = c.TokenSecret
	settings.Token.TTL = seconds(c.TokenTTL)

	settings.CSRF.Enabled = c.CSRF.Enabled
	settings.CSRF.ExpireTime = seconds(c.CSRF.ExpireTime)
	settings.CSRF.RegenerateOnUse = c.CSRF.RegenerateOnUse
	settings.CSRF.ValidateReferrer = c.CSRF.ValidateReferrer

	settings.RateLimiting.Enabled = c.RateLimiting.Enabled
	overrideBucket(settings.RateLimiting.Buckets, security.BucketLogin, c.RateLimiting.LoginRequests, c.RateLimiting.LoginWindow, c.RateLimiting.LockoutTime)
	overrideBucket(settings.RateLimiting.Buckets, security.BucketAPI, c.RateLimiting.APIRequests, c.RateLimiting.APIWindow, c.RateLimiting.LockoutTime)
	overrideBucket(settings.RateLimiting.Buckets, security.BucketGeneral, c.RateLimiting.GeneralRequests, c.RateLimiting.GeneralWindow, c.RateLimiting.LockoutTime)

	settings.Ownership.Strict = c.OwnershipStrict

	return settings
}

// overrideBucket replaces the non-zero parts of a bucket configuration.
func overrideBucket(buckets map[string]security.BucketConfig, name string, requests, window, lockout int) {
	bucket := buckets[name]
	if requests > 0 {
		bucket.MaxAttempts = requests
	}
	if window > 0 {
		bucket.Window = seconds(window)
	}
	if lockout > 0 {
		bucket.Lockout = seconds(lockout)
	}
	buckets[name] = bucket
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}
