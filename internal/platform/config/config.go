// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (DB, Redis, Mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/al3eon/api-yamdb/pkg/query"
)

// # Mail Backends

const (
	// MailBackendLog writes outgoing mail to the structured log (development).
	MailBackendLog = "log"

	// MailBackendSMTP delivers outgoing mail through an SMTP relay.
	MailBackendSMTP = "smtp"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yamdb API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Key-Value store (Redis), used for signup attempt counters
	RedisURL string `env:"REDIS_URL,required"`

	// SecretKey is the root secret. Token-signing and confirmation-code keys
	// are derived from it and never share material.
	SecretKey string `env:"SECRET_KEY,required"`

	// Token lifetimes
	AccessTokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL"      envDefault:"24h"`
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" envDefault:"72h"`

	// SignupAttemptsPerHour bounds confirmation-code issues per username.
	SignupAttemptsPerHour int `env:"SIGNUP_ATTEMPTS_PER_HOUR" envDefault:"5"`

	// Outgoing mail
	MailBackend  string `env:"MAIL_BACKEND"  envDefault:"log"`
	MailFrom     string `env:"MAIL_FROM"     envDefault:"noreply@yamdb.local"`
	SMTPAddr     string `env:"SMTP_ADDR"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field rules that struct tags cannot express.
func (c *Config) validate() error {
	switch c.MailBackend {
	case MailBackendLog:
	case MailBackendSMTP:
		if c.SMTPAddr == "" {
			return fmt.Errorf("config: SMTP_ADDR is required when MAIL_BACKEND=smtp")
		}
	default:
		return fmt.Errorf("config: unknown MAIL_BACKEND %q", c.MailBackend)
	}

	if len(c.SecretKey) < 32 {
		return fmt.Errorf("config: SECRET_KEY must be at least 32 bytes")
	}

	if c.SignupAttemptsPerHour < 1 {
		return fmt.Errorf("config: SIGNUP_ATTEMPTS_PER_HOUR must be positive")
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

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a slice.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}
