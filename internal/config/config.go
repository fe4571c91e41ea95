// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SCANLY_DB_PATH" envDefault:"./data/scanly.db"`
	SessionSecret string `env:"SCANLY_SESSION_SECRET,required"`
	ServerHost    string `env:"SCANLY_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SCANLY_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SCANLY_ENV" envDefault:"development"`
	LogLevel      string `env:"SCANLY_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"SCANLY_UPLOADS_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"SCANLY_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// Draft cache configuration
	RedisURL    string        `env:"SCANLY_REDIS_URL"`                        // Optional Redis URL for distributed draft storage
	CachePrefix string        `env:"SCANLY_CACHE_PREFIX" envDefault:"scanly:"` // Redis key prefix
	DraftTTL    time.Duration `env:"SCANLY_DRAFT_TTL" envDefault:"720h"`      // How long unsynced drafts survive

	// Sync engine tuning
	LocalDebounce  time.Duration `env:"SCANLY_LOCAL_DEBOUNCE" envDefault:"200ms"`
	RemoteDebounce time.Duration `env:"SCANLY_REMOTE_DEBOUNCE" envDefault:"300ms"`
	SyncMaxWait    time.Duration `env:"SCANLY_SYNC_MAX_WAIT" envDefault:"5s"`

	// Stripe Connect configuration
	StripeSecretKey string `env:"SCANLY_STRIPE_SECRET_KEY"`
	StripeBaseURL   string `env:"SCANLY_STRIPE_BASE_URL" envDefault:"https://api.stripe.com"`

	// Public booking endpoint rate limit, requests per second per IP.
	BookingRateLimit float64 `env:"SCANLY_BOOKING_RATE_LIMIT" envDefault:"2"`
	BookingRateBurst int     `env:"SCANLY_BOOKING_RATE_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis draft storage is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// StripeEnabled returns true if Stripe Connect is configured.
func (c Config) StripeEnabled() bool {
	return c.StripeSecretKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SCANLY_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate one with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SCANLY_SESSION_SECRET is a known default value and must not be used; " +
				"generate one with: openssl rand -base64 32")
		}
	}

	if !strings.HasPrefix(cfg.StripeBaseURL, "http") {
		return nil, fmt.Errorf("SCANLY_STRIPE_BASE_URL must be an http(s) URL, got %q", cfg.StripeBaseURL)
	}

	return cfg, nil
}
