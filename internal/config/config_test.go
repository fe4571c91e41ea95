// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package config

import (
	"strings"
	"testing"
	"time"
)

const validSecret = "kX9mP2vQ8nR4tY7wZ1aB5cD6eF3gH0jL"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCANLY_SESSION_SECRET", validSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.CachePrefix != "scanly:" {
		t.Errorf("CachePrefix = %q", cfg.CachePrefix)
	}
	if cfg.LocalDebounce != 200*time.Millisecond || cfg.RemoteDebounce != 300*time.Millisecond {
		t.Errorf("debounce defaults = (%v, %v)", cfg.LocalDebounce, cfg.RemoteDebounce)
	}
	if cfg.UseRedisCache() {
		t.Error("redis should be off by default")
	}
	if cfg.StripeEnabled() {
		t.Error("stripe should be off by default")
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("SCANLY_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without a session secret")
	}
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("SCANLY_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should reject a short secret")
	}
	if !strings.Contains(err.Error(), "at least 32") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadWeakSecret(t *testing.T) {
	t.Setenv("SCANLY_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a known default secret")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCANLY_SESSION_SECRET", validSecret)
	t.Setenv("SCANLY_SERVER_PORT", "9090")
	t.Setenv("SCANLY_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SCANLY_STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("SCANLY_SYNC_MAX_WAIT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if !cfg.UseRedisCache() || !cfg.StripeEnabled() {
		t.Error("redis and stripe should be enabled")
	}
	if cfg.SyncMaxWait != 10*time.Second {
		t.Errorf("SyncMaxWait = %v", cfg.SyncMaxWait)
	}
}

func TestLoadBadStripeBaseURL(t *testing.T) {
	t.Setenv("SCANLY_SESSION_SECRET", validSecret)
	t.Setenv("SCANLY_STRIPE_BASE_URL", "not-a-url")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a non-http Stripe base URL")
	}
}
