// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package draft persists the most recently normalized configuration
// per handle, ahead of (or instead of) a confirmed durable write. The
// sync engine treats this store as a cache for instant UI feedback;
// the sites table is the durable record.
package draft

import (
	"context"
	"log/slog"
	"time"

	"github.com/jadensa-bit/scanly/internal/cache"
	"github.com/jadensa-bit/scanly/internal/model"
)

// keyPrefix namespaces draft keys so multiple storefronts (and other
// cache users) coexist without collision. Full key: <prefix>site:<handle>.
const keyPrefix = "site:"

// Store is the handle-keyed draft store.
type Store struct {
	cache *cache.Typed[model.StorefrontConfig]
}

// New creates a draft store on top of the given cache backend.
func New(c cache.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{cache: cache.NewTyped[model.StorefrontConfig](c, ttl)}
}

// Key returns the cache key for a handle.
func Key(handle string) string {
	return keyPrefix + handle
}

// Save overwrites the draft for the config's handle. Saving is
// best-effort: a failed write (storage quota, backend down) is logged
// and swallowed so it never blocks the edit session.
func (s *Store) Save(ctx context.Context, cfg *model.StorefrontConfig) {
	if cfg == nil || cfg.Handle == "" {
		return
	}
	if err := s.cache.Set(ctx, Key(cfg.Handle), cfg); err != nil {
		slog.Warn("draft save failed", "handle", cfg.Handle, "error", err)
	}
}

// Load returns the stored draft for a handle, or nil when no draft
// exists or the stored bytes no longer decode.
func (s *Store) Load(ctx context.Context, handle string) *model.StorefrontConfig {
	cfg, ok := s.cache.Get(ctx, Key(handle))
	if !ok {
		return nil
	}
	return cfg
}

// Delete removes the draft for a handle.
func (s *Store) Delete(ctx context.Context, handle string) {
	if err := s.cache.Delete(ctx, Key(handle)); err != nil {
		slog.Warn("draft delete failed", "handle", handle, "error", err)
	}
}
