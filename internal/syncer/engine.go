// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package syncer turns a stream of configuration changes into
// responsive local feedback and eventually-consistent durable state
// without flooding the persistence layer. Local and remote writes ride
// independent debounce lanes because they have different cost/latency
// profiles.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jadensa-bit/scanly/internal/bus"
	"github.com/jadensa-bit/scanly/internal/draft"
	"github.com/jadensa-bit/scanly/internal/model"
)

// Debounce defaults. MaxWait bounds how long an uninterrupted edit
// stream can defer delivery.
const (
	DefaultLocalDebounce  = 200 * time.Millisecond
	DefaultRemoteDebounce = 300 * time.Millisecond
	DefaultMaxWait        = 5 * time.Second
)

// PersistFunc writes a normalized config to the durable record.
type PersistFunc func(ctx context.Context, cfg *model.StorefrontConfig) error

// PublishFunc makes the persisted config live.
type PublishFunc func(ctx context.Context, handle string) error

// Options tunes an Engine.
type Options struct {
	LocalDebounce  time.Duration
	RemoteDebounce time.Duration
	MaxWait        time.Duration
}

func (o Options) withDefaults() Options {
	if o.LocalDebounce <= 0 {
		o.LocalDebounce = DefaultLocalDebounce
	}
	if o.RemoteDebounce <= 0 {
		o.RemoteDebounce = DefaultRemoteDebounce
	}
	if o.MaxWait <= 0 {
		o.MaxWait = DefaultMaxWait
	}
	return o
}

// Engine is the per-handle sync engine. The local lane feeds the draft
// store, the render tick, and the broadcast bus; the remote lane feeds
// durable persistence followed by auto-publish. Writes are
// last-write-wins by debounce completion.
type Engine struct {
	handle  string
	drafts  *draft.Store
	bus     *bus.Bus
	persist PersistFunc
	publish PublishFunc

	local  *lane
	remote *lane

	// tick is the monotonically increasing render counter. Preview
	// surfaces subscribe to the tick, not to config references.
	tick atomic.Int64

	// hydrated is the one-shot guard keeping the remote lane quiet
	// until the first local write of the session has been captured.
	// Without it, edit-mode hydration would race a stale initial state
	// into the durable record.
	hydrated atomic.Bool
}

// New creates an Engine for one handle.
func New(handle string, drafts *draft.Store, b *bus.Bus, persist PersistFunc, publish PublishFunc, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		handle:  handle,
		drafts:  drafts,
		bus:     b,
		persist: persist,
		publish: publish,
	}
	e.local = newLane(opts.LocalDebounce, opts.MaxWait, e.fireLocal)
	e.remote = newLane(opts.RemoteDebounce, opts.MaxWait, e.fireRemote)
	return e
}

// Handle returns the handle this engine serves.
func (e *Engine) Handle() string {
	return e.handle
}

// MarkHydrated records that the current editor state came from the
// durable record, without triggering any save. The next Apply feeds
// both lanes.
func (e *Engine) MarkHydrated() {
	e.hydrated.Store(true)
}

// Apply queues a normalized config on both debounce lanes. The first
// Apply of an unhydrated session only reaches the local lane: it is
// the hydration pass, and persisting it could overwrite fresher remote
// state.
func (e *Engine) Apply(cfg *model.StorefrontConfig) {
	if cfg == nil {
		return
	}
	e.local.update(cfg)
	if !e.hydrated.CompareAndSwap(false, true) {
		e.remote.update(cfg)
	}
}

// ApplyInstant writes through the local path synchronously and flags
// the local lane to skip its next scheduled fire, so high-perceived-
// latency actions (an upload completing, an explicit style change)
// reflect immediately without a double refresh. The remote lane is fed
// normally.
func (e *Engine) ApplyInstant(ctx context.Context, cfg *model.StorefrontConfig) {
	if cfg == nil {
		return
	}
	e.local.skipNextFire()
	e.writeLocal(ctx, cfg)
	if !e.hydrated.CompareAndSwap(false, true) {
		e.remote.update(cfg)
	}
}

// RenderTick returns the current render counter. Every successful
// local write increments it.
func (e *Engine) RenderTick() int64 {
	return e.tick.Load()
}

// Flush delivers both lanes immediately.
func (e *Engine) Flush() {
	e.local.flush()
	e.remote.flush()
}

// Close flushes and stops both lanes.
func (e *Engine) Close() {
	e.local.stop()
	e.remote.stop()
}

func (e *Engine) fireLocal(cfg *model.StorefrontConfig) {
	e.writeLocal(context.Background(), cfg)
}

func (e *Engine) writeLocal(ctx context.Context, cfg *model.StorefrontConfig) {
	e.drafts.Save(ctx, cfg)
	e.tick.Add(1)
	e.bus.PublishConfig(e.handle, cfg)
}

// fireRemote persists, then immediately publishes: every accepted edit
// goes live after the debounce delay. A failed publish after a
// successful persist is a soft failure, reported but not retried; the
// next edit cycle attempts publish again naturally.
func (e *Engine) fireRemote(cfg *model.StorefrontConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.persist(ctx, cfg); err != nil {
		slog.Error("config persist failed", "handle", e.handle, "error", err)
		return
	}
	if err := e.publish(ctx, e.handle); err != nil {
		slog.Warn("auto-publish failed, record saved but not live", "handle", e.handle, "error", err)
	}
}

// Registry hands out one Engine per handle. There is exactly one
// writer per handle under normal operation.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
	factory func(handle string) *Engine
}

// NewRegistry creates a registry using factory to build missing engines.
func NewRegistry(factory func(handle string) *Engine) *Registry {
	return &Registry{
		engines: make(map[string]*Engine),
		factory: factory,
	}
}

// For returns the engine for a handle, creating it on first use.
func (r *Registry) For(handle string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.engines[handle]
	if !ok {
		e = r.factory(handle)
		r.engines[handle] = e
	}
	return e
}

// Close stops every engine.
func (r *Registry) Close() {
	r.mu.Lock()
	engines := make([]*Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.engines = make(map[string]*Engine)
	r.mu.Unlock()

	for _, e := range engines {
		e.Close()
	}
}
