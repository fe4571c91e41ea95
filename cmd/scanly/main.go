// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Scanly is a storefront mini-app service: merchants edit a single
// configuration record, the service debounces and persists it,
// auto-publishes committed edits, and serves the public read, slot,
// and booking endpoints that rendered storefronts consume.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/jadensa-bit/scanly/internal/bus"
	"github.com/jadensa-bit/scanly/internal/cache"
	"github.com/jadensa-bit/scanly/internal/config"
	"github.com/jadensa-bit/scanly/internal/draft"
	"github.com/jadensa-bit/scanly/internal/handler"
	"github.com/jadensa-bit/scanly/internal/imaging"
	"github.com/jadensa-bit/scanly/internal/logging"
	"github.com/jadensa-bit/scanly/internal/model"
	"github.com/jadensa-bit/scanly/internal/payments"
	"github.com/jadensa-bit/scanly/internal/scheduler"
	"github.com/jadensa-bit/scanly/internal/session"
	"github.com/jadensa-bit/scanly/internal/store"
	"github.com/jadensa-bit/scanly/internal/syncer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// WARN and above also land in the events table from here on.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))

	queries := store.New(db)

	draftCache, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.DraftTTL,
	})
	if err != nil {
		return fmt.Errorf("initializing draft cache: %w", err)
	}
	defer func() { _ = draftCache.Close() }()
	slog.Info("draft store ready", "redis", cfg.UseRedisCache())

	drafts := draft.New(draftCache, cfg.DraftTTL)
	broadcast := bus.New()
	defer broadcast.Close()

	engines := syncer.NewRegistry(func(handle string) *syncer.Engine {
		return syncer.New(handle, drafts, broadcast,
			func(ctx context.Context, c *model.StorefrontConfig) error {
				return queries.UpsertSite(ctx, c.Handle, "", c)
			},
			func(ctx context.Context, h string) error {
				return queries.PublishSite(ctx, h, time.Now().UTC())
			},
			syncer.Options{
				LocalDebounce:  cfg.LocalDebounce,
				RemoteDebounce: cfg.RemoteDebounce,
				MaxWait:        cfg.SyncMaxWait,
			})
	})
	defer engines.Close()

	sessionManager := session.New(db, cfg.IsDevelopment())

	var stripe payments.Client = payments.Disabled{}
	if cfg.StripeEnabled() {
		stripe = payments.NewHTTPClient(cfg.StripeBaseURL, cfg.StripeSecretKey, cfg.PublicBaseURL)
		slog.Info("stripe connect enabled")
	}

	images := imaging.NewProcessor(cfg.UploadsDir, cfg.PublicBaseURL)

	sched := scheduler.New(db, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	h := handler.New(cfg, queries, drafts, engines, broadcast, sessionManager, stripe, images)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(sessionManager.LoadAndSave)
	h.Routes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Committed edits still in the debounce lanes flush before exit.
	engines.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
