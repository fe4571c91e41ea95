// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package scheduler runs periodic background work, currently the
// weekly merchant digest.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jadensa-bit/scanly/internal/logging"
	"github.com/jadensa-bit/scanly/internal/store"
)

// Scheduler owns the cron loop.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the weekly digest job, Mondays at 09:00 server time.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 9 * * 1", func() {
		if err := s.RunWeeklyDigest(context.Background(), time.Now()); err != nil {
			s.logger.Error("weekly digest failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop drains the cron loop.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunWeeklyDigest records a booking summary event for every live site
// whose owner opted into the weekly digest. The notification channel
// itself (email delivery) picks these events up out of band.
func (s *Scheduler) RunWeeklyDigest(ctx context.Context, now time.Time) error {
	queries := store.New(s.db)

	sites, err := queries.ListActiveSites(ctx)
	if err != nil {
		return err
	}

	from := now.AddDate(0, 0, -7)
	var digests int
	for _, site := range sites {
		n := site.Config.Notifications
		if n == nil || !n.NotifyWeekly || n.Email == "" {
			continue
		}

		count, err := queries.CountBookingsInRange(ctx, site.Handle, from, now)
		if err != nil {
			s.logger.Error("weekly digest count failed", "handle", site.Handle, "error", err)
			continue
		}

		if err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:    "info",
			Category: logging.CategoryBooking,
			Message:  "weekly digest",
			Metadata: fmt.Sprintf(`{"handle":%q,"email":%q,"bookings":%d}`, site.Handle, n.Email, count),
		}); err != nil {
			s.logger.Error("weekly digest event failed", "handle", site.Handle, "error", err)
			continue
		}
		digests++
	}

	s.logger.Info("weekly digest complete", "sites", len(sites), "digests", digests)
	return nil
}
