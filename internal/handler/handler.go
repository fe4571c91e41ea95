// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package handler implements the HTTP API: config persistence and
// publishing, public reads, uploads, payment onboarding, slot and team
// reads, bookings, and the change-watch stream.
package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/jadensa-bit/scanly/internal/bus"
	"github.com/jadensa-bit/scanly/internal/config"
	"github.com/jadensa-bit/scanly/internal/draft"
	"github.com/jadensa-bit/scanly/internal/imaging"
	"github.com/jadensa-bit/scanly/internal/middleware"
	"github.com/jadensa-bit/scanly/internal/payments"
	"github.com/jadensa-bit/scanly/internal/store"
	"github.com/jadensa-bit/scanly/internal/syncer"
)

// Handler carries the dependencies shared by all API endpoints.
type Handler struct {
	cfg     *config.Config
	queries *store.Queries
	drafts  *draft.Store
	engines *syncer.Registry
	bus     *bus.Bus
	sm      *scs.SessionManager
	stripe  payments.Client
	images  *imaging.Processor
}

// New creates the API handler.
func New(cfg *config.Config, queries *store.Queries, drafts *draft.Store,
	engines *syncer.Registry, b *bus.Bus, sm *scs.SessionManager,
	stripe payments.Client, images *imaging.Processor) *Handler {
	return &Handler{
		cfg:     cfg,
		queries: queries,
		drafts:  drafts,
		engines: engines,
		bus:     b,
		sm:      sm,
		stripe:  stripe,
		images:  images,
	}
}

// Routes mounts the API under /api.
func (h *Handler) Routes(r chi.Router) {
	requireAccount := middleware.RequireAccount(h.sm)
	bookingLimit := middleware.NewIPRateLimiter(h.cfg.BookingRateLimit, h.cfg.BookingRateBurst)

	r.Route("/api", func(r chi.Router) {
		// Owner surface.
		r.Group(func(r chi.Router) {
			r.Use(requireAccount)
			r.Post("/site", h.SaveSite)
			r.Post("/site/publish", h.PublishSite)
			r.Post("/uploads", h.Upload)
			r.Get("/stripe/status", h.StripeStatus)
			r.Post("/stripe/connect", h.StripeConnect)
			r.Get("/watch", h.Watch)
		})

		// Public surface.
		r.Get("/site", h.GetSite)
		r.Get("/slots", h.Slots)
		r.Get("/team", h.Team)
		r.With(bookingLimit.Middleware()).Post("/bookings", h.CreateBooking)
	})

	// Stored uploads.
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.cfg.UploadsDir)))
	r.Get("/uploads/*", fs.ServeHTTP)
}
