// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jadensa-bit/scanly/internal/middleware"
	"github.com/jadensa-bit/scanly/internal/model"
	"github.com/jadensa-bit/scanly/internal/store"
	"github.com/jadensa-bit/scanly/internal/util"
)

// SaveSite handles POST /api/site. The body is a full normalized
// StorefrontConfig. Writes flow through the per-handle sync engine, so
// rapid saves coalesce and every committed write attempts publish.
// ?instant=true bypasses the debounce for deliberate actions.
func (h *Handler) SaveSite(w http.ResponseWriter, r *http.Request) {
	var cfg model.StorefrontConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	if cfg.Handle == "" || !util.IsValidHandle(cfg.Handle) {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "A valid handle is required")
		return
	}
	if cfg.BrandName == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Brand name is required")
		return
	}
	if !cfg.Mode.Valid() {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Unknown storefront mode")
		return
	}

	accountID := middleware.GetAccountID(h.sm, r)
	existing, err := h.queries.GetSite(r.Context(), cfg.Handle)
	switch {
	case err == nil:
		if existing.AccountID != accountID {
			writeJSONError(w, http.StatusForbidden, codeForbidden, "This handle belongs to another account")
			return
		}
		// Server-owned fields survive a config round-trip through the editor.
		if cfg.StripeAccountID == "" {
			cfg.StripeAccountID = existing.Config.StripeAccountID
		}
		if cfg.PublishedAt == nil {
			cfg.PublishedAt = existing.Config.PublishedAt
			cfg.Active = existing.Config.Active
		}
	case errors.Is(err, store.ErrNotFound):
		// First save claims the handle synchronously so the account
		// binding exists before any debounced write lands. With no
		// record and no draft there was nothing to hydrate from, so
		// the first apply is a genuine edit, not a hydration echo.
		if err := h.queries.UpsertSite(r.Context(), cfg.Handle, accountID, &cfg); err != nil {
			slog.Error("claiming handle", "handle", cfg.Handle, "error", err)
			writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not save right now")
			return
		}
		if h.drafts.Load(r.Context(), cfg.Handle) == nil {
			h.engines.For(cfg.Handle).MarkHydrated()
		}
	default:
		slog.Error("loading site for save", "handle", cfg.Handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not save right now")
		return
	}

	engine := h.engines.For(cfg.Handle)
	if r.URL.Query().Get("instant") == "true" {
		engine.ApplyInstant(r.Context(), &cfg)
	} else {
		engine.Apply(&cfg)
	}

	writeJSONSuccess(w, nil)
}

// publishRequest is the POST /api/site/publish body. Config rides
// along only for a first-time publish of a record that was never
// persisted.
type publishRequest struct {
	Handle string                  `json:"handle"`
	Config *model.StorefrontConfig `json:"config,omitempty"`
}

// PublishSite handles POST /api/site/publish.
func (h *Handler) PublishSite(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}
	if req.Handle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle is required")
		return
	}

	accountID := middleware.GetAccountID(h.sm, r)
	_, err := h.queries.GetSite(r.Context(), req.Handle)
	if errors.Is(err, store.ErrNotFound) {
		if req.Config == nil {
			writeJSONError(w, http.StatusNotFound, codeNotFound, "No record to publish; include config for a first-time publish")
			return
		}
		if err := h.queries.UpsertSite(r.Context(), req.Handle, accountID, req.Config); err != nil {
			slog.Error("persisting before publish", "handle", req.Handle, "error", err)
			writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not save right now")
			return
		}
	} else if err != nil {
		slog.Error("loading site for publish", "handle", req.Handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not publish right now")
		return
	}

	now := time.Now().UTC()
	if err := h.queries.PublishSite(r.Context(), req.Handle, now); err != nil {
		// The record exists but is not live. Soft failure: the next
		// committed edit attempts publish again.
		slog.Warn("publish failed after persist", "handle", req.Handle, "error", err)
		writeJSONSuccess(w, map[string]any{"published": false})
		return
	}

	writeJSONSuccess(w, map[string]any{
		"published":   true,
		"publishedAt": now.Format(time.RFC3339),
	})
}

// GetSite handles GET /api/site?handle=...&edit=true.
//
// With edit=true the caller must own the record; the freshest state
// wins, so an unsynced draft shadows the durable row. Without edit the
// endpoint is the public read and only serves live storefronts.
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("handle")
	if handle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle is required")
		return
	}

	editMode := r.URL.Query().Get("edit") == "true"

	site, err := h.queries.GetSite(r.Context(), handle)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("loading site", "handle", handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not load right now")
		return
	}

	if editMode {
		accountID := middleware.GetAccountID(h.sm, r)
		if accountID == "" {
			middleware.WriteAPIError(w, http.StatusUnauthorized, codeLoginRequired,
				"Sign in to continue", "/login?next="+r.URL.RequestURI())
			return
		}
		if site != nil && site.AccountID != accountID {
			writeJSONError(w, http.StatusForbidden, codeForbidden, "This handle belongs to another account")
			return
		}
		cfg := h.drafts.Load(r.Context(), handle)
		if cfg == nil && site != nil {
			cfg = site.Config
		}
		if cfg == nil {
			writeJSONError(w, http.StatusNotFound, codeNotFound, "No storefront for this handle")
			return
		}
		writeJSONSuccess(w, map[string]any{"site": map[string]any{"config": cfg}})
		return
	}

	if site == nil || !site.Active {
		writeJSONError(w, http.StatusNotFound, codeNotFound, "No storefront for this handle")
		return
	}
	writeJSONSuccess(w, map[string]any{"site": map[string]any{"config": site.Config}})
}
