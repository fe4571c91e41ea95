// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jadensa-bit/scanly/internal/middleware"
	"github.com/jadensa-bit/scanly/internal/store"
)

// StripeStatus handles GET /api/stripe/status?handle=...
func (h *Handler) StripeStatus(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("handle")
	if handle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle is required")
		return
	}
	if !h.cfg.StripeEnabled() {
		// Missing operator configuration, not a runtime condition.
		writeJSONError(w, http.StatusServiceUnavailable, codeConfiguration,
			"Payments are not configured on this deployment; set SCANLY_STRIPE_SECRET_KEY")
		return
	}

	site, err := h.ownedSite(w, r, handle)
	if site == nil || err != nil {
		return
	}

	status, err := h.stripe.AccountStatus(r.Context(), site.Config.StripeAccountID)
	if err != nil {
		slog.Warn("stripe status lookup failed", "handle", handle, "error", err)
		writeJSONError(w, http.StatusBadGateway, codeTransient, "Could not reach the payment provider")
		return
	}

	writeJSONSuccess(w, map[string]any{"status": status})
}

// StripeConnect handles POST /api/stripe/connect.
func (h *Handler) StripeConnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Handle   string `json:"handle"`
		ReturnTo string `json:"returnTo,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}
	if req.Handle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle is required")
		return
	}
	if !h.cfg.StripeEnabled() {
		writeJSONError(w, http.StatusServiceUnavailable, codeConfiguration,
			"Payments are not configured on this deployment; set SCANLY_STRIPE_SECRET_KEY")
		return
	}

	site, err := h.ownedSite(w, r, req.Handle)
	if site == nil || err != nil {
		return
	}

	writeJSONSuccess(w, map[string]any{
		"url": h.stripe.ConnectURL(req.Handle, req.ReturnTo),
	})
}

// ownedSite loads a site and enforces the caller owns it, writing the
// error response itself on failure.
func (h *Handler) ownedSite(w http.ResponseWriter, r *http.Request, handle string) (*store.Site, error) {
	site, err := h.queries.GetSite(r.Context(), handle)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, codeNotFound, "No storefront for this handle")
		return nil, nil
	}
	if err != nil {
		slog.Error("loading site", "handle", handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not load right now")
		return nil, err
	}
	if site.AccountID != middleware.GetAccountID(h.sm, r) {
		writeJSONError(w, http.StatusForbidden, codeForbidden, "This handle belongs to another account")
		return nil, nil
	}
	return site, nil
}
