// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jadensa-bit/scanly/internal/model"
	"github.com/jadensa-bit/scanly/internal/slots"
	"github.com/jadensa-bit/scanly/internal/store"
)

// Slots handles GET /api/slots?handle=...&date=...&staff=...
//
// The response carries a reason code instead of slots when the
// storefront has no availability or no enabled day, so the renderer
// can pick its fallback state rather than showing an empty list.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("handle")
	if handle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle is required")
		return
	}

	site, err := h.queries.GetSite(r.Context(), handle)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, codeNotFound, "No storefront for this handle")
		return
	}
	if err != nil {
		slog.Error("loading site for slots", "handle", handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not load right now")
		return
	}

	now := time.Now()
	booked, err := h.bookedRanges(r, site.Config, now)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not load right now")
		return
	}

	var (
		generated []slots.Slot
		reason    slots.Reason
	)
	if staffName := r.URL.Query().Get("staff"); staffName != "" {
		staff := findStaff(site.Config.StaffProfiles, staffName)
		if staff == nil {
			writeJSONError(w, http.StatusNotFound, codeNotFound, "No such team member")
			return
		}
		generated, reason = slots.GenerateForStaff(site.Config.Availability, staff, now, booked)
	} else {
		generated, reason = slots.Generate(site.Config.Availability, now, booked)
	}

	if date := r.URL.Query().Get("date"); date != "" {
		generated = slots.OnDate(generated, date)
	}
	if generated == nil {
		generated = []slots.Slot{}
	}

	data := map[string]any{"slots": generated}
	if reason != slots.ReasonNone {
		data["reason"] = string(reason)
	}
	writeJSONSuccess(w, data)
}

// Team handles GET /api/team?handle=...
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("handle")
	if handle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle is required")
		return
	}

	site, err := h.queries.GetSite(r.Context(), handle)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, codeNotFound, "No storefront for this handle")
		return
	}
	if err != nil {
		slog.Error("loading site for team", "handle", handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not load right now")
		return
	}

	team := site.Config.StaffProfiles
	if team == nil {
		team = []model.StaffProfile{}
	}
	writeJSONSuccess(w, map[string]any{"team": team})
}

// bookedRanges loads occupied intervals over the bookable horizon.
func (h *Handler) bookedRanges(r *http.Request, cfg *model.StorefrontConfig, now time.Time) ([]slots.Range, error) {
	if cfg.Availability == nil {
		return nil, nil
	}
	horizon := cfg.Availability.AdvanceDays
	if horizon <= 0 {
		horizon = model.DefaultAdvanceDays
	}
	pairs, err := h.queries.ListBookedRanges(r.Context(), cfg.Handle, now, now.AddDate(0, 0, horizon+1))
	if err != nil {
		slog.Error("loading booked ranges", "handle", cfg.Handle, "error", err)
		return nil, err
	}
	out := make([]slots.Range, len(pairs))
	for i, p := range pairs {
		out[i] = slots.Range{Start: p[0], End: p[1]}
	}
	return out, nil
}

func findStaff(team []model.StaffProfile, name string) *model.StaffProfile {
	for i := range team {
		if team[i].Name == name {
			return &team[i]
		}
	}
	return nil
}
