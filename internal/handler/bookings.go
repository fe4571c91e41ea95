// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jadensa-bit/scanly/internal/slots"
	"github.com/jadensa-bit/scanly/internal/store"
)

// bookingRequest is the POST /api/bookings body.
type bookingRequest struct {
	Handle    string `json:"handle"`
	ItemTitle string `json:"itemTitle"`
	SlotID    string `json:"slotId,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Notes     string `json:"notes,omitempty"`
}

// CreateBooking handles POST /api/bookings. For bookable storefronts
// the requested slot is re-generated server side, so a stale or
// already-taken slot is rejected rather than double booked.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}
	if req.Handle == "" || req.ItemTitle == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Handle and item are required")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Name and email are required")
		return
	}

	site, err := h.queries.GetSite(r.Context(), req.Handle)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, codeNotFound, "No storefront for this handle")
		return
	}
	if err != nil {
		slog.Error("loading site for booking", "handle", req.Handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not book right now")
		return
	}
	if !site.Active {
		writeJSONError(w, http.StatusNotFound, codeNotFound, "This storefront is not live")
		return
	}

	cfg := site.Config
	var slotStart, slotEnd *time.Time
	if cfg.Mode.Bookable() {
		if req.SlotID == "" {
			writeJSONError(w, http.StatusBadRequest, codeValidation, "A time slot is required")
			return
		}

		now := time.Now()
		booked, err := h.bookedRanges(r, cfg, now)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not book right now")
			return
		}
		available, reason := slots.Generate(cfg.Availability, now, booked)
		if reason != slots.ReasonNone {
			writeJSONError(w, http.StatusConflict, codeValidation, "This storefront is not taking bookings")
			return
		}

		var chosen *slots.Slot
		for i := range available {
			if available[i].ID == req.SlotID {
				chosen = &available[i]
				break
			}
		}
		if chosen == nil {
			writeJSONError(w, http.StatusConflict, codeValidation, "That time is no longer available")
			return
		}
		slotStart, slotEnd = &chosen.Start, &chosen.End
	}

	reference := uuid.NewString()
	details, _ := json.Marshal(map[string]string{"notes": req.Notes})
	if _, err := h.queries.CreateBooking(r.Context(), store.CreateBookingParams{
		Reference:     reference,
		Handle:        req.Handle,
		ItemTitle:     req.ItemTitle,
		SlotStart:     slotStart,
		SlotEnd:       slotEnd,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		Details:       string(details),
	}); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			writeJSONError(w, http.StatusConflict, codeValidation, "That time is no longer available")
			return
		}
		slog.Error("creating booking", "handle", req.Handle, "error", err)
		writeJSONError(w, http.StatusInternalServerError, codeTransient, "Could not book right now")
		return
	}

	writeJSONSuccess(w, map[string]any{"reference": reference})
}
