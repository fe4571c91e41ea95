// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package model

// StaffProfile is one bookable team member, relevant only in services
// mode. Specialties keep comma-entry order for display; order is
// irrelevant for matching.
type StaffProfile struct {
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Photo       string   `json:"photo,omitempty"`

	// WorkingDays overrides the storefront availability per weekday.
	// When nil the member inherits availability.days. When present, all
	// seven weekday keys exist; a key the editor omitted defaults to
	// disabled at normalization time.
	WorkingDays map[string]DayWindow `json:"workingDays,omitempty"`
}

// WindowFor returns the member's effective window for a weekday key,
// falling back to the storefront-wide window when no override is set.
func (s *StaffProfile) WindowFor(key string, fallback DayWindow) DayWindow {
	if s.WorkingDays == nil {
		return fallback
	}
	w, ok := s.WorkingDays[key]
	if !ok {
		return DayWindow{Enabled: false}
	}
	return w
}
