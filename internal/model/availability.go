// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package model

// Weekday keys in display order. Every materialized availability map
// carries exactly these seven keys.
var WeekdayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// DayWindow is one weekday's bookable window. Start and End are
// "HH:MM" 24-hour strings. Start < End is assumed by slot generation
// but not enforced by the editor; an inverted window yields no slots.
type DayWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Availability defaults.
const (
	DefaultTimezone      = "America/New_York"
	DefaultSlotMinutes   = 30
	DefaultBufferMinutes = 0
	DefaultAdvanceDays   = 14
	DefaultLeadTimeHours = 2
	DefaultDayStart      = "09:00"
	DefaultDayEnd        = "17:00"
)

// AvailabilityConfig describes when a storefront takes bookings.
// Relevant for services and booking modes.
type AvailabilityConfig struct {
	Timezone      string               `json:"timezone"`
	SlotMinutes   int                  `json:"slotMinutes"`
	BufferMinutes int                  `json:"bufferMinutes"`
	AdvanceDays   int                  `json:"advanceDays"`
	LeadTimeHours int                  `json:"leadTime"`
	Days          map[string]DayWindow `json:"days"`
}

// DefaultAvailability returns the availability a fresh bookable
// storefront starts with: weekdays 09:00-17:00, weekend off.
func DefaultAvailability() *AvailabilityConfig {
	days := make(map[string]DayWindow, len(WeekdayKeys))
	for _, key := range WeekdayKeys {
		enabled := key != "sat" && key != "sun"
		days[key] = DayWindow{Enabled: enabled, Start: DefaultDayStart, End: DefaultDayEnd}
	}
	return &AvailabilityConfig{
		Timezone:      DefaultTimezone,
		SlotMinutes:   DefaultSlotMinutes,
		BufferMinutes: DefaultBufferMinutes,
		AdvanceDays:   DefaultAdvanceDays,
		LeadTimeHours: DefaultLeadTimeHours,
		Days:          days,
	}
}

// AnyDayEnabled reports whether at least one weekday is enabled.
func (a *AvailabilityConfig) AnyDayEnabled() bool {
	if a == nil {
		return false
	}
	for _, w := range a.Days {
		if w.Enabled {
			return true
		}
	}
	return false
}
