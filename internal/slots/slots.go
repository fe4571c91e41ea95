// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package slots generates bookable time slots from a storefront's
// availability configuration. Generation is pure time math over the
// configured windows; booked ranges are excluded with the configured
// buffer around them.
package slots

import (
	"time"

	"github.com/jadensa-bit/scanly/internal/model"
)

// Reason tells the renderer which fallback state applies when no
// slots can be generated. It is distinct from an empty slot list
// (fully booked is not a fallback).
type Reason string

// Fallback reasons
const (
	ReasonNone                Reason = ""
	ReasonMissingAvailability Reason = "MISSING_AVAILABILITY"
	ReasonNoEnabledDays       Reason = "NO_ENABLED_DAYS"
)

// Slot is one bookable unit of time.
type Slot struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Range is an occupied interval, typically an existing booking.
type Range struct {
	Start time.Time
	End   time.Time
}

// slotIDLayout formats slot IDs as local wall-clock identifiers.
const slotIDLayout = "2006-01-02T15:04"

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// Generate produces every open slot between the lead-time horizon and
// the advance-days horizon. A nil availability or a week with no
// enabled day yields no slots and the corresponding reason.
func Generate(av *model.AvailabilityConfig, now time.Time, booked []Range) ([]Slot, Reason) {
	if av == nil {
		return nil, ReasonMissingAvailability
	}
	if !av.AnyDayEnabled() {
		return nil, ReasonNoEnabledDays
	}

	loc, err := time.LoadLocation(av.Timezone)
	if err != nil {
		loc = time.UTC
	}

	local := now.In(loc)
	earliest := local.Add(time.Duration(av.LeadTimeHours) * time.Hour)
	slotDur := time.Duration(av.SlotMinutes) * time.Minute
	step := slotDur + time.Duration(av.BufferMinutes)*time.Minute
	buffer := time.Duration(av.BufferMinutes) * time.Minute

	var out []Slot
	for offset := 0; offset <= av.AdvanceDays; offset++ {
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, offset)
		window, ok := av.Days[weekdayKeys[day.Weekday()]]
		if !ok || !window.Enabled {
			continue
		}

		open, okOpen := atClock(day, window.Start)
		closeAt, okClose := atClock(day, window.End)
		// An inverted or unparsable window yields no slots for the day.
		if !okOpen || !okClose || !open.Before(closeAt) {
			continue
		}

		for t := open; !t.Add(slotDur).After(closeAt); t = t.Add(step) {
			if t.Before(earliest) {
				continue
			}
			end := t.Add(slotDur)
			if overlapsAny(t, end, booked, buffer) {
				continue
			}
			out = append(out, Slot{ID: t.Format(slotIDLayout), Start: t, End: end})
		}
	}
	return out, ReasonNone
}

// GenerateForStaff narrows generation to one staff member's effective
// windows: a per-weekday override when present, the storefront window
// otherwise.
func GenerateForStaff(av *model.AvailabilityConfig, staff *model.StaffProfile, now time.Time, booked []Range) ([]Slot, Reason) {
	if av == nil {
		return nil, ReasonMissingAvailability
	}
	if staff == nil || staff.WorkingDays == nil {
		return Generate(av, now, booked)
	}

	narrowed := *av
	narrowed.Days = make(map[string]model.DayWindow, len(model.WeekdayKeys))
	for _, key := range model.WeekdayKeys {
		narrowed.Days[key] = staff.WindowFor(key, av.Days[key])
	}
	return Generate(&narrowed, now, booked)
}

// OnDate filters slots to one calendar date ("2006-01-02" in the
// slots' own location).
func OnDate(all []Slot, date string) []Slot {
	var out []Slot
	for _, s := range all {
		if s.Start.Format("2006-01-02") == date {
			out = append(out, s)
		}
	}
	return out
}

func atClock(day time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), true
}

func overlapsAny(start, end time.Time, booked []Range, buffer time.Duration) bool {
	for _, r := range booked {
		if start.Before(r.End.Add(buffer)) && r.Start.Add(-buffer).Before(end) {
			return true
		}
	}
	return false
}
