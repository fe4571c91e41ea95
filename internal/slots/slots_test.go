package slots

import (
	"testing"
	"time"

	"github.com/jadensa-bit/scanly/internal/model"
)

// mondayOnly returns availability open Monday 09:00-17:00 in UTC with
// no lead time, for deterministic tests.
func mondayOnly() *model.AvailabilityConfig {
	av := &model.AvailabilityConfig{
		Timezone:      "UTC",
		SlotMinutes:   60,
		BufferMinutes: 0,
		AdvanceDays:   7,
		LeadTimeHours: 0,
		Days:          map[string]model.DayWindow{},
	}
	for _, key := range model.WeekdayKeys {
		av.Days[key] = model.DayWindow{Enabled: false, Start: "09:00", End: "17:00"}
	}
	av.Days["mon"] = model.DayWindow{Enabled: true, Start: "09:00", End: "17:00"}
	return av
}

// 2026-03-14 is a Saturday; the following Monday is 2026-03-16.
var saturday = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func TestGenerateReasons(t *testing.T) {
	if _, reason := Generate(nil, saturday, nil); reason != ReasonMissingAvailability {
		t.Errorf("nil availability reason = %q", reason)
	}

	av := mondayOnly()
	for key, w := range av.Days {
		w.Enabled = false
		av.Days[key] = w
	}
	if _, reason := Generate(av, saturday, nil); reason != ReasonNoEnabledDays {
		t.Errorf("all-disabled reason = %q", reason)
	}
}

func TestGenerateMondayOnly(t *testing.T) {
	got, reason := Generate(mondayOnly(), saturday, nil)
	if reason != ReasonNone {
		t.Fatalf("reason = %q", reason)
	}
	if len(got) == 0 {
		t.Fatal("expected slots")
	}

	// 09:00-17:00 at 60-minute slots: 8 per Monday, Mondays only.
	for _, s := range got {
		if s.Start.Weekday() != time.Monday {
			t.Errorf("slot %s falls on %s", s.ID, s.Start.Weekday())
		}
		if h := s.Start.Hour(); h < 9 || h > 16 {
			t.Errorf("slot %s outside window", s.ID)
		}
	}

	monday := OnDate(got, "2026-03-16")
	if len(monday) != 8 {
		t.Errorf("slots on 2026-03-16 = %d, want 8", len(monday))
	}
	if monday[0].ID != "2026-03-16T09:00" {
		t.Errorf("first slot id = %q", monday[0].ID)
	}

	if off := OnDate(got, "2026-03-17"); len(off) != 0 {
		t.Errorf("expected no slots on a Tuesday, got %d", len(off))
	}
}

func TestGenerateRespectsLeadTimeAndHorizon(t *testing.T) {
	av := mondayOnly()
	av.LeadTimeHours = 72 // pushes past Monday 2026-03-16 08:00 start
	av.AdvanceDays = 7

	// Monday 07:00: with 72h lead the same day is excluded.
	mondayMorning := time.Date(2026, 3, 16, 7, 0, 0, 0, time.UTC)
	got, _ := Generate(av, mondayMorning, nil)
	if len(OnDate(got, "2026-03-16")) != 0 {
		t.Error("lead time not applied")
	}
	if len(OnDate(got, "2026-03-23")) != 8 {
		t.Errorf("next Monday slots = %d, want 8", len(OnDate(got, "2026-03-23")))
	}

	// Advance horizon: Mondays past now+advanceDays are excluded.
	av.LeadTimeHours = 0
	av.AdvanceDays = 5
	got, _ = Generate(av, saturday, nil)
	if len(OnDate(got, "2026-03-23")) != 0 {
		t.Error("advance-days horizon not applied")
	}
}

func TestGenerateExcludesBookedWithBuffer(t *testing.T) {
	av := mondayOnly()
	av.BufferMinutes = 30
	av.SlotMinutes = 60

	booked := []Range{{
		Start: time.Date(2026, 3, 16, 10, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 16, 11, 30, 0, 0, time.UTC),
	}}
	got, _ := Generate(av, saturday, booked)
	monday := OnDate(got, "2026-03-16")

	for _, s := range monday {
		// With a 30m buffer nothing may start between 09:30 and 12:00.
		if s.Start.After(time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC).Add(-time.Minute)) &&
			s.Start.Before(time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("slot %s overlaps booked range (with buffer)", s.ID)
		}
	}
	if len(monday) == 0 {
		t.Error("expected remaining slots outside the booked range")
	}
}

func TestGenerateInvertedWindowYieldsNothing(t *testing.T) {
	av := mondayOnly()
	av.Days["mon"] = model.DayWindow{Enabled: true, Start: "17:00", End: "09:00"}

	got, reason := Generate(av, saturday, nil)
	if reason != ReasonNone {
		t.Errorf("reason = %q", reason)
	}
	if len(got) != 0 {
		t.Errorf("inverted window produced %d slots", len(got))
	}
}

func TestGenerateForStaffOverride(t *testing.T) {
	av := mondayOnly()

	// Staff member works Tuesdays only.
	staff := &model.StaffProfile{
		Name:        "Maya",
		WorkingDays: map[string]model.DayWindow{},
	}
	for _, key := range model.WeekdayKeys {
		staff.WorkingDays[key] = model.DayWindow{Enabled: false, Start: "09:00", End: "17:00"}
	}
	staff.WorkingDays["tue"] = model.DayWindow{Enabled: true, Start: "10:00", End: "14:00"}

	got, reason := GenerateForStaff(av, staff, saturday, nil)
	if reason != ReasonNone {
		t.Fatalf("reason = %q", reason)
	}
	for _, s := range got {
		if s.Start.Weekday() != time.Tuesday {
			t.Errorf("staff slot %s on %s, want Tuesday only", s.ID, s.Start.Weekday())
		}
	}
	if len(OnDate(got, "2026-03-17")) != 4 {
		t.Errorf("tuesday staff slots = %d, want 4", len(OnDate(got, "2026-03-17")))
	}

	// No override: inherits the storefront schedule.
	inherit, _ := GenerateForStaff(av, &model.StaffProfile{Name: "Lee"}, saturday, nil)
	base, _ := Generate(av, saturday, nil)
	if len(inherit) != len(base) {
		t.Errorf("inherited slots = %d, want %d", len(inherit), len(base))
	}
}
