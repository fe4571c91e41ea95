package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAvailability(t *testing.T) {
	a := DefaultAvailability()

	assert.Equal(t, DefaultTimezone, a.Timezone)
	assert.Equal(t, DefaultSlotMinutes, a.SlotMinutes)
	assert.Equal(t, DefaultBufferMinutes, a.BufferMinutes)
	assert.Equal(t, DefaultAdvanceDays, a.AdvanceDays)
	assert.Equal(t, DefaultLeadTimeHours, a.LeadTimeHours)
	assert.Len(t, a.Days, len(WeekdayKeys))

	for _, key := range WeekdayKeys {
		w := a.Days[key]
		assert.Equal(t, DefaultDayStart, w.Start, key)
		assert.Equal(t, DefaultDayEnd, w.End, key)
		weekend := key == "sat" || key == "sun"
		assert.Equal(t, !weekend, w.Enabled, key)
	}
}

func TestAnyDayEnabled(t *testing.T) {
	var nilConfig *AvailabilityConfig
	assert.False(t, nilConfig.AnyDayEnabled())

	a := DefaultAvailability()
	assert.True(t, a.AnyDayEnabled())

	for key, w := range a.Days {
		w.Enabled = false
		a.Days[key] = w
	}
	assert.False(t, a.AnyDayEnabled())
}
