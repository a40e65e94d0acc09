package scheduling

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutoria/models"
)

func TestHourlySlots(t *testing.T) {
	cases := []struct {
		window models.Window
		want   []string
	}{
		{models.WindowEarlyMorning, []string{"06:00", "07:00", "08:00", "09:00"}},
		{models.WindowLateMorning, []string{"10:00", "11:00", "12:00", "13:00"}},
		{models.WindowAfternoon, []string{"14:00", "15:00", "16:00", "17:00"}},
		{models.WindowEvening, []string{"18:00", "19:00", "20:00", "21:00"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HourlySlots(tc.window), "window %s", tc.window)
	}
}

func TestBookableSlotsOrderedNoDuplicates(t *testing.T) {
	hours := NormalizeAvailableHours(map[string]any{
		"wednesday": []any{"18:00-22:00", "06:00-10:00"},
	})

	slots, err := BookableSlots(hours, "2025-06-04")
	require.NoError(t, err)

	assert.True(t, sort.StringsAreSorted(slots))
	seen := map[string]bool{}
	for _, s := range slots {
		assert.False(t, seen[s], "duplicate slot %s", s)
		seen[s] = true
	}
	assert.Len(t, slots, 8)
}

// Scenario: wednesday 10:00-14:00, nothing booked yet.
func TestFreeSlotsAllFree(t *testing.T) {
	hours := models.AvailableHours{
		models.Wednesday: {models.WindowLateMorning},
	}

	free, err := FreeSlots(hours, "2025-06-04", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, free)
}

// Scenario: same schedule with 11:00 already taken.
func TestFreeSlotsExcludesBooked(t *testing.T) {
	hours := models.AvailableHours{
		models.Wednesday: {models.WindowLateMorning},
	}

	free, err := FreeSlots(hours, "2025-06-04", []string{"11:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "12:00", "13:00"}, free)
}

func TestFreeSlotsDisjointFromBooked(t *testing.T) {
	hours := models.AvailableHours{
		models.Wednesday: {models.WindowLateMorning, models.WindowAfternoon},
	}
	booked := []string{"10:00", "15:00", "17:00", "23:00"}

	free, err := FreeSlots(hours, "2025-06-04", booked)
	require.NoError(t, err)

	for _, b := range booked {
		assert.NotContains(t, free, b)
	}
}

func TestFreeSlotsOnClosedDay(t *testing.T) {
	hours := models.AvailableHours{
		models.Wednesday: {models.WindowLateMorning},
	}

	free, err := FreeSlots(hours, "2025-06-06", nil) // Friday
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestWindowForTime(t *testing.T) {
	assert.Equal(t, models.WindowLateMorning, WindowForTime("11:00"))
	assert.Equal(t, models.WindowAfternoon, WindowForTime("14:00"))
	assert.Equal(t, models.Window(""), WindowForTime("22:00"))
	assert.Equal(t, models.Window(""), WindowForTime("05:00"))
}
