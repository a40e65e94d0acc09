package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutoria/models"
)

func TestNormalizeAvailableHoursDropsJunk(t *testing.T) {
	raw := map[string]any{
		"wednesday": []any{"10:00-14:00", "25:00-29:00", "10:00-14:00"},
		"funday":    []any{"10:00-14:00"},
		"monday":    []any{1, true, nil},
		"friday":    "not a list",
	}

	hours := NormalizeAvailableHours(raw)

	assert.Equal(t, models.AvailableHours{
		models.Wednesday: {models.WindowLateMorning},
	}, hours)
}

func TestNormalizeAvailableHoursNeverPanics(t *testing.T) {
	inputs := []any{
		nil,
		"garbage",
		42,
		[]any{"monday"},
		map[string]any{},
		map[string]any{"monday": []any{}},
		map[string]any{"monday": map[string]any{"nested": true}},
	}
	for _, in := range inputs {
		hours := NormalizeAvailableHours(in)
		assert.Empty(t, hours)
	}
}

func TestNormalizeAvailableHoursSortsWindows(t *testing.T) {
	raw := map[string]any{
		"saturday": []any{"18:00-22:00", "06:00-10:00", "14:00-18:00"},
	}
	hours := NormalizeAvailableHours(raw)
	assert.Equal(t, []models.Window{
		models.WindowEarlyMorning,
		models.WindowAfternoon,
		models.WindowEvening,
	}, hours[models.Saturday])
}

func TestNormalizationIsAFixedPoint(t *testing.T) {
	raw := `{"wednesday":["14:00-18:00","10:00-14:00"],"bogus":["10:00-14:00"]}`

	once := StringifyAvailableHours(ParseAvailableHours(raw))
	twice := StringifyAvailableHours(ParseAvailableHours(once))

	assert.Equal(t, once, twice)
}

func TestParseAvailableHoursLenient(t *testing.T) {
	assert.Empty(t, ParseAvailableHours(""))
	assert.Empty(t, ParseAvailableHours("{invalid json"))
	assert.Empty(t, ParseAvailableHours(`{"monday":["noon-ish"]}`))
}

func TestHasAvailabilityOnDay(t *testing.T) {
	hours := models.AvailableHours{
		models.Tuesday: {models.WindowAfternoon},
	}
	assert.True(t, HasAvailabilityOnDay(hours, models.Tuesday))
	assert.False(t, HasAvailabilityOnDay(hours, models.Monday))
}

func TestAvailableDaysOrder(t *testing.T) {
	hours := models.AvailableHours{
		models.Sunday: {models.WindowEvening},
		models.Monday: {models.WindowEarlyMorning},
		models.Friday: {models.WindowAfternoon},
	}
	assert.Equal(t,
		[]models.DayOfWeek{models.Monday, models.Friday, models.Sunday},
		AvailableDays(hours))
}

func TestWeekdayForDate(t *testing.T) {
	// 2025-06-04 is a Wednesday.
	day, err := WeekdayForDate("2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, models.Wednesday, day)

	_, err = WeekdayForDate("04/06/2025")
	assert.Error(t, err)
}

func TestWindowsForDate(t *testing.T) {
	hours := models.AvailableHours{
		models.Wednesday: {models.WindowLateMorning, models.WindowEvening},
	}

	windows, err := WindowsForDate(hours, "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, []models.Window{models.WindowLateMorning, models.WindowEvening}, windows)

	windows, err = WindowsForDate(hours, "2025-06-05") // Thursday
	require.NoError(t, err)
	assert.Empty(t, windows)
}
