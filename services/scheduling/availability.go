package scheduling

import (
	"encoding/json"
	"sort"
	"time"

	"tutoria/models"
)

// NormalizeAvailableHours reduces an arbitrary decoded value to a
// well-formed AvailableHours. Unknown day keys and unknown window literals
// are dropped, window lists are sorted chronologically and deduplicated, and
// a day key survives only if it keeps at least one valid window. Malformed
// input degrades to empty availability; it is never an error, so the tutor
// editor can always save.
func NormalizeAvailableHours(raw any) models.AvailableHours {
	result := models.AvailableHours{}
	if raw == nil {
		return result
	}

	switch v := raw.(type) {
	case models.AvailableHours:
		for day, windows := range v {
			if !isValidDay(day) {
				continue
			}
			if clean := cleanWindows(toAnySlice(windows)); len(clean) > 0 {
				result[day] = clean
			}
		}
	case map[models.DayOfWeek][]models.Window:
		return NormalizeAvailableHours(models.AvailableHours(v))
	case map[string]any:
		for key, value := range v {
			day := models.DayOfWeek(key)
			if !isValidDay(day) {
				continue
			}
			list, ok := value.([]any)
			if !ok {
				continue
			}
			if clean := cleanWindows(list); len(clean) > 0 {
				result[day] = clean
			}
		}
	}
	return result
}

// ParseAvailableHours decodes the stored JSON representation, normalizing
// as it goes. An empty or undecodable document yields empty availability.
func ParseAvailableHours(jsonStr string) models.AvailableHours {
	if jsonStr == "" {
		return models.AvailableHours{}
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return models.AvailableHours{}
	}
	return NormalizeAvailableHours(raw)
}

// StringifyAvailableHours serializes normalized hours for storage.
// Normalization is a fixed point: stringify∘parse applied twice yields the
// same document both times.
func StringifyAvailableHours(hours models.AvailableHours) string {
	b, err := json.Marshal(hours)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// HasAvailabilityOnDay reports whether the tutor opened any window on day.
func HasAvailabilityOnDay(hours models.AvailableHours, day models.DayOfWeek) bool {
	return len(hours[day]) > 0
}

// AvailableDays returns the days with at least one open window, in
// Monday-first order.
func AvailableDays(hours models.AvailableHours) []models.DayOfWeek {
	var days []models.DayOfWeek
	for _, day := range models.AllDays {
		if HasAvailabilityOnDay(hours, day) {
			days = append(days, day)
		}
	}
	return days
}

// WeekdayForDate maps a "2006-01-02" local calendar date to its day key.
// No timezone conversion is applied: the date names a wall-calendar day.
func WeekdayForDate(date string) (models.DayOfWeek, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	switch t.Weekday() {
	case time.Monday:
		return models.Monday, nil
	case time.Tuesday:
		return models.Tuesday, nil
	case time.Wednesday:
		return models.Wednesday, nil
	case time.Thursday:
		return models.Thursday, nil
	case time.Friday:
		return models.Friday, nil
	case time.Saturday:
		return models.Saturday, nil
	default:
		return models.Sunday, nil
	}
}

// WindowsForDate returns the open windows for a concrete calendar date in
// chronological order.
func WindowsForDate(hours models.AvailableHours, date string) ([]models.Window, error) {
	day, err := WeekdayForDate(date)
	if err != nil {
		return nil, err
	}
	return hours[day], nil
}

func isValidDay(day models.DayOfWeek) bool {
	for _, d := range models.AllDays {
		if d == day {
			return true
		}
	}
	return false
}

func isValidWindow(w models.Window) bool {
	for _, valid := range models.AllWindows {
		if valid == w {
			return true
		}
	}
	return false
}

// cleanWindows keeps only valid window literals, sorted and deduplicated.
func cleanWindows(list []any) []models.Window {
	seen := make(map[models.Window]bool, len(list))
	var clean []models.Window
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			if w, isWindow := item.(models.Window); isWindow {
				s = string(w)
			} else {
				continue
			}
		}
		w := models.Window(s)
		if isValidWindow(w) && !seen[w] {
			seen[w] = true
			clean = append(clean, w)
		}
	}
	sort.Slice(clean, func(i, j int) bool { return clean[i] < clean[j] })
	return clean
}

func toAnySlice(windows []models.Window) []any {
	out := make([]any, len(windows))
	for i, w := range windows {
		out[i] = w
	}
	return out
}
