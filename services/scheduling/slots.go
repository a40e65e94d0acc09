package scheduling

import (
	"fmt"
	"strconv"
	"strings"

	"tutoria/models"
)

// HourlySlots expands a 4-hour window into its contiguous 1-hour start
// times, e.g. "14:00-18:00" -> ["14:00","15:00","16:00","17:00"]. Windows
// are fixed and disjoint, so no overlap handling is needed.
func HourlySlots(w models.Window) []string {
	parts := strings.SplitN(string(w), "-", 2)
	if len(parts) != 2 {
		return nil
	}
	startHour, err1 := parseHour(parts[0])
	endHour, err2 := parseHour(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}

	var slots []string
	for h := startHour; h < endHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// BookableSlots derives every bookable start time for a concrete date, in
// window order then intra-window chronological order. Callers display and
// iterate slots in exactly this sequence.
func BookableSlots(hours models.AvailableHours, date string) ([]string, error) {
	windows, err := WindowsForDate(hours, date)
	if err != nil {
		return nil, err
	}
	var slots []string
	for _, w := range windows {
		slots = append(slots, HourlySlots(w)...)
	}
	return slots, nil
}

// FreeSlots is BookableSlots minus the start times already committed for
// the same session and date. The booked set must come from a fresh read of
// persisted bookings; any staleness here is the double-booking race window,
// which the persistence layer converts into a rejected write.
func FreeSlots(hours models.AvailableHours, date string, alreadyBooked []string) ([]string, error) {
	all, err := BookableSlots(hours, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(alreadyBooked))
	for _, t := range alreadyBooked {
		booked[t] = true
	}
	var free []string
	for _, t := range all {
		if !booked[t] {
			free = append(free, t)
		}
	}
	return free, nil
}

// WindowForTime returns the window containing a "15:04" start time, or ""
// when the time falls outside every bookable window.
func WindowForTime(startTime string) models.Window {
	for _, w := range models.AllWindows {
		parts := strings.SplitN(string(w), "-", 2)
		if startTime >= parts[0] && startTime < parts[1] {
			return w
		}
	}
	return ""
}

func parseHour(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	return strconv.Atoi(parts[0])
}
