package models

// Window is one of the four fixed 4-hour ranges a tutor can open on a weekday.
type Window string

const (
	WindowEarlyMorning Window = "06:00-10:00"
	WindowLateMorning  Window = "10:00-14:00"
	WindowAfternoon    Window = "14:00-18:00"
	WindowEvening      Window = "18:00-22:00"
)

// AllWindows lists the valid windows in chronological order.
var AllWindows = []Window{
	WindowEarlyMorning,
	WindowLateMorning,
	WindowAfternoon,
	WindowEvening,
}

// DayOfWeek is a lowercase English weekday name, the key format stored in
// a session's available hours document.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// AllDays lists the valid day keys Monday-first.
var AllDays = []DayOfWeek{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// AvailableHours maps a weekday to the windows a tutor keeps open on it.
// A day key is present only when its window list is non-empty; empty days
// are dropped during normalization rather than stored as empty arrays.
type AvailableHours map[DayOfWeek][]Window
