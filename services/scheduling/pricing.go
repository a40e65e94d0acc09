package scheduling

// TotalPrice computes a booking's price from its duration and the session's
// hourly rate: (durationMinutes / 60) * pricePerHour, rounded half-up to
// the currency's minor unit. Prices are carried as int64 minor units.
//
// The calculator places no bound on duration; validating it against the
// bookable set is the caller's job.
func TotalPrice(durationMinutes int, pricePerHour int64) int64 {
	if durationMinutes <= 0 || pricePerHour <= 0 {
		return 0
	}
	return (int64(durationMinutes)*pricePerHour + 30) / 60
}
