package scheduling

import "tutoria/models"

// transitions is the single source of truth for the booking state machine:
//
//	pending ──► confirmed ──► in_progress ──► completed
//	   │            │  │
//	   │            │  └─────► no_show
//	   └────────────┴────────► cancelled
//
// completed, cancelled and no_show are terminal. No edge re-enters pending
// or confirmed once left. No transition is permitted by consulting anything
// other than this table.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:    {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingInProgress, models.BookingCancelled, models.BookingNoShow},
	models.BookingInProgress: {models.BookingCompleted},
	models.BookingCompleted:  {},
	models.BookingCancelled:  {},
	models.BookingNoShow:     {},
}

// CanTransition reports whether to is in the fixed successor set of from.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status has no outgoing edges.
func IsTerminal(status models.BookingStatus) bool {
	next, known := transitions[status]
	return known && len(next) == 0
}

// Transitions returns the successor set of status.
func Transitions(status models.BookingStatus) []models.BookingStatus {
	return transitions[status]
}

// Predecessors returns every status that may legally move to target. The
// persistence layer uses this set as the filter of its conditional status
// update, so a concurrent transition loses with a stale-state error instead
// of silently overwriting.
func Predecessors(target models.BookingStatus) []models.BookingStatus {
	var preds []models.BookingStatus
	for _, from := range []models.BookingStatus{
		models.BookingPending, models.BookingConfirmed, models.BookingInProgress,
		models.BookingCompleted, models.BookingCancelled, models.BookingNoShow,
	} {
		if CanTransition(from, target) {
			preds = append(preds, from)
		}
	}
	return preds
}

// TimestampFieldFor names the audit stamp a transition writes: confirming
// stamps confirmed_at, completing stamps completed_at, everything else
// writes no extra stamp. Binding the stamp to the transition keeps audit
// data out of scattered business logic.
func TimestampFieldFor(newStatus models.BookingStatus) string {
	switch newStatus {
	case models.BookingConfirmed:
		return "confirmed_at"
	case models.BookingCompleted:
		return "completed_at"
	default:
		return ""
	}
}
