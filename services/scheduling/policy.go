package scheduling

import "tutoria/models"

// Action is a booking operation an actor can request.
type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionReject     Action = "reject"
	ActionCancel     Action = "cancel"
	ActionStart      Action = "start"
	ActionComplete   Action = "complete"
	ActionMarkNoShow Action = "mark_no_show"
	ActionReview     Action = "review"
)

// Actions is the set of booking operations open to one actor at one status.
type Actions struct {
	CanConfirm    bool `json:"canConfirm"`
	CanReject     bool `json:"canReject"`
	CanCancel     bool `json:"canCancel"`
	CanStart      bool `json:"canStart"`
	CanComplete   bool `json:"canComplete"`
	CanMarkNoShow bool `json:"canMarkNoShow"`
	CanReview     bool `json:"canReview"`
}

// Allows reports whether a specific action is in the set.
func (a Actions) Allows(action Action) bool {
	switch action {
	case ActionConfirm:
		return a.CanConfirm
	case ActionReject:
		return a.CanReject
	case ActionCancel:
		return a.CanCancel
	case ActionStart:
		return a.CanStart
	case ActionComplete:
		return a.CanComplete
	case ActionMarkNoShow:
		return a.CanMarkNoShow
	case ActionReview:
		return a.CanReview
	default:
		return false
	}
}

// ActionsFor is the pure role/status permission map. It is deliberately
// separate from the state machine: a transition can be legal for the
// booking yet forbidden to the calling actor, and both checks must pass
// before any mutation.
//
// The tutor runs the session, so confirm/reject/start/complete/no-show are
// tutor prerogatives. Students may cancel early-lifecycle bookings and
// review completed ones; "only once" for reviews is enforced by the
// persistence layer, not here.
func ActionsFor(role models.Role, status models.BookingStatus) Actions {
	switch role {
	case models.RoleTutor:
		return Actions{
			CanConfirm:    status == models.BookingPending,
			CanReject:     status == models.BookingPending,
			CanCancel:     status == models.BookingPending || status == models.BookingConfirmed,
			CanStart:      status == models.BookingConfirmed,
			CanComplete:   status == models.BookingInProgress,
			CanMarkNoShow: status == models.BookingConfirmed,
		}
	case models.RoleStudent:
		return Actions{
			CanCancel: status == models.BookingPending || status == models.BookingConfirmed,
			CanReview: status == models.BookingCompleted,
		}
	default:
		return Actions{}
	}
}
