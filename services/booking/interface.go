package booking

import (
	bookingRepo "tutoria/database/repository/booking"
	reviewRepo "tutoria/database/repository/review"
	sessionRepo "tutoria/database/repository/session"
	"tutoria/models"
)

// BookingService manages the full lifecycle of tutoring bookings: slot
// reservation, status transitions, and post-completion reviews.
type BookingService interface {
	// Create reserves a slot on a session for the acting student.
	Create(actor models.Actor, req models.CreateBookingRequest) (*models.BookingResult, error)

	// Transition operations. Each validates the actor's role permission and
	// the state machine before mutating, and mutates conditionally on the
	// status it observed.
	Confirm(actor models.Actor, bookingID string) (*models.BookingResult, error)
	Reject(actor models.Actor, bookingID string) (*models.BookingResult, error)
	Cancel(actor models.Actor, bookingID string) (*models.BookingResult, error)
	Start(actor models.Actor, bookingID string) (*models.BookingResult, error)
	Complete(actor models.Actor, bookingID string) (*models.BookingResult, error)
	MarkNoShow(actor models.Actor, bookingID string) (*models.BookingResult, error)

	// SubmitReview records the student's one-time review of a completed
	// booking and folds the rating into the session's running average.
	SubmitReview(actor models.Actor, bookingID string, req models.SubmitReviewRequest) (*models.TutoringBooking, error)

	// Get returns a booking visible to the acting party.
	Get(actor models.Actor, bookingID string) (*models.TutoringBooking, error)

	// List returns the actor's bookings, as tutor or student per their role.
	List(actor models.Actor, filters models.BookingFilters) ([]models.TutoringBooking, error)

	// FreeSlotsForDate returns the session's bookable hourly start times on
	// the given date with already-taken slots removed.
	FreeSlotsForDate(sessionID, date string) ([]string, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	SessionRepo sessionRepo.SessionRepository
	BookingRepo bookingRepo.BookingRepository
	ReviewRepo  reviewRepo.ReviewRepository
}
