package bookingRepo

import (
	"errors"

	"tutoria/models"
)

// ErrSlotTaken is returned by Create when the unique (session, date,
// start time) constraint rejects the insert: a concurrent writer claimed
// the slot between the caller's availability read and this write.
var ErrSlotTaken = errors.New("slot already booked for this session and date")

// ErrStaleStatus is returned by UpdateStatusIf when no booking matched the
// expected prior statuses: the booking moved on under a concurrent
// transition (or never existed).
var ErrStaleStatus = errors.New("booking status changed concurrently")

// ErrAlreadyReviewed is returned by SetReview when the booking already
// carries a review or is not completed.
var ErrAlreadyReviewed = errors.New("booking already reviewed or not completed")

// BookingRepository persists tutoring bookings. Both write paths are
// guarded at the database: inserts by the unique partial slot index,
// status changes by a conditional update.
type BookingRepository interface {
	// Create inserts a new booking; a duplicate-key rejection surfaces as
	// ErrSlotTaken.
	Create(booking *models.TutoringBooking) error
	GetByID(id string) (*models.TutoringBooking, error)
	// BookedStartTimes returns the start times of every booking occupying
	// the session on the given date (any status except cancelled), read
	// fresh from committed data.
	BookedStartTimes(sessionID, date string) ([]string, error)
	// UpdateStatusIf moves the booking to a new status only if its current
	// status is one of from; stampField ("confirmed_at"/"completed_at"/"")
	// is written alongside. Returns the updated booking, or ErrStaleStatus
	// when nothing matched.
	UpdateStatusIf(id string, from []models.BookingStatus, to models.BookingStatus, stampField string) (*models.TutoringBooking, error)
	// SetReview attaches a one-time rating to a completed, unreviewed
	// booking; otherwise ErrAlreadyReviewed.
	SetReview(id string, rating int, text string) (*models.TutoringBooking, error)
	ListForTutor(tutorID string, filters models.BookingFilters) ([]models.TutoringBooking, error)
	ListForStudent(studentID string, filters models.BookingFilters) ([]models.TutoringBooking, error)
	EnsureIndexes() error
}
