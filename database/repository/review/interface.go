package reviewRepo

import (
	"errors"

	"tutoria/models"
)

// ErrDuplicateReview is returned by Create when the booking already has a
// review row; the unique index on booking_id is the enforcement point for
// one-review-per-booking.
var ErrDuplicateReview = errors.New("booking already reviewed")

// ReviewRepository persists per-session review rows for listing.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListBySession(sessionID string) ([]models.Review, error)
	EnsureIndexes() error
}
