package booking

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "tutoria/database/repository/booking"
	reviewRepo "tutoria/database/repository/review"
	"tutoria/models"
	"tutoria/services/scheduling"
	"tutoria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitReview records a student's rating of a completed booking. The
// conditional write on the booking document is what makes reviews
// one-per-booking; the policy check only gates on role and status.
func (svc *DefaultBookingService) SubmitReview(actor models.Actor, bookingID string, req models.SubmitReviewRequest) (*models.TutoringBooking, error) {
	logger := utils.GetLogger()

	bk, err := svc.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if actor.Role != models.RoleStudent || actor.ID != bk.StudentID {
		return nil, scheduling.NewError(scheduling.KindUnauthorized,
			"only the booking's student can review it")
	}
	if !scheduling.ActionsFor(actor.Role, bk.Status).Allows(scheduling.ActionReview) {
		return nil, scheduling.NewError(scheduling.KindUnauthorized,
			"booking %s is not reviewable while %s", bookingID, bk.Status)
	}

	updated, err := svc.BookingRepo.SetReview(bookingID, req.Rating, req.Text)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyReviewed) {
			return nil, scheduling.WrapError(scheduling.KindUnauthorized, err,
				"booking %s was already reviewed", bookingID)
		}
		return nil, fmt.Errorf("failed to set review on booking %s: %w", bookingID, err)
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		SessionID: bk.SessionID,
		StudentID: bk.StudentID,
		Rating:    req.Rating,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.ReviewRepo.Create(review); err != nil && !errors.Is(err, reviewRepo.ErrDuplicateReview) {
		// The booking already carries the review; a failed copy into the
		// reviews collection is logged, not surfaced.
		logger.Error("failed to persist review document",
			zap.String("bookingID", bookingID), zap.Error(err))
	}

	if err := svc.SessionRepo.ApplyReview(bk.SessionID, req.Rating); err != nil {
		logger.Error("failed to fold rating into session average",
			zap.String("sessionID", bk.SessionID), zap.Error(err))
	}

	logger.Info("review submitted",
		zap.String("bookingID", bookingID),
		zap.Int("rating", req.Rating))

	return updated, nil
}
