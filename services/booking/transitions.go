package booking

import (
	"errors"
	"fmt"

	bookingRepo "tutoria/database/repository/booking"
	"tutoria/models"
	"tutoria/services/scheduling"
	"tutoria/utils"

	"go.uber.org/zap"
)

// Confirm moves a pending booking to confirmed. Tutor only.
func (svc *DefaultBookingService) Confirm(actor models.Actor, bookingID string) (*models.BookingResult, error) {
	return svc.transition(actor, bookingID, scheduling.ActionConfirm, models.BookingConfirmed, models.EventBookingConfirmed)
}

// Reject declines a pending booking. It lands on cancelled rather than a
// distinct status so the slot frees up the same way a cancellation does.
func (svc *DefaultBookingService) Reject(actor models.Actor, bookingID string) (*models.BookingResult, error) {
	return svc.transition(actor, bookingID, scheduling.ActionReject, models.BookingCancelled, models.EventBookingCancelled)
}

// Cancel withdraws a pending or confirmed booking. Either party.
func (svc *DefaultBookingService) Cancel(actor models.Actor, bookingID string) (*models.BookingResult, error) {
	return svc.transition(actor, bookingID, scheduling.ActionCancel, models.BookingCancelled, models.EventBookingCancelled)
}

// Start marks a confirmed booking as underway. Tutor only.
func (svc *DefaultBookingService) Start(actor models.Actor, bookingID string) (*models.BookingResult, error) {
	return svc.transition(actor, bookingID, scheduling.ActionStart, models.BookingInProgress, models.EventBookingStarted)
}

// Complete closes out an in-progress booking. Tutor only.
func (svc *DefaultBookingService) Complete(actor models.Actor, bookingID string) (*models.BookingResult, error) {
	return svc.transition(actor, bookingID, scheduling.ActionComplete, models.BookingCompleted, models.EventBookingCompleted)
}

// MarkNoShow records that a confirmed booking's student never appeared.
func (svc *DefaultBookingService) MarkNoShow(actor models.Actor, bookingID string) (*models.BookingResult, error) {
	return svc.transition(actor, bookingID, scheduling.ActionMarkNoShow, models.BookingNoShow, models.EventBookingNoShow)
}

// transition applies one lifecycle move. Authorization and state-machine
// checks run against a fresh read, then the write is conditioned on the
// status we observed: if another writer moved the booking in between, the
// repository reports ErrStaleStatus and we surface an invalid transition
// instead of retrying against the new state.
func (svc *DefaultBookingService) transition(
	actor models.Actor,
	bookingID string,
	action scheduling.Action,
	to models.BookingStatus,
	eventType models.BookingEventType,
) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	bk, err := svc.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if !isParty(actor, bk) {
		return nil, scheduling.NewError(scheduling.KindUnauthorized,
			"actor %s is not a party to booking %s", actor.ID, bookingID)
	}
	if !scheduling.ActionsFor(actor.Role, bk.Status).Allows(action) {
		return nil, scheduling.NewError(scheduling.KindUnauthorized,
			"%s may not %s a %s booking", actor.Role, action, bk.Status)
	}
	if !scheduling.CanTransition(bk.Status, to) {
		return nil, scheduling.NewError(scheduling.KindInvalidTransition,
			"booking %s cannot move from %s to %s", bookingID, bk.Status, to)
	}

	updated, err := svc.BookingRepo.UpdateStatusIf(
		bookingID,
		[]models.BookingStatus{bk.Status},
		to,
		scheduling.TimestampFieldFor(to),
	)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			logger.Info("booking transition lost race",
				zap.String("bookingID", bookingID),
				zap.String("observed", string(bk.Status)),
				zap.String("target", string(to)))
			return nil, scheduling.WrapError(scheduling.KindInvalidTransition, err,
				"booking %s changed concurrently", bookingID)
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}

	logger.Info("booking transitioned",
		zap.String("bookingID", bookingID),
		zap.String("from", string(bk.Status)),
		zap.String("to", string(to)),
		zap.String("actorRole", string(actor.Role)))

	return &models.BookingResult{
		Booking: updated,
		Event:   eventFor(eventType, updated),
	}, nil
}
