package booking

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "tutoria/database/repository/booking"
	"tutoria/models"
	"tutoria/services/scheduling"
	"tutoria/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Create reserves a slot. The free-slot check is a courtesy read; the real
// guarantee against double booking is the unique partial index on
// (session_id, date, start_time), which turns a lost race into ErrSlotTaken.
func (svc *DefaultBookingService) Create(actor models.Actor, req models.CreateBookingRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	if actor.Role != models.RoleStudent {
		return nil, scheduling.NewError(scheduling.KindUnauthorized, "only students can book sessions")
	}
	if !models.IsValidDuration(req.DurationMinutes) {
		return nil, scheduling.NewError(scheduling.KindSlotUnavailable,
			"duration %d is not bookable, valid durations are %v", req.DurationMinutes, models.ValidDurations)
	}

	session, err := svc.SessionRepo.GetByID(req.SessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("session %s not found: %w", req.SessionID, err)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", req.SessionID, err)
	}
	if session.Status != models.SessionActive {
		return nil, scheduling.NewError(scheduling.KindSlotUnavailable,
			"session %s is not accepting bookings", session.ID)
	}
	if session.TutorID == actor.ID {
		return nil, scheduling.NewError(scheduling.KindUnauthorized, "tutors cannot book their own sessions")
	}

	booked, err := svc.BookingRepo.BookedStartTimes(session.ID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	free, err := scheduling.FreeSlots(session.AvailableHours, req.Date, booked)
	if err != nil {
		return nil, scheduling.WrapError(scheduling.KindSlotUnavailable, err,
			"invalid booking date %q", req.Date)
	}
	if !containsSlot(free, req.StartTime) {
		return nil, scheduling.NewError(scheduling.KindSlotUnavailable,
			"slot %s on %s is not available", req.StartTime, req.Date)
	}

	now := time.Now().UTC()
	bk := &models.TutoringBooking{
		ID:              uuid.New().String(),
		SessionID:       session.ID,
		TutorID:         session.TutorID,
		StudentID:       actor.ID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		TotalPrice:      scheduling.TotalPrice(req.DurationMinutes, session.PricePerHour),
		Status:          models.BookingPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := svc.BookingRepo.Create(bk); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			logger.Info("booking lost slot race",
				zap.String("sessionID", session.ID),
				zap.String("date", req.Date),
				zap.String("startTime", req.StartTime))
			return nil, scheduling.WrapError(scheduling.KindSlotConflict, err,
				"slot %s on %s was just taken", req.StartTime, req.Date)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("booking created",
		zap.String("bookingID", bk.ID),
		zap.String("sessionID", bk.SessionID),
		zap.String("studentID", bk.StudentID))

	return &models.BookingResult{
		Booking: bk,
		Event:   eventFor(models.EventBookingCreated, bk),
	}, nil
}

// Get returns the booking if the actor is one of its parties.
func (svc *DefaultBookingService) Get(actor models.Actor, bookingID string) (*models.TutoringBooking, error) {
	bk, err := svc.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !isParty(actor, bk) {
		return nil, scheduling.NewError(scheduling.KindUnauthorized,
			"actor %s is not a party to booking %s", actor.ID, bookingID)
	}
	return bk, nil
}

// List returns bookings for the actor's side of the relationship.
func (svc *DefaultBookingService) List(actor models.Actor, filters models.BookingFilters) ([]models.TutoringBooking, error) {
	switch actor.Role {
	case models.RoleTutor:
		return svc.BookingRepo.ListForTutor(actor.ID, filters)
	case models.RoleStudent:
		return svc.BookingRepo.ListForStudent(actor.ID, filters)
	default:
		return nil, scheduling.NewError(scheduling.KindUnauthorized, "unknown role %q", actor.Role)
	}
}

// FreeSlotsForDate resolves the session's open hourly start times for a date.
func (svc *DefaultBookingService) FreeSlotsForDate(sessionID, date string) ([]string, error) {
	session, err := svc.SessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if session.Status != models.SessionActive {
		return []string{}, nil
	}
	booked, err := svc.BookingRepo.BookedStartTimes(sessionID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	return scheduling.FreeSlots(session.AvailableHours, date, booked)
}

func isParty(actor models.Actor, bk *models.TutoringBooking) bool {
	switch actor.Role {
	case models.RoleTutor:
		return actor.ID == bk.TutorID
	case models.RoleStudent:
		return actor.ID == bk.StudentID
	default:
		return false
	}
}

func containsSlot(slots []string, start string) bool {
	for _, s := range slots {
		if s == start {
			return true
		}
	}
	return false
}

func eventFor(eventType models.BookingEventType, bk *models.TutoringBooking) models.BookingEvent {
	return models.BookingEvent{
		Type:       eventType,
		BookingID:  bk.ID,
		SessionID:  bk.SessionID,
		TutorID:    bk.TutorID,
		StudentID:  bk.StudentID,
		Date:       bk.Date,
		StartTime:  bk.StartTime,
		OccurredAt: time.Now().UTC(),
	}
}
