package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"tutoria/models"
	"tutoria/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeBookingEvent is the asynq task type for booking lifecycle events.
const TypeBookingEvent = "booking:event"

// NotificationService queues booking events for asynchronous delivery.
// Actual delivery (push, email) happens outside this service; the worker in
// cron/ drains the queue and hands events to a Dispatcher.
type NotificationService interface {
	EnqueueBookingEvent(ctx context.Context, event models.BookingEvent) error
}

// Dispatcher is the delivery hook the worker invokes per event.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.BookingEvent) error
}

// DefaultNotificationService enqueues events onto the asynq queue.
type DefaultNotificationService struct {
	client *asynq.Client
}

// NewDefaultNotificationService constructs the queue-backed implementation.
func NewDefaultNotificationService(client *asynq.Client) (*DefaultNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	return &DefaultNotificationService{client: client}, nil
}

// EnqueueBookingEvent serializes the event and places it on the queue.
// Enqueue failures are returned to the caller but must never abort the
// booking mutation that produced the event; callers log and move on.
func (s *DefaultNotificationService) EnqueueBookingEvent(ctx context.Context, event models.BookingEvent) error {
	task, err := NewBookingEventTask(event)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue booking event %s: %w", event.Type, err)
	}
	utils.GetLogger().Debug("booking event enqueued",
		zap.String("taskID", info.ID),
		zap.String("type", string(event.Type)),
		zap.String("bookingID", event.BookingID))
	return nil
}

// NewBookingEventTask builds the asynq task for a booking event.
func NewBookingEventTask(event models.BookingEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking event: %w", err)
	}
	return asynq.NewTask(TypeBookingEvent, b, asynq.MaxRetry(3)), nil
}

// LogDispatcher is the fallback Dispatcher used when no external delivery
// channel is configured. It records the event and succeeds.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, event models.BookingEvent) error {
	utils.GetLogger().Info("booking event",
		zap.String("type", string(event.Type)),
		zap.String("bookingID", event.BookingID),
		zap.String("sessionID", event.SessionID),
		zap.String("tutorID", event.TutorID),
		zap.String("studentID", event.StudentID),
		zap.String("date", event.Date),
		zap.String("startTime", event.StartTime))
	return nil
}
