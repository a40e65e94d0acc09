package models

import "time"

// BookingEventType names the lifecycle moments that produce an outbound
// event. Delivery (push, email) is handled outside this service; we only
// enqueue the event.
type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingConfirmed BookingEventType = "booking.confirmed"
	EventBookingCancelled BookingEventType = "booking.cancelled"
	EventBookingStarted   BookingEventType = "booking.started"
	EventBookingCompleted BookingEventType = "booking.completed"
	EventBookingNoShow    BookingEventType = "booking.no_show"
)

// BookingEvent is the payload queued for the notification worker.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  string           `json:"booking_id"`
	SessionID  string           `json:"session_id"`
	TutorID    string           `json:"tutor_id"`
	StudentID  string           `json:"student_id"`
	Date       string           `json:"date"`
	StartTime  string           `json:"start_time"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// BookingResult is returned to the API layer after a successful mutation so
// it can trigger notification dispatch without the core knowing about it.
type BookingResult struct {
	Booking *TutoringBooking `json:"booking"`
	Event   BookingEvent     `json:"event"`
}
