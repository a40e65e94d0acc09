package models

import "time"

// BookingStatus is a booking's position in its lifecycle. The legal moves
// between statuses live in services/scheduling; nothing else decides them.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
)

// TutoringBooking is a single scheduled occurrence between a student and a
// tutor. At most one booking may occupy a (session, date, start time) triple
// while in any status other than cancelled; the bookings collection carries
// a unique partial index enforcing that.
type TutoringBooking struct {
	ID              string        `bson:"id" json:"id"`
	SessionID       string        `bson:"session_id" json:"session_id"`
	TutorID         string        `bson:"tutor_id" json:"tutor_id"`
	StudentID       string        `bson:"student_id" json:"student_id"`
	Date            string        `bson:"date" json:"date"`             // "2006-01-02", local calendar date
	StartTime       string        `bson:"start_time" json:"start_time"` // "15:04"
	DurationMinutes int           `bson:"duration_minutes" json:"duration_minutes"`
	TotalPrice      int64         `bson:"total_price" json:"total_price"` // currency minor units
	Status          BookingStatus `bson:"status" json:"status"`
	Notes           string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Rating          *int          `bson:"rating,omitempty" json:"rating,omitempty"`
	Review          string        `bson:"review,omitempty" json:"review,omitempty"`
	ConfirmedAt     *time.Time    `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// CreateBookingRequest is the payload a student submits to reserve a slot.
type CreateBookingRequest struct {
	SessionID       string `json:"session_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Notes           string `json:"notes"`
}

// BookingFilters narrows booking listings for either party.
type BookingFilters struct {
	Status   []BookingStatus `form:"status" json:"status,omitempty"`
	FromDate string          `form:"from_date" json:"from_date,omitempty"`
	ToDate   string          `form:"to_date" json:"to_date,omitempty"`
}

// ValidDurations is the closed set of bookable session lengths in minutes.
var ValidDurations = []int{30, 60, 90, 120}

// IsValidDuration reports whether d is one of the bookable lengths.
func IsValidDuration(d int) bool {
	for _, v := range ValidDurations {
		if v == d {
			return true
		}
	}
	return false
}
