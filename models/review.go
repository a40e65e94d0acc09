package models

import "time"

// Review is a student's one-time rating of a completed booking. A unique
// index on booking_id keeps it one-per-booking; the action policy only
// checks that the booking is completed.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	StudentID string    `bson:"student_id" json:"student_id"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SubmitReviewRequest is the payload for reviewing a completed booking.
type SubmitReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text"`
}
