package models

import "time"

// SessionMode indicates how a tutoring session is delivered.
type SessionMode string

const (
	ModePresential SessionMode = "presential"
	ModeOnline     SessionMode = "online"
	ModeBoth       SessionMode = "both"
)

// SessionStatus is the publication state of a tutor's offering.
// Sessions are never hard-deleted; "deleted" is a soft tombstone.
type SessionStatus string

const (
	SessionActive  SessionStatus = "active"
	SessionPaused  SessionStatus = "paused"
	SessionDeleted SessionStatus = "deleted"
)

// TutoringSession is a tutor-authored offering students can book against.
type TutoringSession struct {
	ID              string         `bson:"id" json:"id"`
	TutorID         string         `bson:"tutor_id" json:"tutor_id"`
	Title           string         `bson:"title" json:"title"`
	Description     string         `bson:"description" json:"description"`
	Subject         string         `bson:"subject" json:"subject"`
	CategoryID      string         `bson:"category_id,omitempty" json:"category_id,omitempty"`
	PricePerHour    int64          `bson:"price_per_hour" json:"price_per_hour"` // currency minor units
	DurationMinutes int            `bson:"duration_minutes" json:"duration_minutes"`
	Mode            SessionMode    `bson:"mode" json:"mode"`
	Location        string         `bson:"location,omitempty" json:"location,omitempty"`
	MeetingURL      string         `bson:"meeting_url,omitempty" json:"meeting_url,omitempty"`
	Status          SessionStatus  `bson:"status" json:"status"`
	AvailableHours  AvailableHours `bson:"available_hours" json:"available_hours"`
	Rating          float64        `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount     int            `bson:"review_count,omitempty" json:"review_count,omitempty"`
	CreatedAt       time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `bson:"updated_at" json:"updated_at"`
}

// SessionView is a session decorated with viewer-specific state for display.
type SessionView struct {
	TutoringSession `bson:",inline"`
	IsFavorite      bool `bson:"is_favorite,omitempty" json:"is_favorite"`
}

// SessionFilters narrows session listings.
type SessionFilters struct {
	Subject         string      `form:"subject" json:"subject,omitempty"`
	CategoryID      string      `form:"category_id" json:"category_id,omitempty"`
	Mode            SessionMode `form:"mode" json:"mode,omitempty"`
	MinPrice        *int64      `form:"min_price" json:"min_price,omitempty"`
	MaxPrice        *int64      `form:"max_price" json:"max_price,omitempty"`
	TutorID         string      `form:"tutor_id" json:"tutor_id,omitempty"`
	AvailabilityDay DayOfWeek   `form:"availability_day" json:"availability_day,omitempty"`
	Search          string      `form:"search" json:"search,omitempty"`
}

// CreateSessionRequest is the payload for publishing a new session.
type CreateSessionRequest struct {
	Title           string      `json:"title" binding:"required"`
	Description     string      `json:"description"`
	Subject         string      `json:"subject" binding:"required"`
	CategoryID      string      `json:"category_id"`
	PricePerHour    int64       `json:"price_per_hour" binding:"required,gt=0"`
	DurationMinutes int         `json:"duration_minutes" binding:"required"`
	Mode            SessionMode `json:"mode" binding:"required"`
	Location        string      `json:"location"`
	MeetingURL      string      `json:"meeting_url"`
	AvailableHours  any         `json:"available_hours"` // normalized leniently, never rejected
}

// UpdateSessionRequest carries optional field updates; nil means unchanged.
type UpdateSessionRequest struct {
	Title           *string      `json:"title"`
	Description     *string      `json:"description"`
	Subject         *string      `json:"subject"`
	CategoryID      *string      `json:"category_id"`
	PricePerHour    *int64       `json:"price_per_hour"`
	DurationMinutes *int         `json:"duration_minutes"`
	Mode            *SessionMode `json:"mode"`
	Location        *string      `json:"location"`
	MeetingURL      *string      `json:"meeting_url"`
	AvailableHours  any          `json:"available_hours"`
}
