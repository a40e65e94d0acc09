package models

import "time"

// Favorite is a membership record marking a session as saved by a user.
type Favorite struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
