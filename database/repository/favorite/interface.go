package favoriteRepo

import (
	"errors"

	"tutoria/models"
)

// ErrAlreadyFavorite is returned when adding a favorite that already exists.
var ErrAlreadyFavorite = errors.New("session already favorited")

// ErrNotFavorite is returned when removing a favorite that does not exist.
var ErrNotFavorite = errors.New("session is not favorited")

// FavoriteRepository defines persistence operations for user favorites.
type FavoriteRepository interface {
	// Add records a favorite for the given user and session.
	Add(favorite *models.Favorite) error

	// Remove deletes the favorite for the given user and session.
	Remove(userID, sessionID string) error

	// Exists reports whether the user has favorited the session.
	Exists(userID, sessionID string) (bool, error)

	// ListSessionIDs returns the session IDs the user has favorited,
	// most recent first.
	ListSessionIDs(userID string) ([]string, error)

	// EnsureIndexes creates the necessary indexes for the favorites collection.
	EnsureIndexes() error
}
