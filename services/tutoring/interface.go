package tutoring

import (
	favoriteRepo "tutoria/database/repository/favorite"
	reviewRepo "tutoria/database/repository/review"
	sessionRepo "tutoria/database/repository/session"
	"tutoria/models"
)

// SessionService manages tutor-authored session offerings.
type SessionService interface {
	// Create publishes a new session owned by the acting tutor. Availability
	// hours are normalized leniently; malformed entries are dropped.
	Create(actor models.Actor, req models.CreateSessionRequest) (*models.TutoringSession, error)

	// Update applies partial changes to a session the actor owns.
	Update(actor models.Actor, sessionID string, req models.UpdateSessionRequest) (*models.TutoringSession, error)

	// Pause, Activate and Delete flip the session's publication status.
	// Delete is a soft tombstone; the document stays for booking history.
	Pause(actor models.Actor, sessionID string) error
	Activate(actor models.Actor, sessionID string) error
	Delete(actor models.Actor, sessionID string) error

	// Get returns one session, decorated with the viewer's favorite flag
	// when viewerID is non-empty.
	Get(sessionID, viewerID string) (*models.SessionView, error)

	// List returns active sessions matching the filters, decorated per
	// viewer.
	List(filters models.SessionFilters, viewerID string) ([]models.SessionView, error)

	// ListMine returns all of the acting tutor's sessions regardless of
	// status.
	ListMine(actor models.Actor) ([]models.TutoringSession, error)

	// Reviews returns the session's reviews, newest first.
	Reviews(sessionID string) ([]models.Review, error)
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	SessionRepo  sessionRepo.SessionRepository
	ReviewRepo   reviewRepo.ReviewRepository
	FavoriteRepo favoriteRepo.FavoriteRepository
}
