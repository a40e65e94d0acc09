package sessionRepo

import "tutoria/models"

// SessionRepository persists tutoring sessions.
type SessionRepository interface {
	Create(session *models.TutoringSession) error
	GetByID(id string) (*models.TutoringSession, error)
	Update(session *models.TutoringSession) error
	// SetStatus flips the publication status; only the owning tutor's id
	// matches. Returns mongo.ErrNoDocuments when no session matched.
	SetStatus(id, tutorID string, status models.SessionStatus) error
	// List returns active sessions matching the filters, newest first.
	List(filters models.SessionFilters) ([]models.TutoringSession, error)
	// ListByTutor returns every non-deleted session a tutor owns.
	ListByTutor(tutorID string) ([]models.TutoringSession, error)
	// ApplyReview folds a new rating into the session's aggregates.
	ApplyReview(id string, rating int) error
	EnsureIndexes() error
}
