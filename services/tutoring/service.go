package tutoring

import (
	"fmt"
	"time"

	"tutoria/models"
	"tutoria/services/scheduling"
	"tutoria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create publishes a new session for the acting tutor.
func (svc *DefaultSessionService) Create(actor models.Actor, req models.CreateSessionRequest) (*models.TutoringSession, error) {
	if actor.Role != models.RoleTutor {
		return nil, scheduling.NewError(scheduling.KindUnauthorized, "only tutors can publish sessions")
	}

	now := time.Now().UTC()
	session := &models.TutoringSession{
		ID:              uuid.New().String(),
		TutorID:         actor.ID,
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		CategoryID:      req.CategoryID,
		PricePerHour:    req.PricePerHour,
		DurationMinutes: req.DurationMinutes,
		Mode:            req.Mode,
		Location:        req.Location,
		MeetingURL:      req.MeetingURL,
		Status:          models.SessionActive,
		AvailableHours:  scheduling.NormalizeAvailableHours(req.AvailableHours),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := svc.SessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	utils.GetLogger().Info("session published",
		zap.String("sessionID", session.ID),
		zap.String("tutorID", session.TutorID),
		zap.String("subject", session.Subject))

	return session, nil
}

// Update applies partial changes to a session the actor owns.
func (svc *DefaultSessionService) Update(actor models.Actor, sessionID string, req models.UpdateSessionRequest) (*models.TutoringSession, error) {
	session, err := svc.SessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if session.TutorID != actor.ID || actor.Role != models.RoleTutor {
		return nil, scheduling.NewError(scheduling.KindUnauthorized,
			"actor %s does not own session %s", actor.ID, sessionID)
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.Subject != nil {
		session.Subject = *req.Subject
	}
	if req.CategoryID != nil {
		session.CategoryID = *req.CategoryID
	}
	if req.PricePerHour != nil {
		session.PricePerHour = *req.PricePerHour
	}
	if req.DurationMinutes != nil {
		session.DurationMinutes = *req.DurationMinutes
	}
	if req.Mode != nil {
		session.Mode = *req.Mode
	}
	if req.Location != nil {
		session.Location = *req.Location
	}
	if req.MeetingURL != nil {
		session.MeetingURL = *req.MeetingURL
	}
	if req.AvailableHours != nil {
		session.AvailableHours = scheduling.NormalizeAvailableHours(req.AvailableHours)
	}
	session.UpdatedAt = time.Now().UTC()

	if err := svc.SessionRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to update session %s: %w", sessionID, err)
	}
	return session, nil
}

// Pause takes an active session off the marketplace without touching its
// bookings.
func (svc *DefaultSessionService) Pause(actor models.Actor, sessionID string) error {
	return svc.setStatus(actor, sessionID, models.SessionPaused)
}

// Activate republishes a paused session.
func (svc *DefaultSessionService) Activate(actor models.Actor, sessionID string) error {
	return svc.setStatus(actor, sessionID, models.SessionActive)
}

// Delete soft-deletes the session.
func (svc *DefaultSessionService) Delete(actor models.Actor, sessionID string) error {
	return svc.setStatus(actor, sessionID, models.SessionDeleted)
}

func (svc *DefaultSessionService) setStatus(actor models.Actor, sessionID string, status models.SessionStatus) error {
	if actor.Role != models.RoleTutor {
		return scheduling.NewError(scheduling.KindUnauthorized, "only tutors can manage sessions")
	}
	// The owner check rides on the repository filter: a mismatched tutor ID
	// matches nothing.
	if err := svc.SessionRepo.SetStatus(sessionID, actor.ID, status); err != nil {
		return fmt.Errorf("failed to set session %s status to %s: %w", sessionID, status, err)
	}
	utils.GetLogger().Info("session status changed",
		zap.String("sessionID", sessionID),
		zap.String("status", string(status)))
	return nil
}

// Get returns one session decorated with the viewer's favorite flag.
func (svc *DefaultSessionService) Get(sessionID, viewerID string) (*models.SessionView, error) {
	session, err := svc.SessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	view := &models.SessionView{TutoringSession: *session}
	if viewerID != "" {
		fav, err := svc.FavoriteRepo.Exists(viewerID, sessionID)
		if err != nil {
			utils.GetLogger().Warn("failed to resolve favorite flag",
				zap.String("sessionID", sessionID), zap.Error(err))
		} else {
			view.IsFavorite = fav
		}
	}
	return view, nil
}

// List returns active sessions matching the filters, decorated per viewer.
func (svc *DefaultSessionService) List(filters models.SessionFilters, viewerID string) ([]models.SessionView, error) {
	sessions, err := svc.SessionRepo.List(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	favorites := map[string]bool{}
	if viewerID != "" {
		ids, err := svc.FavoriteRepo.ListSessionIDs(viewerID)
		if err != nil {
			utils.GetLogger().Warn("failed to load viewer favorites",
				zap.String("viewerID", viewerID), zap.Error(err))
		}
		for _, id := range ids {
			favorites[id] = true
		}
	}

	views := make([]models.SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, models.SessionView{
			TutoringSession: s,
			IsFavorite:      favorites[s.ID],
		})
	}
	return views, nil
}

// ListMine returns all of the tutor's sessions regardless of status.
func (svc *DefaultSessionService) ListMine(actor models.Actor) ([]models.TutoringSession, error) {
	if actor.Role != models.RoleTutor {
		return nil, scheduling.NewError(scheduling.KindUnauthorized, "only tutors have owned sessions")
	}
	return svc.SessionRepo.ListByTutor(actor.ID)
}

// Reviews returns the session's reviews, newest first.
func (svc *DefaultSessionService) Reviews(sessionID string) ([]models.Review, error) {
	return svc.ReviewRepo.ListBySession(sessionID)
}
