package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	favoriteRepo "tutoria/database/repository/favorite"
	"tutoria/models"
	"tutoria/services/scheduling"
	"tutoria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteService exposes the favorite toggle and lookups.
type FavoriteService interface {
	// Toggle flips the user's favorite for a session and returns the new
	// state. Cached views are updated optimistically before the write and
	// rolled back if the write fails.
	Toggle(ctx context.Context, userID, sessionID string) (bool, error)

	// ListSessionIDs returns the user's favorited session IDs, newest first.
	ListSessionIDs(userID string) ([]string, error)
}

// Coordinator implements FavoriteService over a repository and a view cache.
type Coordinator struct {
	Repo  favoriteRepo.FavoriteRepository
	Views ViewStore
}

// Toggle flips the favorite. The sequence is snapshot, optimistic flip,
// persist, then settle: on persistence failure the snapshot is restored and
// a toggleReconciliationFailure surfaces; on success the cached view is
// invalidated so the next read reflects the source of truth.
func (c *Coordinator) Toggle(ctx context.Context, userID, sessionID string) (bool, error) {
	logger := utils.GetLogger()

	current, err := c.Repo.Exists(userID, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to read favorite state: %w", err)
	}
	target := !current

	snapshot, hadSnapshot, err := c.Views.Snapshot(ctx, userID, sessionID)
	if err != nil {
		// Cache trouble never blocks the toggle.
		logger.Warn("favorite snapshot failed",
			zap.String("userID", userID), zap.String("sessionID", sessionID), zap.Error(err))
		hadSnapshot = false
	}

	if err := c.Views.MarkFavorite(ctx, userID, sessionID, target); err != nil {
		logger.Warn("optimistic favorite flip failed",
			zap.String("userID", userID), zap.String("sessionID", sessionID), zap.Error(err))
	}

	if err := c.persist(userID, sessionID, target); err != nil {
		c.rollback(ctx, userID, sessionID, snapshot, hadSnapshot)
		return current, scheduling.WrapError(scheduling.KindToggleReconciliation, err,
			"favorite toggle for session %s did not persist", sessionID)
	}

	if err := c.Views.Invalidate(ctx, userID, sessionID); err != nil {
		logger.Warn("favorite view invalidation failed",
			zap.String("userID", userID), zap.String("sessionID", sessionID), zap.Error(err))
	}
	return target, nil
}

// persist applies the desired end state. Concurrent toggles collapse: an
// add that hits an existing row, or a remove of a missing row, means
// another writer already produced the state we wanted.
func (c *Coordinator) persist(userID, sessionID string, favorite bool) error {
	if favorite {
		err := c.Repo.Add(&models.Favorite{
			ID:        uuid.New().String(),
			UserID:    userID,
			SessionID: sessionID,
			CreatedAt: time.Now().UTC(),
		})
		if errors.Is(err, favoriteRepo.ErrAlreadyFavorite) {
			return nil
		}
		return err
	}
	err := c.Repo.Remove(userID, sessionID)
	if errors.Is(err, favoriteRepo.ErrNotFavorite) {
		return nil
	}
	return err
}

func (c *Coordinator) rollback(ctx context.Context, userID, sessionID string, snapshot *models.SessionView, hadSnapshot bool) {
	logger := utils.GetLogger()
	if hadSnapshot {
		if err := c.Views.Restore(ctx, userID, snapshot); err != nil {
			logger.Error("favorite rollback restore failed",
				zap.String("userID", userID), zap.String("sessionID", sessionID), zap.Error(err))
		}
		return
	}
	if err := c.Views.Invalidate(ctx, userID, sessionID); err != nil {
		logger.Error("favorite rollback invalidation failed",
			zap.String("userID", userID), zap.String("sessionID", sessionID), zap.Error(err))
	}
}

// ListSessionIDs returns the user's favorited session IDs.
func (c *Coordinator) ListSessionIDs(userID string) ([]string, error) {
	return c.Repo.ListSessionIDs(userID)
}
