package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutoria/models"

	"github.com/go-redis/redis/v8"
)

// ViewStore holds the cached, viewer-specific session views that the toggle
// mutates optimistically. Implementations must make Restore undo a prior
// MarkFavorite exactly, so a failed persistence write leaves no trace.
type ViewStore interface {
	// Snapshot captures the viewer's cached view of a session, if any.
	Snapshot(ctx context.Context, userID, sessionID string) (*models.SessionView, bool, error)

	// MarkFavorite rewrites the cached view's favorite flag in place.
	MarkFavorite(ctx context.Context, userID, sessionID string, favorite bool) error

	// Restore puts a previously captured snapshot back.
	Restore(ctx context.Context, userID string, view *models.SessionView) error

	// Invalidate drops the viewer's cached view entirely; the next read
	// rebuilds it from the source of truth.
	Invalidate(ctx context.Context, userID, sessionID string) error
}

const viewTTL = 10 * time.Minute

// RedisViewStore keeps per-viewer session views as JSON documents.
type RedisViewStore struct {
	Client *redis.Client
}

// NewRedisViewStore constructs a new instance of RedisViewStore.
func NewRedisViewStore(client *redis.Client) *RedisViewStore {
	return &RedisViewStore{Client: client}
}

func viewKey(userID, sessionID string) string {
	return fmt.Sprintf("views:%s:session:%s", userID, sessionID)
}

func (s *RedisViewStore) Snapshot(ctx context.Context, userID, sessionID string) (*models.SessionView, bool, error) {
	raw, err := s.Client.Get(ctx, viewKey(userID, sessionID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached view: %w", err)
	}
	var view models.SessionView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		// A corrupt entry is dropped rather than surfaced.
		_ = s.Client.Del(ctx, viewKey(userID, sessionID)).Err()
		return nil, false, nil
	}
	return &view, true, nil
}

func (s *RedisViewStore) MarkFavorite(ctx context.Context, userID, sessionID string, favorite bool) error {
	view, ok, err := s.Snapshot(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		// Nothing cached, nothing to flip.
		return nil
	}
	view.IsFavorite = favorite
	return s.Restore(ctx, userID, view)
}

func (s *RedisViewStore) Restore(ctx context.Context, userID string, view *models.SessionView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	if err := s.Client.Set(ctx, viewKey(userID, view.ID), raw, viewTTL).Err(); err != nil {
		return fmt.Errorf("failed to write cached view: %w", err)
	}
	return nil
}

func (s *RedisViewStore) Invalidate(ctx context.Context, userID, sessionID string) error {
	if err := s.Client.Del(ctx, viewKey(userID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached view: %w", err)
	}
	return nil
}
