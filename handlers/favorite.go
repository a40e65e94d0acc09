package handlers

import (
	"net/http"

	"tutoria/middleware"
	"tutoria/services/favorites"

	"github.com/gin-gonic/gin"
)

// FavoriteHandler exposes the favorite toggle and listing endpoints.
type FavoriteHandler struct {
	Favorites favorites.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favs favorites.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Favorites: favs}
}

// ToggleFavoriteHandler flips the actor's favorite for a session.
func (fh *FavoriteHandler) ToggleFavoriteHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	favorite, err := fh.Favorites.Toggle(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "is_favorite": favorite})
}

// ListFavoritesHandler returns the actor's favorited session IDs.
func (fh *FavoriteHandler) ListFavoritesHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	ids, err := fh.Favorites.ListSessionIDs(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_ids": ids})
}
