package handlers

import (
	"net/http"

	"tutoria/middleware"
	"tutoria/models"
	"tutoria/services/tutoring"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes session publishing and browsing endpoints.
type SessionHandler struct {
	Sessions tutoring.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions tutoring.SessionService) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

// CreateSessionHandler publishes a new session for the acting tutor.
func (sh *SessionHandler) CreateSessionHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := sh.Sessions.Create(actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// UpdateSessionHandler applies partial changes to an owned session.
func (sh *SessionHandler) UpdateSessionHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := sh.Sessions.Update(actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetSessionStatusHandler pauses, activates, or deletes an owned session.
func (sh *SessionHandler) SetSessionStatusHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	id := c.Param("id")

	var err error
	switch c.Param("action") {
	case "pause":
		err = sh.Sessions.Pause(actor, id)
	case "activate":
		err = sh.Sessions.Activate(actor, id)
	case "delete":
		err = sh.Sessions.Delete(actor, id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSessionHandler returns one session, decorated for the viewer.
func (sh *SessionHandler) GetSessionHandler(c *gin.Context) {
	viewerID := ""
	if actor, ok := middleware.ActorFrom(c); ok {
		viewerID = actor.ID
	}
	view, err := sh.Sessions.Get(c.Param("id"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListSessionsHandler returns active sessions matching the query filters.
func (sh *SessionHandler) ListSessionsHandler(c *gin.Context) {
	var filters models.SessionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters", "details": err.Error()})
		return
	}
	viewerID := ""
	if actor, ok := middleware.ActorFrom(c); ok {
		viewerID = actor.ID
	}
	views, err := sh.Sessions.List(filters, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListMySessionsHandler returns all of the acting tutor's sessions.
func (sh *SessionHandler) ListMySessionsHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	sessions, err := sh.Sessions.ListMine(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// ListSessionReviewsHandler returns a session's reviews, newest first.
func (sh *SessionHandler) ListSessionReviewsHandler(c *gin.Context) {
	reviews, err := sh.Sessions.Reviews(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
