package middleware

import (
	"net/http"

	"tutoria/models"

	"github.com/gin-gonic/gin"
)

// ContextActorKey is where the authenticated actor lives on the gin context.
const ContextActorKey = "actor"

// ActorMiddleware extracts the acting identity from the headers set by the
// upstream auth gateway. Identity verification happens there; this service
// only reads the asserted ID and role.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Actor-ID")
		role := models.Role(c.GetHeader("X-Actor-Role"))
		if id == "" || (role != models.RoleTutor && role != models.RoleStudent) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid actor identity."})
			return
		}
		c.Set(ContextActorKey, models.Actor{ID: id, Role: role})
		c.Next()
	}
}

// ActorFrom retrieves the actor placed on the context by ActorMiddleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(ContextActorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

// OptionalActorMiddleware reads the actor headers when present but lets
// anonymous requests through. Used on public browse endpoints where viewer
// identity only personalizes the response.
func OptionalActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Actor-ID")
		role := models.Role(c.GetHeader("X-Actor-Role"))
		if id != "" && (role == models.RoleTutor || role == models.RoleStudent) {
			c.Set(ContextActorKey, models.Actor{ID: id, Role: role})
		}
		c.Next()
	}
}
