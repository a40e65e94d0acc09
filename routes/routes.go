package routes

import (
	"net/http"
	"time"

	"tutoria/handlers"
	"tutoria/middleware"
	"tutoria/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Sessions  *handlers.SessionHandler
	Bookings  *handlers.BookingHandler
	Favorites *handlers.FavoriteHandler
}

// RegisterSessionRoutes registers session publishing and browsing endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		// Public browse endpoints; viewer identity personalizes the response
		// when present.
		public := api.Group("")
		public.Use(middleware.OptionalActorMiddleware())
		public.GET("", hb.Sessions.ListSessionsHandler)
		public.GET("/:id", hb.Sessions.GetSessionHandler)
		public.GET("/:id/reviews", hb.Sessions.ListSessionReviewsHandler)
		public.GET("/:id/slots", hb.Bookings.FreeSlotsHandler)

		// Management endpoints require an acting identity.
		protected := api.Group("")
		protected.Use(middleware.ActorMiddleware())
		protected.POST("", hb.Sessions.CreateSessionHandler)
		protected.PATCH("/:id", hb.Sessions.UpdateSessionHandler)
		protected.POST("/:id/:action", hb.Sessions.SetSessionStatusHandler)
	}

	// Lives outside /api/sessions so the tutor listing does not collide
	// with the :id parameter segment.
	me := r.Group("/api/me")
	{
		me.Use(middleware.ActorMiddleware())
		me.GET("/sessions", hb.Sessions.ListMySessionsHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.ActorMiddleware())
		api.POST("", hb.Bookings.CreateBookingHandler)
		api.GET("", hb.Bookings.ListBookingsHandler)
		api.GET("/:id", hb.Bookings.GetBookingHandler)
		// "review" is dispatched inside the action handler alongside the
		// lifecycle transitions.
		api.POST("/:id/:action", hb.Bookings.TransitionBookingHandler)
	}
}

// RegisterFavoriteRoutes sets up the favorite toggle endpoints.
func RegisterFavoriteRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/favorites")
	{
		api.Use(middleware.ActorMiddleware())
		api.GET("", hb.Favorites.ListFavoritesHandler)
		api.POST("/:id/toggle", hb.Favorites.ToggleFavoriteHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Actor-ID", "X-Actor-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterFavoriteRoutes(r, hb)
	RegisterHealthRoute(r)
}
