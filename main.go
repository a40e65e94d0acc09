package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutoria/config"
	"tutoria/cron"
	"tutoria/database"
	bookingRepoPkg "tutoria/database/repository/booking"
	favoriteRepoPkg "tutoria/database/repository/favorite"
	reviewRepoPkg "tutoria/database/repository/review"
	sessionRepoPkg "tutoria/database/repository/session"
	"tutoria/handlers"
	"tutoria/middleware"
	"tutoria/routes"
	"tutoria/services/booking"
	"tutoria/services/favorites"
	"tutoria/services/notification"
	"tutoria/services/tutoring"
	"tutoria/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitViewsCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	favoriteRepo := favoriteRepoPkg.NewMongoFavoriteRepo()

	for _, repo := range []interface{ EnsureIndexes() error }{
		sessionRepo, bookingRepo, reviewRepo, favoriteRepo,
	} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	sessionService := &tutoring.DefaultSessionService{
		SessionRepo:  sessionRepo,
		ReviewRepo:   reviewRepo,
		FavoriteRepo: favoriteRepo,
	}

	bookingService := &booking.DefaultBookingService{
		SessionRepo: sessionRepo,
		BookingRepo: bookingRepo,
		ReviewRepo:  reviewRepo,
	}

	favoriteService := &favorites.Coordinator{
		Repo:  favoriteRepo,
		Views: favorites.NewRedisViewStore(utils.GetViewsCacheClient()),
	}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(queueClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// handlers.
	sessionHandler := handlers.NewSessionHandler(sessionService)
	bookingHandler := handlers.NewBookingHandler(bookingService, notificationService, logger)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	handlerBundle := &routes.HandlerBundle{
		Sessions:  sessionHandler,
		Bookings:  bookingHandler,
		Favorites: favoriteHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker draining the booking event queue.
	cron.InitBookingEventWorker(notification.LogDispatcher{})

	// Periodic dependency health checks surfaced on /health.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetViewsCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
