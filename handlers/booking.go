package handlers

import (
	"context"
	"net/http"
	"time"

	"tutoria/middleware"
	"tutoria/models"
	"tutoria/services/booking"
	"tutoria/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
	Notifier notification.NotificationService
	Logger   *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings booking.BookingService, notifier notification.NotificationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Bookings: bookings,
		Notifier: notifier,
		Logger:   logger,
	}
}

// CreateBookingHandler reserves a slot for the acting student.
func (bh *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result, err := bh.Bookings.Create(actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	bh.enqueue(result.Event)
	c.JSON(http.StatusCreated, result.Booking)
}

// TransitionBookingHandler applies a lifecycle action to a booking.
func (bh *BookingHandler) TransitionBookingHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	id := c.Param("id")

	var result *models.BookingResult
	var err error
	switch c.Param("action") {
	case "confirm":
		result, err = bh.Bookings.Confirm(actor, id)
	case "reject":
		result, err = bh.Bookings.Reject(actor, id)
	case "cancel":
		result, err = bh.Bookings.Cancel(actor, id)
	case "start":
		result, err = bh.Bookings.Start(actor, id)
	case "complete":
		result, err = bh.Bookings.Complete(actor, id)
	case "no-show":
		result, err = bh.Bookings.MarkNoShow(actor, id)
	case "review":
		// Reviews carry a body and no lifecycle event; handled separately.
		bh.SubmitReviewHandler(c)
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	bh.enqueue(result.Event)
	c.JSON(http.StatusOK, result.Booking)
}

// SubmitReviewHandler records the student's review of a completed booking.
func (bh *BookingHandler) SubmitReviewHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updated, err := bh.Bookings.SubmitReview(actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetBookingHandler returns one booking visible to the acting party.
func (bh *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	bk, err := bh.Bookings.Get(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListBookingsHandler returns the actor's bookings.
func (bh *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity."})
		return
	}
	var filters models.BookingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters", "details": err.Error()})
		return
	}
	bookings, err := bh.Bookings.List(actor, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// FreeSlotsHandler returns a session's open hourly start times for a date.
func (bh *BookingHandler) FreeSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	slots, err := bh.Bookings.FreeSlotsForDate(c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// enqueue fires the booking event at the notification queue. A queue outage
// must not fail the booking mutation, so failures are only logged.
func (bh *BookingHandler) enqueue(event models.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := bh.Notifier.EnqueueBookingEvent(ctx, event); err != nil {
		bh.Logger.Error("failed to enqueue booking event",
			zap.String("type", string(event.Type)),
			zap.String("bookingID", event.BookingID),
			zap.Error(err))
	}
}
