package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tutoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on (session_id, date, start_time) is what turns
// the check-then-insert race into a rejected write: only cancelled
// bookings release their slot, so every live booking holds the triple
// exclusively.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	occupying := bson.A{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingInProgress,
		models.BookingCompleted,
		models.BookingNoShow,
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_live_slot").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": occupying}}),
		},
		{
			Keys:    bson.D{{Key: "tutor_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("tutor_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("student_date_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
