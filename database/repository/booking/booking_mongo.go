package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tutoria/database"
	"tutoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoBookingRepo{coll: db.Collection("tutoring_bookings")}
}

func (repo *MongoBookingRepo) Create(booking *models.TutoringBooking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(id string) (*models.TutoringBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var booking models.TutoringBooking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) BookedStartTimes(sessionID, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"session_id": sessionID,
		"date":       date,
		"status":     bson.M{"$ne": models.BookingCancelled},
	}
	opts := options.Find().SetProjection(bson.M{"start_time": 1})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var times []string
	for cursor.Next(ctx) {
		var row struct {
			StartTime string `bson:"start_time"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding booked slot: %w", err)
		}
		times = append(times, row.StartTime)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return times, nil
}

// UpdateStatusIf is the conditional transition write: the filter carries
// the expected prior statuses so concurrent transitions resolve
// deterministically. One matches, the other sees ErrStaleStatus.
func (repo *MongoBookingRepo) UpdateStatusIf(id string, from []models.BookingStatus, to models.BookingStatus, stampField string) (*models.TutoringBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{"status": to, "updated_at": now}
	if stampField != "" {
		set[stampField] = now
	}

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.TutoringBooking
	err := repo.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStaleStatus
		}
		return nil, fmt.Errorf("error updating status of booking %s: %w", id, err)
	}
	return &updated, nil
}

func (repo *MongoBookingRepo) SetReview(id string, rating int, text string) (*models.TutoringBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": models.BookingCompleted,
		"rating": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"rating":     rating,
		"review":     text,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.TutoringBooking
	err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("error setting review on booking %s: %w", id, err)
	}
	return &updated, nil
}

func (repo *MongoBookingRepo) ListForTutor(tutorID string, filters models.BookingFilters) ([]models.TutoringBooking, error) {
	return repo.list(bson.M{"tutor_id": tutorID}, filters)
}

func (repo *MongoBookingRepo) ListForStudent(studentID string, filters models.BookingFilters) ([]models.TutoringBooking, error) {
	return repo.list(bson.M{"student_id": studentID}, filters)
}

func (repo *MongoBookingRepo) list(filter bson.M, filters models.BookingFilters) ([]models.TutoringBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(filters.Status) > 0 {
		filter["status"] = bson.M{"$in": filters.Status}
	}
	if filters.FromDate != "" || filters.ToDate != "" {
		dateRange := bson.M{}
		if filters.FromDate != "" {
			dateRange["$gte"] = filters.FromDate
		}
		if filters.ToDate != "" {
			dateRange["$lte"] = filters.ToDate
		}
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "start_time", Value: -1},
	})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.TutoringBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
