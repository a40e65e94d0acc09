package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"tutoria/database"
	"tutoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new instance of MongoReviewRepo.
func NewMongoReviewRepo() ReviewRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoReviewRepo{coll: db.Collection("reviews")}
}

func (repo *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

func (repo *MongoReviewRepo) ListBySession(sessionID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews for session %s: %w", sessionID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

// EnsureIndexes creates the necessary indexes on the reviews collection.
func (repo *MongoReviewRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking"),
		},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("session_created_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
