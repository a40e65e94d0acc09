package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoSessionRepo{coll: db.Collection("tutoring_sessions")}
}

func (repo *MongoSessionRepo) Create(session *models.TutoringSession) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("error creating tutoring session: %w", err)
	}
	return nil
}

func (repo *MongoSessionRepo) GetByID(id string) (*models.TutoringSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var session models.TutoringSession
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		return nil, fmt.Errorf("error fetching session with id %s: %w", id, err)
	}
	return &session, nil
}

func (repo *MongoSessionRepo) Update(session *models.TutoringSession) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session.UpdatedAt = time.Now()
	filter := bson.M{"id": session.ID, "tutor_id": session.TutorID}
	res, err := repo.coll.ReplaceOne(ctx, filter, session)
	if err != nil {
		return fmt.Errorf("error updating session %s: %w", session.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoSessionRepo) SetStatus(id, tutorID string, status models.SessionStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "tutor_id": tutorID}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error setting status of session %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoSessionRepo) List(filters models.SessionFilters) ([]models.TutoringSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.SessionActive}
	if filters.Subject != "" {
		filter["subject"] = bson.M{"$regex": filters.Subject, "$options": "i"}
	}
	if filters.CategoryID != "" {
		filter["category_id"] = filters.CategoryID
	}
	if filters.Mode != "" {
		filter["mode"] = bson.M{"$in": []models.SessionMode{filters.Mode, models.ModeBoth}}
	}
	if filters.TutorID != "" {
		filter["tutor_id"] = filters.TutorID
	}
	if filters.MinPrice != nil || filters.MaxPrice != nil {
		price := bson.M{}
		if filters.MinPrice != nil {
			price["$gte"] = *filters.MinPrice
		}
		if filters.MaxPrice != nil {
			price["$lte"] = *filters.MaxPrice
		}
		filter["price_per_hour"] = price
	}
	if filters.AvailabilityDay != "" {
		// A day key only exists when at least one window is open on it.
		filter["available_hours."+string(filters.AvailabilityDay)] = bson.M{"$exists": true}
	}
	if filters.Search != "" {
		pattern := bson.M{"$regex": filters.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"subject": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.TutoringSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

func (repo *MongoSessionRepo) ListByTutor(tutorID string) ([]models.TutoringSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"tutor_id": tutorID,
		"status":   bson.M{"$ne": models.SessionDeleted},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions for tutor %s: %w", tutorID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.TutoringSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding tutor sessions: %w", err)
	}
	return sessions, nil
}

// ApplyReview recomputes the session's running rating average with the new
// rating folded in.
func (repo *MongoSessionRepo) ApplyReview(id string, rating int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var session models.TutoringSession
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		return fmt.Errorf("error fetching session %s for review: %w", id, err)
	}

	total := session.Rating*float64(session.ReviewCount) + float64(rating)
	count := session.ReviewCount + 1
	update := bson.M{"$set": bson.M{
		"rating":       total / float64(count),
		"review_count": count,
		"updated_at":   time.Now(),
	}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error applying review to session %s: %w", id, err)
	}
	return nil
}
