package favoriteRepo

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

// MongoFavoriteRepo implements FavoriteRepository using MongoDB.
type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepo constructs a new instance of MongoFavoriteRepo.
func NewMongoFavoriteRepo() FavoriteRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoFavoriteRepo{coll: db.Collection("favorites")}
}

func (repo *MongoFavoriteRepo) Add(favorite *models.Favorite) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, favorite); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyFavorite
		}
		return fmt.Errorf("error adding favorite: %w", err)
	}
	return nil
}

func (repo *MongoFavoriteRepo) Remove(userID, sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"user_id": userID, "session_id": sessionID})
	if err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (repo *MongoFavoriteRepo) Exists(userID, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"user_id": userID, "session_id": sessionID})
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return count > 0, nil
}

func (repo *MongoFavoriteRepo) ListSessionIDs(userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"session_id": 1})
	cursor, err := repo.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		SessionID string `bson:"session_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding favorites: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.SessionID)
	}
	return ids, nil
}

// EnsureIndexes creates the necessary indexes on the favorites collection.
func (repo *MongoFavoriteRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_session"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create favorite indexes: %w", err)
	}
	return nil
}
