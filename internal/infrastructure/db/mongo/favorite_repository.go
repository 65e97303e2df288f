package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const favoritesCollection = "favorites"

type FavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{coll: db.Collection(favoritesCollection)}
}

type mongoFavorite struct {
	UserID    string    `bson:"user_id"`
	EventID   string    `bson:"event_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "event_id": eventID})
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return n > 0, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, eventID string) error {
	doc := mongoFavorite{UserID: userID, EventID: eventID, CreatedAt: time.Now().UTC()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		// The unique index makes a concurrent double-add a no-op.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, eventID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "event_id": eventID}); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) EventIDs(ctx context.Context, userID string) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "event_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
