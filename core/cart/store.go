package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCartNotFound = errors.New("cart not found")

// Store keeps one cart document per user in the document store. Writes
// replace the full item collection: consistency relies on the store's
// per-document atomic upsert, last writer wins.
type Store struct {
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection("carts")}
}

func (s *Store) Get(ctx context.Context, userID string) (*Cart, error) {
	var c Cart

	filter := bson.M{"user_id": userID}
	if err := s.collection.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("reading cart: %w", err)
	}

	return &c, nil
}

func (s *Store) SetItems(ctx context.Context, userID string, items []Item) (Cart, error) {
	now := time.Now().UTC()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{
		"user_id":    userID,
		"items":      items,
		"updated_at": now,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return Cart{}, fmt.Errorf("writing cart items: %w", err)
	}

	return Cart{UserID: userID, Items: items, UpdatedAt: now}, nil
}
