package product

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotCached reports a cache miss. The caller decides whether to go to
// the remote catalogue.
var ErrNotCached = errors.New("product not cached")

// Cache is a write-through store of product records keyed by product ID.
// There is no TTL and no eviction: once populated, cached records are
// served as-is and staleness is accepted.
type Cache struct {
	collection *mongo.Collection
}

func NewCache(db *mongo.Database) *Cache {
	return &Cache{collection: db.Collection("products_cache")}
}

func (c *Cache) Get(ctx context.Context, slug string) (*Product, error) {
	var p Product

	filter := bson.M{"slug": slug}
	if err := c.collection.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("reading cached product: %w", err)
	}

	return &p, nil
}

func (c *Cache) List(ctx context.Context, limit int64) ([]Product, error) {
	opts := options.Find().SetLimit(limit)

	cur, err := c.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing cached products: %w", err)
	}
	defer cur.Close(ctx)

	var products []Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decoding cached products: %w", err)
	}

	return products, nil
}

func (c *Cache) Upsert(ctx context.Context, p Product) error {
	filter := bson.M{"id": p.ID}
	update := bson.M{"$set": p}
	opts := options.Update().SetUpsert(true)

	if _, err := c.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upserting product[%s]: %w", p.ID, err)
	}
	return nil
}
