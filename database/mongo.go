package database

import (
	"context"
	"fmt"
	"time"

	"github.com/LexLPS/eve-shop/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenMongo connects to the document store holding the product cache and
// the cart documents.
func OpenMongo(ctx context.Context, cfg config.Mongo) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client.Database(cfg.Database), nil
}
