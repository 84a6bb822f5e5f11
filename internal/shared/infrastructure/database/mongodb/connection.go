// Package mongodb connects to the document store backend.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pulsedev/pulse/internal/shared/infrastructure/database"
)

const connectTimeout = 10 * time.Second

// Connect establishes a MongoDB client and returns the configured database
// handle. The caller owns the client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg database.Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.MongoURI == "" {
		return nil, nil, errors.New("mongodb URI is not configured")
	}
	name := cfg.MongoDatabase
	if name == "" {
		name = "pulse"
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(name), nil
}
