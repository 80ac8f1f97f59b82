// Package database owns the MongoDB client shared by all repositories.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dressshop/config"
)

var (
	Client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	db = client.Database(config.MongoDB())
	return nil
}

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

// Collection returns a handle to a named collection in the app database.
// Returns nil before Connect; handles are only used after boot succeeds.
func Collection(name string) *mongo.Collection {
	if db == nil {
		return nil
	}
	return db.Collection(name)
}
