// Package mongo holds the document store behind the AltarMaker API: user
// accounts, append-only wall-design snapshots, named design sessions and
// public feedback, one repository per collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/altarmaker/altarmaker-api/internal/infrastructure/config"
)

const connectTimeout = 10 * time.Second

// Connect dials the store configured by MONGO_URI, verifies it with a ping
// and returns the client plus the application database named by MONGO_DB.
// Every record this API serves lives in that database, so callers treat a
// failure here as fatal.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
