package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect opens the client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	log.Info().Str("uri", redact(uri)).Msg("Connected to MongoDB")
	return client, nil
}

// BlogsCollection returns the posts collection and makes sure the filter
// fields used by the list endpoint are indexed.
func BlogsCollection(ctx context.Context, client *mongo.Client, database, collection string) *mongo.Collection {
	coll := client.Database(database).Collection(collection)
	CreateIndexes(ctx, coll)
	return coll
}

func CreateIndexes(ctx context.Context, coll *mongo.Collection) {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "subcategory", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		log.Warn().Err(err).Str("collection", coll.Name()).Msg("Index creation failed")
	}
}

// redact hides credentials in a connection string before it is logged.
func redact(uri string) string {
	start := 0
	if i := strings.Index(uri, "://"); i >= 0 {
		start = i + 3
	}
	at := strings.LastIndex(uri[start:], "@")
	if at < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+at:]
}
