package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type registryEntry struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// MongoDBRegistry keeps one document per token, keyed by the token hash.
// A TTL index on expires_at lets MongoDB reap tokens nobody presents again.
type MongoDBRegistry struct {
	client     *mongo.Client
	dbName     string
	collection string
}

func NewMongoDBRegistry(ctx context.Context, mongoURI, dbName string) (*MongoDBRegistry, error) {
	clientOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	r := &MongoDBRegistry{
		client:     client,
		dbName:     dbName,
		collection: "refresh_tokens",
	}
	if err = r.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return r, nil
}

func (r *MongoDBRegistry) coll() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collection)
}

func (r *MongoDBRegistry) ensureIndexes(ctx context.Context) error {
	_, err := r.coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo ttl index: %w", err)
	}
	return nil
}

func (r *MongoDBRegistry) Add(ctx context.Context, token string, ttl time.Duration) error {
	now := time.Now().UTC()
	entry := registryEntry{ID: tokenKey(token), CreatedAt: now}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}

	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

func (r *MongoDBRegistry) Contains(ctx context.Context, token string) (bool, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{"_id": tokenKey(token)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo count: %w", err)
	}
	return n > 0, nil
}

func (r *MongoDBRegistry) Remove(ctx context.Context, token string) error {
	if _, err := r.coll().DeleteOne(ctx, bson.M{"_id": tokenKey(token)}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (r *MongoDBRegistry) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.client.Disconnect(ctx)
}
