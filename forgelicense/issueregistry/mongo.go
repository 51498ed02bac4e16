package issueregistry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMongoCollection = "forge_issued_licenses"

// validCollectionName matches safe MongoDB collection names.
var validCollectionName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MongoOption configures a MongoRegistry.
type MongoOption func(*MongoRegistry)

// WithCollectionName sets the MongoDB collection name. Default: "forge_issued_licenses".
func WithCollectionName(name string) MongoOption {
	return func(r *MongoRegistry) {
		r.collectionName = name
	}
}

// MongoRegistry implements Registry using MongoDB.
type MongoRegistry struct {
	collection     *mongo.Collection
	collectionName string
}

// NewMongoRegistry creates a new MongoDB-backed issue registry.
// It creates the necessary indexes on initialization.
func NewMongoRegistry(ctx context.Context, db *mongo.Database, opts ...MongoOption) (*MongoRegistry, error) {
	r := &MongoRegistry{
		collectionName: defaultMongoCollection,
	}
	for _, opt := range opts {
		opt(r)
	}
	if !validCollectionName.MatchString(r.collectionName) {
		return nil, fmt.Errorf("invalid collection name %q: must match [a-zA-Z_][a-zA-Z0-9_]*", r.collectionName)
	}
	r.collection = db.Collection(r.collectionName)

	if err := r.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return r, nil
}

func (r *MongoRegistry) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "organisation", Value: 1},
				{Key: "issued_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "issued_at", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoRegistry) Record(ctx context.Context, issue Issue) (*Issue, error) {
	issue = normalize(issue)
	if _, err := r.collection.InsertOne(ctx, issue); err != nil {
		return nil, fmt.Errorf("record issue: %w", err)
	}
	return &issue, nil
}

func (r *MongoRegistry) Get(ctx context.Context, id string) (*Issue, error) {
	var issue Issue
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return &issue, nil
}

func (r *MongoRegistry) List(ctx context.Context, organisation string) ([]Issue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "issued_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"organisation": organisation}, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	var issues []Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

func (r *MongoRegistry) Count(ctx context.Context, organisation string) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"organisation": organisation})
	if err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return int(count), nil
}

func (r *MongoRegistry) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"issued_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("prune issues: %w", err)
	}
	return int(result.DeletedCount), nil
}

func (r *MongoRegistry) Close(_ context.Context) error {
	return nil // user manages the mongo.Database lifecycle
}
