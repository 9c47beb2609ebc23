package repo

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/mindful-labyrinth/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultResultLimit = 20

// ResultRepo handles the persistence of completed labyrinth runs.
type ResultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new ResultRepo with the given MongoDB client, database name, and collection name.
func NewResultRepo(client *mongo.Client, dbName, collectionName string) *ResultRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &ResultRepo{
		collection: collection,
	}
}

// Save inserts a result. A result is written once, when its game completes.
func (r *ResultRepo) Save(ctx context.Context, result *dmn.Result) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, result); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("result already saved")
		}
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByUser returns the latest results of a user, newest first.
// A non-positive limit falls back to the default page size.
func (r *ResultRepo) ByUser(ctx context.Context, userID uuid.UUID, limit int64) ([]*dmn.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultResultLimit
	}

	filter := bson.M{"userID": userID}
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	results := make([]*dmn.Result, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return results, nil
}
