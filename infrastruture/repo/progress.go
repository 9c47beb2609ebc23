package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/mindful-labyrinth/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	readTimeout  = 2 * time.Second
	writeTimeout = time.Second

	firstLevel = 1
)

// ProgressRepo handles the persistence of minigame progress.
// There is one document per (user, game type).
type ProgressRepo struct {
	collection *mongo.Collection
}

// NewProgressRepo creates a new ProgressRepo with the given MongoDB client, database name, and collection name.
func NewProgressRepo(client *mongo.Client, dbName, collectionName string) *ProgressRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &ProgressRepo{
		collection: collection,
	}
}

// Level returns the current level of the user, or the first level when the
// user has no progress yet.
func (p *ProgressRepo) Level(ctx context.Context, userID uuid.UUID, gameType string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var progress dmn.Progress
	err := p.collection.FindOne(ctx, progressFilter(userID, gameType)).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return firstLevel, nil
		}
		return 0, errors.New("unexpected error: " + err.Error())
	}
	return progress.CurrentLevel, nil
}

// Advance increments the level of the user, creating the record on first completion.
func (p *ProgressRepo) Advance(ctx context.Context, userID uuid.UUID, gameType string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$inc": bson.M{"currentLevel": 1},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"userID":    userID,
			"gameType":  gameType,
			"createdAt": now,
		},
	}

	// $inc on an upserted document starts from zero.
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var progress dmn.Progress
	err := p.collection.FindOneAndUpdate(ctx, progressFilter(userID, gameType), update, opts).Decode(&progress)
	if err != nil {
		return 0, errors.New("unexpected error: " + err.Error())
	}

	if progress.CurrentLevel < firstLevel+1 {
		return p.fixNewRecord(ctx, userID, gameType)
	}
	return progress.CurrentLevel, nil
}

// fixNewRecord lifts a freshly inserted record, whose $inc started from zero,
// to the level after the first one.
func (p *ProgressRepo) fixNewRecord(ctx context.Context, userID uuid.UUID, gameType string) (int, error) {
	update := bson.M{"$max": bson.M{"currentLevel": firstLevel + 1}}
	if _, err := p.collection.UpdateOne(ctx, progressFilter(userID, gameType), update); err != nil {
		return 0, errors.New("unexpected error: " + err.Error())
	}
	return firstLevel + 1, nil
}

func progressFilter(userID uuid.UUID, gameType string) bson.M {
	return bson.M{"userID": userID, "gameType": gameType}
}
