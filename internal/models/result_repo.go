package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) InsertResult(ctx context.Context, result *Result) error {
	col, err := mdb.collection(ResultsColName)
	if err != nil {
		return storageErr("results collection", err)
	}
	if _, err := col.InsertOne(ctx, result); err != nil {
		// The unique (event_id, participant_id) index created by
		// EnsureIndexes rejects a second result for the same pair.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateResult
		}
		return storageErr("insert result", err)
	}
	return nil
}

func (mdb *MongodbRepo) FindResult(ctx context.Context, eventID, participantID uuid.UUID) (*Result, error) {
	col, err := mdb.collection(ResultsColName)
	if err != nil {
		return nil, storageErr("results collection", err)
	}
	filter := bson.M{"event_id": eventID, "participant_id": participantID}
	var result Result
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr("find result", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) UpdateResult(ctx context.Context, result *Result) error {
	col, err := mdb.collection(ResultsColName)
	if err != nil {
		return storageErr("results collection", err)
	}
	res, err := col.ReplaceOne(ctx, bson.M{"_id": result.ID}, result)
	if err != nil {
		return storageErr("update result", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) ListResultsByEvent(ctx context.Context, eventID uuid.UUID) ([]*Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	return mdb.listResults(ctx, bson.M{"event_id": eventID}, opts)
}

func (mdb *MongodbRepo) ListResults(ctx context.Context, category ResultCategory, since time.Time) ([]*Result, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}
	return mdb.listResults(ctx, filter, options.Find())
}

func (mdb *MongodbRepo) listResults(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Result, error) {
	col, err := mdb.collection(ResultsColName)
	if err != nil {
		return nil, storageErr("results collection", err)
	}
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list results", err)
	}
	defer cursor.Close(ctx)

	var results []*Result
	for cursor.Next(ctx) {
		var r Result
		if err := cursor.Decode(&r); err != nil {
			return nil, storageErr("decode result", err)
		}
		results = append(results, &r)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("results cursor", err)
	}
	return results, nil
}
