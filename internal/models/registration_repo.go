package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) InsertRegistration(ctx context.Context, reg *Registration) error {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return storageErr("registrations collection", err)
	}
	if _, err := col.InsertOne(ctx, reg); err != nil {
		return storageErr("insert registration", err)
	}
	return nil
}

func (mdb *MongodbRepo) FindActiveRegistration(ctx context.Context, eventID, participantID uuid.UUID) (*Registration, error) {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return nil, storageErr("registrations collection", err)
	}
	filter := bson.M{
		"event_id":       eventID,
		"participant_id": participantID,
		"status":         bson.M{"$ne": RegistrationCancelled},
	}
	var reg Registration
	if err := col.FindOne(ctx, filter).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr("find active registration", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) UpdateRegistration(ctx context.Context, reg *Registration) error {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return storageErr("registrations collection", err)
	}
	res, err := col.ReplaceOne(ctx, bson.M{"_id": reg.ID}, reg)
	if err != nil {
		return storageErr("update registration", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) CountByStatus(ctx context.Context, eventID uuid.UUID, statuses ...RegistrationStatus) (int, error) {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return 0, storageErr("registrations collection", err)
	}
	filter := bson.M{
		"event_id": eventID,
		"status":   bson.M{"$in": statuses},
	}
	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storageErr("count registrations", err)
	}
	return int(n), nil
}

func (mdb *MongodbRepo) FirstWaitlisted(ctx context.Context, eventID uuid.UUID) (*Registration, error) {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return nil, storageErr("registrations collection", err)
	}
	filter := bson.M{
		"event_id": eventID,
		"status":   RegistrationWaitlisted,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "waitlist_position", Value: 1}})
	var reg Registration
	if err := col.FindOne(ctx, filter, opts).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr("first waitlisted", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) ShiftWaitlistAfter(ctx context.Context, eventID uuid.UUID, position int) error {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return storageErr("registrations collection", err)
	}
	filter := bson.M{
		"event_id":          eventID,
		"status":            RegistrationWaitlisted,
		"waitlist_position": bson.M{"$gt": position},
	}
	update := bson.M{"$inc": bson.M{"waitlist_position": -1}}
	if _, err := col.UpdateMany(ctx, filter, update); err != nil {
		return storageErr("shift waitlist", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*Registration, error) {
	return mdb.listRegistrations(ctx, bson.M{"event_id": eventID})
}

func (mdb *MongodbRepo) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]*Registration, error) {
	return mdb.listRegistrations(ctx, bson.M{"participant_id": participantID})
}

func (mdb *MongodbRepo) listRegistrations(ctx context.Context, filter bson.M) ([]*Registration, error) {
	col, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return nil, storageErr("registrations collection", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: 1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list registrations", err)
	}
	defer cursor.Close(ctx)

	var regs []*Registration
	for cursor.Next(ctx) {
		var reg Registration
		if err := cursor.Decode(&reg); err != nil {
			return nil, storageErr("decode registration", err)
		}
		regs = append(regs, &reg)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("registrations cursor", err)
	}
	return regs, nil
}
