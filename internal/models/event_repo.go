package models

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) error {
	col, err := mdb.collection(EventsColName)
	if err != nil {
		return storageErr("events collection", err)
	}
	if _, err := col.InsertOne(ctx, event); err != nil {
		return storageErr("insert event", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	col, err := mdb.collection(EventsColName)
	if err != nil {
		return nil, storageErr("events collection", err)
	}
	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get event", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, event *Event) error {
	col, err := mdb.collection(EventsColName)
	if err != nil {
		return storageErr("events collection", err)
	}
	res, err := col.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return storageErr("update event", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	col, err := mdb.collection(EventsColName)
	if err != nil {
		return storageErr("events collection", err)
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr("delete event", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context, filter EventListFilter, offset, limit int) ([]*Event, int, error) {
	col, err := mdb.collection(EventsColName)
	if err != nil {
		return nil, 0, storageErr("events collection", err)
	}

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.OrganizerID != uuid.Nil {
		query["organizer_id"] = filter.OrganizerID
	}
	if filter.VenueName != "" {
		query["venue.name"] = venueNameFilter(filter.VenueName)
	}
	for k, v := range statusQuery(filter.Status, time.Now().UTC()) {
		query[k] = v
	}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, storageErr("count events", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, storageErr("list events", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, 0, storageErr("decode event", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, storageErr("events cursor", err)
	}
	return events, int(total), nil
}

func (mdb *MongodbRepo) FindVenueOverlaps(ctx context.Context, venueName string, start, end time.Time, excludeID uuid.UUID) ([]*Event, error) {
	col, err := mdb.collection(EventsColName)
	if err != nil {
		return nil, storageErr("events collection", err)
	}

	// Inclusive interval intersection: existing.start <= end && existing.end >= start.
	query := bson.M{
		"venue.name": venueNameFilter(venueName),
		"start_date": bson.M{"$lte": DateOnly(end)},
		"end_date":   bson.M{"$gte": DateOnly(start)},
	}
	if excludeID != uuid.Nil {
		query["_id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := col.Find(ctx, query)
	if err != nil {
		return nil, storageErr("find venue overlaps", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, storageErr("decode event", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("events cursor", err)
	}
	return events, nil
}

// venueNameFilter matches venue names case-insensitively so "Hall A" and
// "hall a" claim the same physical space.
func venueNameFilter(name string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", "$options": "i"}
}

// statusQuery translates a derived lifecycle phase into date bounds so the
// store filters the same set the Status method derives.
func statusQuery(status EventStatus, now time.Time) bson.M {
	today := DateOnly(now)
	switch status {
	case StatusUpcoming:
		return bson.M{"start_date": bson.M{"$gt": today}}
	case StatusOngoing:
		return bson.M{"start_date": bson.M{"$lte": today}, "end_date": bson.M{"$gte": today}}
	case StatusCompleted:
		return bson.M{"end_date": bson.M{"$lt": today}}
	default:
		return bson.M{}
	}
}
