package models

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	DbName               = "campushub"
	EventsColName        = "events"
	RegistrationsColName = "registrations"
	ResultsColName       = "results"
	UsersColName         = "users"
	NotificationsColName = "notifications"
)

// EventRepo is the persistence surface for events.
type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	UpdateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, filter EventListFilter, offset, limit int) ([]*Event, int, error)
	// FindVenueOverlaps returns events at the given venue whose inclusive
	// date range intersects [start, end], excluding excludeID when non-nil.
	FindVenueOverlaps(ctx context.Context, venueName string, start, end time.Time, excludeID uuid.UUID) ([]*Event, error)
}

// RegistrationRepo is the persistence surface for the registration ledger.
// Mutating calls are expected to run under the service's per-event lock.
type RegistrationRepo interface {
	InsertRegistration(ctx context.Context, reg *Registration) error
	// FindActiveRegistration returns the single non-cancelled registration
	// for the pair, or ErrNotFound.
	FindActiveRegistration(ctx context.Context, eventID, participantID uuid.UUID) (*Registration, error)
	UpdateRegistration(ctx context.Context, reg *Registration) error
	CountByStatus(ctx context.Context, eventID uuid.UUID, statuses ...RegistrationStatus) (int, error)
	// FirstWaitlisted returns the waitlisted registration with the lowest
	// position, or ErrNotFound when the waitlist is empty.
	FirstWaitlisted(ctx context.Context, eventID uuid.UUID) (*Registration, error)
	// ShiftWaitlistAfter decrements the position of every waitlisted
	// registration whose position is strictly greater than the given one.
	ShiftWaitlistAfter(ctx context.Context, eventID uuid.UUID, position int) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*Registration, error)
	ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]*Registration, error)
}

// ResultRepo is the persistence surface for recorded results.
type ResultRepo interface {
	InsertResult(ctx context.Context, result *Result) error
	FindResult(ctx context.Context, eventID, participantID uuid.UUID) (*Result, error)
	UpdateResult(ctx context.Context, result *Result) error
	ListResultsByEvent(ctx context.Context, eventID uuid.UUID) ([]*Result, error)
	// ListResults selects results created at or after since (zero time means
	// all time), optionally narrowed to one category.
	ListResults(ctx context.Context, category ResultCategory, since time.Time) ([]*Result, error)
}

// UserRepo resolves participant display profiles.
type UserRepo interface {
	UpsertUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)
}

// NotificationRepo is the outbox the delivery collaborator drains.
type NotificationRepo interface {
	SaveNotification(ctx context.Context, n *Notification) error
}

// MongodbRepo implements all repo interfaces against a single Mongo client.
type MongodbRepo struct {
	client *mongo.Client
}

func NewMongodbRepo(client *mongo.Client) *MongodbRepo {
	return &MongodbRepo{client: client}
}

func (mdb *MongodbRepo) collection(colName string) (*mongo.Collection, error) {
	if mdb.client == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.client.Database(DbName).Collection(colName), nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// results index is what makes a concurrent double-record surface as a
// duplicate-key error instead of a second document.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	results, err := mdb.collection(ResultsColName)
	if err != nil {
		return storageErr("results collection", err)
	}
	if _, err := results.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "participant_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return storageErr("create results index", err)
	}

	regs, err := mdb.collection(RegistrationsColName)
	if err != nil {
		return storageErr("registrations collection", err)
	}
	if _, err := regs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "participant_id", Value: 1}},
	}); err != nil {
		return storageErr("create registrations index", err)
	}
	return nil
}
