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

func (mdb *MongodbRepo) UpsertUser(ctx context.Context, user *User) error {
	col, err := mdb.collection(UsersColName)
	if err != nil {
		return storageErr("users collection", err)
	}
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"department": user.Department,
			"avatar_url": user.AvatarURL,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(user); err != nil {
		return storageErr("upsert user", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	col, err := mdb.collection(UsersColName)
	if err != nil {
		return nil, storageErr("users collection", err)
	}
	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get user", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error) {
	col, err := mdb.collection(UsersColName)
	if err != nil {
		return nil, storageErr("users collection", err)
	}
	cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer cursor.Close(ctx)

	users := make(map[uuid.UUID]*User, len(ids))
	for cursor.Next(ctx) {
		var u User
		if err := cursor.Decode(&u); err != nil {
			return nil, storageErr("decode user", err)
		}
		users[u.ID] = &u
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("users cursor", err)
	}
	return users, nil
}

func (mdb *MongodbRepo) SaveNotification(ctx context.Context, n *Notification) error {
	col, err := mdb.collection(NotificationsColName)
	if err != nil {
		return storageErr("notifications collection", err)
	}
	if _, err := col.InsertOne(ctx, n); err != nil {
		return storageErr("insert notification", err)
	}
	return nil
}
