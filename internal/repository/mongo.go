package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	mediaCollection      = "media"
	packageCollection    = "packages"
	inquiryCollection    = "inquiries"
	backgroundCollection = "backgrounds"
)

func mongoErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

// objectIDs converts the well-formed hex ids; malformed ones are dropped.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		mediaCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		packageCollection: {
			{Keys: bson.D{{Key: "active", Value: 1}, {Key: "popular", Value: -1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
		inquiryCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "eventDate", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		backgroundCollection: {
			{Keys: bson.D{{Key: "section", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
