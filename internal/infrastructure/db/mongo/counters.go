package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// nextSequence atomically increments and returns the named integer sequence.
// Used to hand out the integer primary keys the API exposes instead of
// ObjectIDs.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int, error) {
	var doc struct {
		Value int `bson:"value"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return doc.Value, nil
}

// bumpSequence raises the named sequence to at least value. Called after
// inserts with explicit ids (seed data) so generated ids never collide.
func bumpSequence(ctx context.Context, db *mongo.Database, name string, value int) error {
	_, err := db.Collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("bump sequence %s: %w", name, err)
	}
	return nil
}
