package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs lists the indexes each collection needs. The TTL index on
// refresh_tokens.expires_at lets MongoDB drop expired registry rows itself.
func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		},
		refreshTokensCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("user_id")},
			{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetName("token_hash")},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl")},
		},
		statusChecksCollection: {
			{Keys: bson.D{{Key: "timestamp", Value: 1}}, Options: options.Index().SetName("timestamp")},
		},
	}
}

// ErrRequiredIndex reports that the unique users.email index could not be
// built. Without it concurrent registrations may store the same email twice.
var ErrRequiredIndex = errors.New("required index unavailable")

// EnsureIndexes creates every index the repositories rely on. It is safe to
// call on every startup. A failure on the users collection is wrapped in
// ErrRequiredIndex and returned before the other collections are touched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := indexSpecs()
	if err := createIndexes(ctx, db, usersCollection, specs[usersCollection]); err != nil {
		return fmt.Errorf("%w: %w", ErrRequiredIndex, err)
	}

	var errs []error
	for coll, models := range specs {
		if coll == usersCollection {
			continue
		}
		if err := createIndexes(ctx, db, coll, models); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func createIndexes(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", coll, err)
	}
	return nil
}
