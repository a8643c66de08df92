package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

const statusChecksCollection = "status_checks"

type MongoStatusCheckRepository struct {
	coll *mongo.Collection
}

func NewStatusCheckRepository(db *mongo.Database) *MongoStatusCheckRepository {
	return &MongoStatusCheckRepository{coll: db.Collection(statusChecksCollection)}
}

type mongoStatusCheck struct {
	ID         string    `bson:"_id"`
	ClientName string    `bson:"client_name"`
	Timestamp  time.Time `bson:"timestamp"`
}

func (r *MongoStatusCheckRepository) Insert(ctx context.Context, check *domain.StatusCheck) error {
	doc := mongoStatusCheck{ID: check.ID, ClientName: check.ClientName, Timestamp: check.Timestamp}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

func (r *MongoStatusCheckRepository) List(ctx context.Context, limit int) ([]*domain.StatusCheck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status checks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoStatusCheck
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode status checks: %w", err)
	}

	out := make([]*domain.StatusCheck, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.StatusCheck{ID: d.ID, ClientName: d.ClientName, Timestamp: d.Timestamp.UTC()})
	}
	return out, nil
}
