package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

const refreshTokensCollection = "refresh_tokens"

// MongoRefreshTokenRepository is the refresh-token registry. Expired rows are
// also removed by the TTL index on expires_at (see EnsureIndexes).
type MongoRefreshTokenRepository struct {
	coll *mongo.Collection
}

func NewRefreshTokenRepository(db *mongo.Database) *MongoRefreshTokenRepository {
	return &MongoRefreshTokenRepository{coll: db.Collection(refreshTokensCollection)}
}

type mongoRefreshToken struct {
	UserID    string    `bson:"user_id"`
	TokenHash string    `bson:"token_hash"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (r *MongoRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	doc := mongoRefreshToken{
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		CreatedAt: token.CreatedAt,
		ExpiresAt: token.ExpiresAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *MongoRefreshTokenRepository) Exists(ctx context.Context, userID, tokenHash string, now time.Time) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"token_hash": tokenHash,
		"expires_at": bson.M{"$gt": now},
	})
	if err != nil {
		return false, fmt.Errorf("count refresh tokens: %w", err)
	}
	return n > 0, nil
}

func (r *MongoRefreshTokenRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete refresh tokens: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("purge refresh tokens: %w", err)
	}
	return res.DeletedCount, nil
}
