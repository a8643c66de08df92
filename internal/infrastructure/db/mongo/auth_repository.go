package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

const usersCollection = "users"

// MongoAuthRepository is the credential store backed by the users collection.
// Lockout counters are changed with single-document update operators so that
// concurrent attempts on one account never lose an increment.
type MongoAuthRepository struct {
	coll *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *MongoAuthRepository {
	return &MongoAuthRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                  string     `bson:"_id"`
	Email               string     `bson:"email"`
	Name                string     `bson:"name"`
	PasswordHash        string     `bson:"password_hash"`
	UserType            string     `bson:"user_type"`
	DJName              string     `bson:"dj_name,omitempty"`
	FailedLoginAttempts int        `bson:"failed_login_attempts"`
	LastFailedLogin     *time.Time `bson:"last_failed_login,omitempty"`
	LastLogin           *time.Time `bson:"last_login,omitempty"`
	IsActive            bool       `bson:"is_active"`
	CreatedAt           time.Time  `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		PasswordHash:        u.PasswordHash,
		UserType:            u.UserType,
		DJName:              u.DJName,
		FailedLoginAttempts: u.FailedLoginAttempts,
		LastFailedLogin:     u.LastFailedLogin,
		LastLogin:           u.LastLogin,
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt,
	}
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                  mu.ID,
		Email:               mu.Email,
		Name:                mu.Name,
		PasswordHash:        mu.PasswordHash,
		UserType:            mu.UserType,
		DJName:              mu.DJName,
		FailedLoginAttempts: mu.FailedLoginAttempts,
		LastFailedLogin:     utcPtr(mu.LastFailedLogin),
		LastLogin:           utcPtr(mu.LastLogin),
		IsActive:            mu.IsActive,
		CreatedAt:           mu.CreatedAt.UTC(),
	}
}

func (r *MongoAuthRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoAuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoAuthRepository) RecordLoginSuccess(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{"failed_login_attempts": 0, "last_login": at},
	})
}

func (r *MongoAuthRepository) RecordLoginFailure(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$inc": bson.M{"failed_login_attempts": 1},
		"$set": bson.M{"last_failed_login": at},
	})
}

func (r *MongoAuthRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoAuthRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
