package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bodecoin/bodecoin-services/api/internal/auth"
	"github.com/bodecoin/bodecoin-services/api/internal/public/application"
)

// UserRepository implements auth.UserRepository using MongoDB.
// The users collection carries a unique index on email.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new Mongo-backed user repository.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{collection: db.Collection(collectionName)}
}

// Create stores a new account and returns the assigned identifier.
// Duplicate emails surface as auth.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) (string, error) {
	doc := UserDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", auth.ErrEmailTaken
		}
		return "", err
	}
	return doc.ID.Hex(), nil
}

// FindByEmail returns the account registered under the normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return &auth.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
