package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bodecoin/bodecoin-services/api/internal/public/application"
	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// AdminBusinessRepository implements the moderation port over the same
// business collection the public repository reads.
type AdminBusinessRepository struct {
	collection *mongo.Collection
}

// NewAdminBusinessRepository creates a Mongo-backed moderation repository.
func NewAdminBusinessRepository(db *mongo.Database, collectionName string) *AdminBusinessRepository {
	return &AdminBusinessRepository{collection: db.Collection(collectionName)}
}

// FindByStatus returns every listing in the given lifecycle status.
func (r *AdminBusinessRepository) FindByStatus(ctx context.Context, status string) ([]domain.Business, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	businesses := make([]domain.Business, 0)
	for cursor.Next(ctx) {
		var doc BusinessDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		businesses = append(businesses, mapBusinessDocument(doc))
	}
	return businesses, cursor.Err()
}

// SetStatus moves a listing to the given lifecycle status.
func (r *AdminBusinessRepository) SetStatus(ctx context.Context, id, status string) (*domain.Business, error) {
	return r.updateOne(ctx, id, bson.M{"status": status})
}

// SetVerified grants or revokes the verified badge.
func (r *AdminBusinessRepository) SetVerified(ctx context.Context, id string, verified bool) (*domain.Business, error) {
	return r.updateOne(ctx, id, bson.M{"verified": verified})
}

func (r *AdminBusinessRepository) updateOne(ctx context.Context, id string, fields bson.M) (*domain.Business, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}

	fields["updatedAt"] = time.Now().UTC()
	update := bson.M{"$set": fields}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc BusinessDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	business := mapBusinessDocument(doc)
	return &business, nil
}
