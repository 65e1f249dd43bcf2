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

// BusinessRepository implements application.BusinessRepository using MongoDB.
type BusinessRepository struct {
	collection *mongo.Collection
}

// NewBusinessRepository creates a new Mongo-backed business repository.
func NewBusinessRepository(db *mongo.Database, collectionName string) *BusinessRepository {
	return &BusinessRepository{collection: db.Collection(collectionName)}
}

// FindActive returns every publicly visible listing.
func (r *BusinessRepository) FindActive(ctx context.Context) ([]domain.Business, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": domain.StatusActive})
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
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return businesses, nil
}

// FindByID returns a single listing by its identifier.
func (r *BusinessRepository) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	var doc BusinessDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	business := mapBusinessDocument(doc)
	return &business, nil
}

// FindIDByOwner returns the identifier of the listing owned by the account,
// or ErrNotFound when the account has not registered one yet.
func (r *BusinessRepository) FindIDByOwner(ctx context.Context, ownerID string) (string, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", application.ErrNotFound
		}
		return "", err
	}
	return doc.ID.Hex(), nil
}

// Insert stores a new listing and returns the assigned identifier.
func (r *BusinessRepository) Insert(ctx context.Context, business *domain.Business) (string, error) {
	doc := mapBusinessToDocument(business)
	doc.ID = primitive.NewObjectID()

	now := time.Now().UTC()
	createdAt := business.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	doc.CreatedAt = &createdAt
	doc.UpdatedAt = &now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

// Update replaces an existing listing document.
func (r *BusinessRepository) Update(ctx context.Context, business *domain.Business) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(business.ID))
	if err != nil {
		return application.ErrNotFound
	}

	doc := mapBusinessToDocument(business)
	doc.ID = objectID
	if !business.CreatedAt.IsZero() {
		createdAt := business.CreatedAt
		doc.CreatedAt = &createdAt
	}
	now := time.Now().UTC()
	doc.UpdatedAt = &now

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

func mapBusinessDocument(doc BusinessDocument) domain.Business {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}
	updatedAt := time.Time{}
	if doc.UpdatedAt != nil {
		updatedAt = *doc.UpdatedAt
	}

	var coords *domain.Coordinates
	if doc.Coordinates != nil {
		coords = &domain.Coordinates{Lat: doc.Coordinates.Lat, Lng: doc.Coordinates.Lng}
	}

	var hours domain.WeeklyHours
	if len(doc.Hours) > 0 {
		hours = make(domain.WeeklyHours, len(doc.Hours))
		for day, schedule := range doc.Hours {
			hours[day] = domain.DaySchedule{
				Open:   schedule.Open,
				Close:  schedule.Close,
				Closed: schedule.Closed,
			}
		}
	}

	return domain.Business{
		ID:          doc.ID.Hex(),
		OwnerID:     doc.OwnerID,
		Name:        doc.Name,
		Category:    doc.Category,
		Description: doc.Description,
		Address:     doc.Address,
		Department:  doc.Department,
		City:        doc.City,
		Phone:       doc.Phone,
		WhatsApp:    doc.WhatsApp,
		Email:       doc.Email,
		Website:     doc.Website,
		Rating:      doc.Rating,
		Reviews:     doc.Reviews,
		ImageURL:    doc.ImageURL,
		Gallery:     append([]string{}, doc.Gallery...),
		Verified:    doc.Verified,
		Tags:        append([]string{}, doc.Tags...),
		Hours:       hours,
		Coordinates: coords,
		Status:      doc.Status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

func mapBusinessToDocument(business *domain.Business) BusinessDocument {
	var coords *CoordinatesDocument
	if business.Coordinates != nil {
		coords = &CoordinatesDocument{Lat: business.Coordinates.Lat, Lng: business.Coordinates.Lng}
	}

	var hours map[string]DayDocument
	if len(business.Hours) > 0 {
		hours = make(map[string]DayDocument, len(business.Hours))
		for day, schedule := range business.Hours {
			hours[day] = DayDocument{
				Open:   schedule.Open,
				Close:  schedule.Close,
				Closed: schedule.Closed,
			}
		}
	}

	return BusinessDocument{
		OwnerID:     business.OwnerID,
		Name:        strings.TrimSpace(business.Name),
		Category:    business.Category,
		Description: business.Description,
		Address:     business.Address,
		Department:  business.Department,
		City:        business.City,
		Phone:       business.Phone,
		WhatsApp:    business.WhatsApp,
		Email:       business.Email,
		Website:     business.Website,
		Rating:      business.Rating,
		Reviews:     business.Reviews,
		ImageURL:    business.ImageURL,
		Gallery:     append([]string{}, business.Gallery...),
		Verified:    business.Verified,
		Tags:        append([]string{}, business.Tags...),
		Hours:       hours,
		Coordinates: coords,
		Status:      business.Status,
	}
}
