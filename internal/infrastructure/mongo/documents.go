package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessDocument is the MongoDB schema for a directory listing.
type BusinessDocument struct {
	ID          primitive.ObjectID     `bson:"_id"`
	OwnerID     string                 `bson:"ownerId,omitempty"`
	Name        string                 `bson:"name"`
	Category    string                 `bson:"category"`
	Description string                 `bson:"description,omitempty"`
	Address     string                 `bson:"address,omitempty"`
	Department  string                 `bson:"department,omitempty"`
	City        string                 `bson:"city,omitempty"`
	Phone       string                 `bson:"phone,omitempty"`
	WhatsApp    string                 `bson:"whatsapp,omitempty"`
	Email       string                 `bson:"email,omitempty"`
	Website     string                 `bson:"website,omitempty"`
	Rating      float64                `bson:"rating"`
	Reviews     int                    `bson:"reviews"`
	ImageURL    string                 `bson:"imageURL,omitempty"`
	Gallery     []string               `bson:"gallery,omitempty"`
	Verified    bool                   `bson:"verified"`
	Tags        []string               `bson:"tags,omitempty"`
	Hours       map[string]DayDocument `bson:"workingHours,omitempty"`
	Coordinates *CoordinatesDocument   `bson:"coordinates,omitempty"`
	Status      string                 `bson:"status"`
	CreatedAt   *time.Time             `bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time             `bson:"updatedAt,omitempty"`
}

// DayDocument is one weekday's schedule inside workingHours.
type DayDocument struct {
	Open   string `bson:"open,omitempty"`
	Close  string `bson:"close,omitempty"`
	Closed bool   `bson:"closed,omitempty"`
}

// CoordinatesDocument embeds the listing's geocoded point.
type CoordinatesDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

// UserDocument is the MongoDB schema for a directory account.
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	PasswordHash []byte             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
