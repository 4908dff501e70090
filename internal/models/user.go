package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRecord is a single entry in a user's login history. Location is a
// placeholder; no geolocation service is wired in.
type LoginRecord struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	IP        string    `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string    `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Device    string    `bson:"device,omitempty" json:"device,omitempty"`
	Browser   string    `bson:"browser,omitempty" json:"browser,omitempty"`
}

// User represents the application user account. Phone and Email are unique
// across the collection; PasswordHash is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone" json:"phone"`
	Email        string             `bson:"email" json:"email"`
	Email2       string             `bson:"email2,omitempty" json:"email2,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	LoginHistory []LoginRecord      `bson:"loginHistory" json:"loginHistory"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
