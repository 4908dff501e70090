package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one vehicle rating by one user. UserName is denormalized from the
// author at write time. Nothing prevents a user submitting several reviews for
// the same vehicle.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID int                `bson:"vehicleId" json:"vehicleId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName" json:"userName"`
	Rating    int                `bson:"rating" json:"rating"`
	Title     string             `bson:"title" json:"title"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
