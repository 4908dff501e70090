package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite pairs a user with a vehicle from the catalog. Vehicle display
// fields are denormalized so favorite lists render without a catalog lookup;
// they may drift from the catalog and that is accepted.
// (userId, vehicleId) is unique per the index in database.EnsureFavoriteIndexes.
type Favorite struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	VehicleID    int                `bson:"vehicleId" json:"vehicleId"`
	VehicleName  string             `bson:"vehicleName" json:"vehicleName"`
	VehicleBrand string             `bson:"vehicleBrand" json:"vehicleBrand"`
	VehiclePrice float64            `bson:"vehiclePrice" json:"vehiclePrice"`
	VehicleImage string             `bson:"vehicleImage" json:"vehicleImage"`
	AddedAt      time.Time          `bson:"addedAt" json:"addedAt"`
}
