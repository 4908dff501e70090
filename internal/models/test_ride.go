package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Test ride booking statuses. Cancelling a booking is a transition to
// StatusCancelled, never a delete.
const (
	TestRideStatusPending   = "pending"
	TestRideStatusConfirmed = "confirmed"
	TestRideStatusCancelled = "cancelled"
	TestRideStatusCompleted = "completed"
)

// TestRideStatuses lists every valid booking status.
var TestRideStatuses = []string{
	TestRideStatusPending,
	TestRideStatusConfirmed,
	TestRideStatusCancelled,
	TestRideStatusCompleted,
}

// TestRide is a booking request for a showroom test ride. UserID is a weak
// reference; bookings survive the owning account.
type TestRide struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Email     string              `bson:"email" json:"email"`
	Phone     string              `bson:"phone" json:"phone"`
	VehicleID int                 `bson:"vehicleId" json:"vehicleId"`
	Date      time.Time           `bson:"date" json:"date"`
	Time      string              `bson:"time" json:"time"`
	Showroom  string              `bson:"showroom" json:"showroom"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Status    string              `bson:"status" json:"status"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
