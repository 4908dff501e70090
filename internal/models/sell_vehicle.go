package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale submission statuses.
const (
	SellVehicleStatusPending   = "pending"
	SellVehicleStatusEvaluated = "evaluated"
	SellVehicleStatusQuoted    = "quoted"
	SellVehicleStatusSold      = "sold"
	SellVehicleStatusRejected  = "rejected"
)

// SellVehicleStatuses lists every valid submission status.
var SellVehicleStatuses = []string{
	SellVehicleStatusPending,
	SellVehicleStatusEvaluated,
	SellVehicleStatusQuoted,
	SellVehicleStatusSold,
	SellVehicleStatusRejected,
}

// SellVehicleConditions lists the accepted vehicle conditions.
var SellVehicleConditions = []string{"excellent", "good", "fair", "poor"}

// SellVehicle is a seller's offer to the dealership.
type SellVehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	VehicleBrand  string             `bson:"vehicleBrand" json:"vehicleBrand"`
	VehicleModel  string             `bson:"vehicleModel" json:"vehicleModel"`
	Year          int                `bson:"year" json:"year"`
	KmDriven      int                `bson:"kmDriven" json:"kmDriven"`
	ExpectedPrice float64            `bson:"expectedPrice" json:"expectedPrice"`
	Condition     string             `bson:"condition" json:"condition"`
	Description   string             `bson:"description" json:"description"`
	Status        string             `bson:"status" json:"status"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
