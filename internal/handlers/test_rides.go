package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/middleware"
	"backend/internal/models"
)

type testRideRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	VehicleID int    `json:"vehicleId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Showroom  string `json:"showroom"`
	UserID    string `json:"userId"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// validateTestRideInput returns a client-facing message when the booking
// request is invalid.
func validateTestRideInput(req testRideRequest) (string, bool) {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.VehicleID == 0 ||
		req.Date == "" || req.Time == "" || req.Showroom == "" {
		return "All fields are required", false
	}
	if !validEmail(req.Email) {
		return "Invalid email format", false
	}
	if !validPhone(req.Phone) {
		return "Phone number must be 10 digits", false
	}
	return "", true
}

// parseRideDate accepts RFC 3339 timestamps and bare dates.
func parseRideDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// BookTestRide creates a booking in the pending state. The route is public;
// userId is an optional weak reference supplied by the client.
func BookTestRide(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "TESTRIDE")

		var req testRideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "TESTRIDE", "All fields are required")
			return
		}

		if message, ok := validateTestRideInput(req); !ok {
			respondWithError(c, http.StatusBadRequest, "TESTRIDE", message)
			return
		}

		date, err := parseRideDate(req.Date)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "TESTRIDE", "Invalid date format")
			return
		}

		now := time.Now()
		testRide := models.TestRide{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			VehicleID: req.VehicleID,
			Date:      date,
			Time:      req.Time,
			Showroom:  req.Showroom,
			Status:    models.TestRideStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID)); err == nil {
			testRide.UserID = &userID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("testrides").InsertOne(ctx, testRide)
		if err != nil {
			log.Println("[TESTRIDE] [ERROR] insert booking failed:", err)
			respondWithError(c, http.StatusInternalServerError, "TESTRIDE", "Error booking test ride")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			testRide.ID = id
		}

		log.Println("[TESTRIDE] [INFO] test ride booked for vehicle:", req.VehicleID)
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Test ride booked successfully",
			"testRide": testRide,
		})
	}
}

// GetAllTestRides lists every booking, newest-first.
func GetAllTestRides(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "TESTRIDE")

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "TESTRIDE", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		testRides, err := findTestRides(ctx, db, bson.M{}, opts)
		if err != nil {
			log.Println("[TESTRIDE] [ERROR] list bookings failed:", err)
			respondWithError(c, http.StatusInternalServerError, "TESTRIDE", "Error fetching test rides")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"testRides": testRides,
		})
	}
}

// GetUserTestRides lists the path user's bookings. The requester must be that
// user.
func GetUserTestRides(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "TESTRIDE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		if c.Param("userId") != user.ID.Hex() {
			respondWithError(c, http.StatusForbidden, "TESTRIDE", "Access denied")
			return
		}

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "TESTRIDE", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		testRides, err := findTestRides(ctx, db, bson.M{"userId": user.ID}, opts)
		if err != nil {
			log.Println("[TESTRIDE] [ERROR] list user bookings failed:", err)
			respondWithError(c, http.StatusInternalServerError, "TESTRIDE", "Error fetching user test rides")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"testRides": testRides,
		})
	}
}

// GetTestRideByID fetches one booking.
func GetTestRideByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "TESTRIDE")

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "TESTRIDE", "Test ride not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var testRide models.TestRide
		err = db.Collection("testrides").FindOne(ctx, bson.M{"_id": id}).Decode(&testRide)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "TESTRIDE", "Test ride not found")
			return
		}
		if err != nil {
			log.Println("[TESTRIDE] [ERROR] booking lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "TESTRIDE", "Error fetching test ride")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"testRide": testRide,
		})
	}
}

// UpdateTestRideStatus moves a booking between lifecycle states. Values off
// the enum are rejected and leave the stored status untouched.
func UpdateTestRideStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "TESTRIDE")

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil || !validStatus(req.Status, models.TestRideStatuses) {
			respondWithError(c, http.StatusBadRequest, "TESTRIDE", "Invalid status")
			return
		}

		testRide, status, message := setTestRideStatus(c, db, req.Status)
		if message != "" {
			respondWithError(c, status, "TESTRIDE", message)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Test ride status updated successfully",
			"testRide": testRide,
		})
	}
}

// CancelTestRide soft-cancels a booking: a status transition to cancelled,
// never a delete.
func CancelTestRide(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "TESTRIDE")

		testRide, status, message := setTestRideStatus(c, db, models.TestRideStatusCancelled)
		if message != "" {
			respondWithError(c, status, "TESTRIDE", message)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Test ride cancelled successfully",
			"testRide": testRide,
		})
	}
}

func setTestRideStatus(c *gin.Context, db *mongo.Database, newStatus string) (*models.TestRide, int, string) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return nil, http.StatusNotFound, "Test ride not found"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var testRide models.TestRide
	err = db.Collection("testrides").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": newStatus, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testRide)
	if err == mongo.ErrNoDocuments {
		return nil, http.StatusNotFound, "Test ride not found"
	}
	if err != nil {
		log.Println("[TESTRIDE] [ERROR] status update failed:", err)
		return nil, http.StatusInternalServerError, "Error updating test ride status"
	}

	log.Println("[TESTRIDE] [INFO] status set to", newStatus, "for", id.Hex())
	return &testRide, http.StatusOK, ""
}

func findTestRides(ctx context.Context, db *mongo.Database, filter bson.M, opts *options.FindOptions) ([]models.TestRide, error) {
	cursor, err := db.Collection("testrides").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	testRides := []models.TestRide{}
	if err := cursor.All(ctx, &testRides); err != nil {
		return nil, err
	}
	return testRides, nil
}
