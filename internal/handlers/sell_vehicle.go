package handlers

import (
	"context"
	"fmt"
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

type sellVehicleRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	VehicleBrand  string  `json:"vehicleBrand"`
	VehicleModel  string  `json:"vehicleModel"`
	Year          int     `json:"year"`
	KmDriven      int     `json:"kmDriven"`
	ExpectedPrice float64 `json:"expectedPrice"`
	Condition     string  `json:"condition"`
	Description   string  `json:"description"`
}

// validateSellVehicleInput checks the submission rules in order and returns
// the first failing rule's message.
func validateSellVehicleInput(req sellVehicleRequest, now time.Time) (string, bool) {
	missing := []string{}
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if req.VehicleBrand == "" {
		missing = append(missing, "vehicleBrand")
	}
	if req.VehicleModel == "" {
		missing = append(missing, "vehicleModel")
	}
	if req.Year == 0 {
		missing = append(missing, "year")
	}
	if req.KmDriven == 0 {
		missing = append(missing, "kmDriven")
	}
	if req.ExpectedPrice == 0 {
		missing = append(missing, "expectedPrice")
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", "), false
	}

	if !validEmail(req.Email) {
		return "Invalid email format", false
	}
	if !validPhone(req.Phone) {
		return "Phone number must be 10 digits", false
	}

	currentYear := now.Year()
	if req.Year < 1990 || req.Year > currentYear {
		return fmt.Sprintf("Year must be between 1990 and %d", currentYear), false
	}
	if req.KmDriven < 0 {
		return "Kilometers driven cannot be negative", false
	}
	if req.ExpectedPrice < 1000 {
		return "Expected price must be at least ₹1000", false
	}
	return "", true
}

// normalizeCondition falls back to "good" for missing or unrecognized
// conditions.
func normalizeCondition(condition string) string {
	condition = strings.ToLower(strings.TrimSpace(condition))
	if validStatus(condition, models.SellVehicleConditions) {
		return condition
	}
	return "good"
}

// SubmitSellVehicle records a seller's offer owned by the authenticated user.
func SubmitSellVehicle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		var req sellVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "SELLVEHICLE", "Invalid request body")
			return
		}

		if message, ok := validateSellVehicleInput(req, time.Now()); !ok {
			respondWithError(c, http.StatusBadRequest, "SELLVEHICLE", message)
			return
		}

		now := time.Now()
		sellVehicle := models.SellVehicle{
			Name:          strings.TrimSpace(req.Name),
			Email:         strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:         strings.TrimSpace(req.Phone),
			VehicleBrand:  strings.TrimSpace(req.VehicleBrand),
			VehicleModel:  strings.TrimSpace(req.VehicleModel),
			Year:          req.Year,
			KmDriven:      req.KmDriven,
			ExpectedPrice: req.ExpectedPrice,
			Condition:     normalizeCondition(req.Condition),
			Description:   req.Description,
			Status:        models.SellVehicleStatusPending,
			UserID:        user.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("sellvehicles").InsertOne(ctx, sellVehicle)
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] insert submission failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error submitting vehicle for sale")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			sellVehicle.ID = id
		}

		log.Println("[SELLVEHICLE] [INFO] submission received:", sellVehicle.VehicleBrand, sellVehicle.VehicleModel)
		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"message":     "Vehicle submission received successfully. Our team will contact you within 24 hours.",
			"sellVehicle": sellVehicle,
		})
	}
}

// GetAllSellVehicles lists every submission, newest-first.
func GetAllSellVehicles(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "SELLVEHICLE", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		sellVehicles, err := findSellVehicles(ctx, db, bson.M{}, opts)
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] list submissions failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error fetching vehicle submissions")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"sellVehicles": sellVehicles,
		})
	}
}

// GetSellVehicleByID fetches one submission. Public.
func GetSellVehicleByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "SELLVEHICLE", "Vehicle submission not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var sellVehicle models.SellVehicle
		err = db.Collection("sellvehicles").FindOne(ctx, bson.M{"_id": id}).Decode(&sellVehicle)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "SELLVEHICLE", "Vehicle submission not found")
			return
		}
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] submission lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error fetching vehicle submission")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"sellVehicle": sellVehicle,
		})
	}
}

// GetUserSellVehicles lists the path user's submissions. The requester must
// be that user.
func GetUserSellVehicles(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		user, filter, ok := userSubmissionFilter(c)
		if !ok {
			return
		}

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "SELLVEHICLE", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		sellVehicles, err := findSellVehicles(ctx, db, filter, opts)
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] list user submissions failed for", user.ID.Hex(), ":", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error fetching user vehicle submissions")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"sellVehicles": sellVehicles,
		})
	}
}

// GetUserSoldVehicles lists the path user's submissions that reached the sold
// state.
func GetUserSoldVehicles(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		user, filter, ok := userSubmissionFilter(c)
		if !ok {
			return
		}
		filter["status"] = models.SellVehicleStatusSold

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "SELLVEHICLE", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		soldVehicles, err := findSellVehicles(ctx, db, filter, opts)
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] list sold vehicles failed for", user.ID.Hex(), ":", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error fetching sold vehicles")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"soldVehicles": soldVehicles,
		})
	}
}

// UpdateSellVehicleStatus moves a submission between lifecycle states.
func UpdateSellVehicleStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil || !validStatus(req.Status, models.SellVehicleStatuses) {
			respondWithError(c, http.StatusBadRequest, "SELLVEHICLE", "Invalid status")
			return
		}

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "SELLVEHICLE", "Vehicle submission not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var sellVehicle models.SellVehicle
		err = db.Collection("sellvehicles").FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&sellVehicle)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "SELLVEHICLE", "Vehicle submission not found")
			return
		}
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] status update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error updating vehicle submission status")
			return
		}

		log.Println("[SELLVEHICLE] [INFO] status set to", req.Status, "for", id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Vehicle submission status updated successfully",
			"sellVehicle": sellVehicle,
		})
	}
}

// DeleteSellVehicle removes a submission outright. Unlike test rides this is
// a hard delete.
func DeleteSellVehicle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "SELLVEHICLE")

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "SELLVEHICLE", "Vehicle submission not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = db.Collection("sellvehicles").FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "SELLVEHICLE", "Vehicle submission not found")
			return
		}
		if err != nil {
			log.Println("[SELLVEHICLE] [ERROR] delete submission failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SELLVEHICLE", "Error deleting vehicle submission")
			return
		}

		log.Println("[SELLVEHICLE] [INFO] submission deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Vehicle submission deleted successfully",
		})
	}
}

// userSubmissionFilter enforces the ownership rule for "by user" listings:
// the requester must be the path user or the request is rejected with 403.
func userSubmissionFilter(c *gin.Context) (*models.User, bson.M, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
		return nil, nil, false
	}
	if c.Param("userId") != user.ID.Hex() {
		respondWithError(c, http.StatusForbidden, "SELLVEHICLE", "Access denied")
		return nil, nil, false
	}
	return user, bson.M{"userId": user.ID}, true
}

func findSellVehicles(ctx context.Context, db *mongo.Database, filter bson.M, opts *options.FindOptions) ([]models.SellVehicle, error) {
	cursor, err := db.Collection("sellvehicles").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sellVehicles := []models.SellVehicle{}
	if err := cursor.All(ctx, &sellVehicles); err != nil {
		return nil, err
	}
	return sellVehicles, nil
}
