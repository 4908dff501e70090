package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/middleware"
	"backend/internal/models"
)

type reviewRequest struct {
	VehicleID int     `json:"vehicleId"`
	Rating    float64 `json:"rating"`
	Title     string  `json:"title"`
	Comment   string  `json:"comment"`
}

// validReviewRating accepts whole numbers from 1 to 5.
func validReviewRating(rating float64) bool {
	return rating >= 1 && rating <= 5 && rating == math.Trunc(rating)
}

// GetVehicleReviews lists every review for a vehicle, newest-first. Public.
func GetVehicleReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "REVIEW")

		vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vehicle id"})
			return
		}

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pagination params"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("reviews").Find(ctx, bson.M{"vehicleId": vehicleID}, opts)
		if err != nil {
			log.Println("[REVIEW] [ERROR] list reviews failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		reviews := []models.Review{}
		if err := cursor.All(ctx, &reviews); err != nil {
			log.Println("[REVIEW] [ERROR] decode reviews failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}

// CreateReview stores one rating by the authenticated user. The author name
// is denormalized at write time; nothing stops repeat reviews for the same
// vehicle.
func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "REVIEW")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}

		if req.VehicleID == 0 || req.Rating == 0 || req.Title == "" || req.Comment == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		if !validReviewRating(req.Rating) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 1 and 5"})
			return
		}

		now := time.Now()
		review := models.Review{
			VehicleID: req.VehicleID,
			UserID:    user.ID,
			UserName:  user.Name,
			Rating:    int(req.Rating),
			Title:     req.Title,
			Comment:   req.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			log.Println("[REVIEW] [ERROR] insert review failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			review.ID = id
		}

		log.Println("[REVIEW] [INFO] review added for vehicle:", req.VehicleID)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Review added successfully",
			"review":  review,
		})
	}
}

// GetUserReview returns the requester's review for a vehicle, if any.
func GetUserReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "REVIEW")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vehicle id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var review models.Review
		err = db.Collection("reviews").FindOne(ctx, bson.M{
			"vehicleId": vehicleID,
			"userId":    user.ID,
		}).Decode(&review)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
			return
		}
		if err != nil {
			log.Println("[REVIEW] [ERROR] user review lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"review": review})
	}
}
