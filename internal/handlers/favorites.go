package handlers

import (
	"context"
	"log"
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

type favoriteRequest struct {
	VehicleID    int     `json:"vehicleId" binding:"required"`
	VehicleName  string  `json:"vehicleName" binding:"required"`
	VehicleBrand string  `json:"vehicleBrand" binding:"required"`
	VehiclePrice float64 `json:"vehiclePrice" binding:"required"`
	VehicleImage string  `json:"vehicleImage" binding:"required"`
}

// AddFavorite inserts a (user, vehicle) pairing. The existence check gives a
// friendly conflict message; the unique index catches concurrent duplicates.
func AddFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FAVORITE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		var req favoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[FAVORITE] [ERROR] invalid favorite body:", err)
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "vehicleId and vehicle display fields are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		favorites := db.Collection("favorites")

		count, err := favorites.CountDocuments(ctx, bson.M{
			"userId":    user.ID,
			"vehicleId": req.VehicleID,
		})
		if err != nil {
			log.Println("[FAVORITE] [ERROR] favorite existence check failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "Vehicle already in favorites")
			return
		}

		favorite := models.Favorite{
			UserID:       user.ID,
			VehicleID:    req.VehicleID,
			VehicleName:  req.VehicleName,
			VehicleBrand: req.VehicleBrand,
			VehiclePrice: req.VehiclePrice,
			VehicleImage: req.VehicleImage,
			AddedAt:      time.Now(),
		}

		res, err := favorites.InsertOne(ctx, favorite)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusBadRequest, "FAVORITE", "Vehicle already in favorites")
				return
			}
			log.Println("[FAVORITE] [ERROR] add favorite failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			favorite.ID = id
		}

		log.Println("[FAVORITE] [INFO] favorite added:", req.VehicleID)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Vehicle added to favorites",
			"favorite": favorite,
		})
	}
}

// RemoveFavorite deletes the pairing for the path vehicle id.
func RemoveFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FAVORITE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "Invalid vehicle id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = db.Collection("favorites").FindOneAndDelete(ctx, bson.M{
			"userId":    user.ID,
			"vehicleId": vehicleID,
		}).Err()
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "FAVORITE", "Favorite not found")
			return
		}
		if err != nil {
			log.Println("[FAVORITE] [ERROR] remove favorite failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}

		log.Println("[FAVORITE] [INFO] favorite removed:", vehicleID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Vehicle removed from favorites",
		})
	}
}

// GetUserFavorites lists the requester's favorites newest-first.
func GetUserFavorites(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FAVORITE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		opts, err := listOptions(c, "addedAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("favorites").Find(ctx, bson.M{"userId": user.ID}, opts)
		if err != nil {
			log.Println("[FAVORITE] [ERROR] list favorites failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}
		defer cursor.Close(ctx)

		favorites := []models.Favorite{}
		if err := cursor.All(ctx, &favorites); err != nil {
			log.Println("[FAVORITE] [ERROR] decode favorites failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"favorites": favorites,
		})
	}
}

// CheckFavorite reports whether the path vehicle is favorited by the
// requester.
func CheckFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FAVORITE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "Invalid vehicle id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("favorites").CountDocuments(ctx, bson.M{
			"userId":    user.ID,
			"vehicleId": vehicleID,
		})
		if err != nil {
			log.Println("[FAVORITE] [ERROR] favorite check failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"isFavorited": count > 0,
		})
	}
}

// ToggleFavorite removes the pairing when present, otherwise creates it. The
// check-then-act pair is not atomic; a duplicate-key rejection from the index
// is reported as the conflict it is.
func ToggleFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FAVORITE")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		var req favoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[FAVORITE] [ERROR] invalid favorite body:", err)
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "vehicleId and vehicle display fields are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		favorites := db.Collection("favorites")
		pair := bson.M{"userId": user.ID, "vehicleId": req.VehicleID}

		count, err := favorites.CountDocuments(ctx, pair)
		if err != nil {
			log.Println("[FAVORITE] [ERROR] toggle check failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}

		if count > 0 {
			if _, err := favorites.DeleteOne(ctx, pair); err != nil {
				log.Println("[FAVORITE] [ERROR] toggle remove failed:", err)
				respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
				return
			}
			log.Println("[FAVORITE] [INFO] favorite toggled off:", req.VehicleID)
			c.JSON(http.StatusOK, gin.H{
				"success":     true,
				"message":     "Vehicle removed from favorites",
				"isFavorited": false,
			})
			return
		}

		favorite := models.Favorite{
			UserID:       user.ID,
			VehicleID:    req.VehicleID,
			VehicleName:  req.VehicleName,
			VehicleBrand: req.VehicleBrand,
			VehiclePrice: req.VehiclePrice,
			VehicleImage: req.VehicleImage,
			AddedAt:      time.Now(),
		}

		res, err := favorites.InsertOne(ctx, favorite)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusBadRequest, "FAVORITE", "Vehicle already in favorites")
				return
			}
			log.Println("[FAVORITE] [ERROR] toggle add failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "Server error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			favorite.ID = id
		}

		log.Println("[FAVORITE] [INFO] favorite toggled on:", req.VehicleID)
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Vehicle added to favorites",
			"isFavorited": true,
			"favorite":    favorite,
		})
	}
}
