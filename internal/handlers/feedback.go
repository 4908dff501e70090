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

	"backend/internal/models"
)

type feedbackRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Subject      string `json:"subject" binding:"required"`
	Message      string `json:"message" binding:"required"`
	FeedbackType string `json:"feedbackType"`
	UserID       string `json:"userId"`
}

// normalizeFeedbackType falls back to "suggestion" for missing or
// unrecognized types.
func normalizeFeedbackType(feedbackType string) string {
	feedbackType = strings.ToLower(strings.TrimSpace(feedbackType))
	if validStatus(feedbackType, models.FeedbackTypes) {
		return feedbackType
	}
	return models.FeedbackTypeSuggestion
}

// SubmitFeedback stores a write-once customer message. No authentication; the
// optional userId is taken on trust as a weak reference.
func SubmitFeedback(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FEEDBACK")

		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[FEEDBACK] [ERROR] invalid feedback body:", err)
			respondWithError(c, http.StatusBadRequest, "FEEDBACK", "name, email, subject and message are required")
			return
		}

		feedback := models.Feedback{
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:        strings.TrimSpace(req.Phone),
			Subject:      strings.TrimSpace(req.Subject),
			Message:      req.Message,
			FeedbackType: normalizeFeedbackType(req.FeedbackType),
			CreatedAt:    time.Now(),
		}
		if userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID)); err == nil {
			feedback.UserID = &userID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("feedbacks").InsertOne(ctx, feedback)
		if err != nil {
			log.Println("[FEEDBACK] [ERROR] insert feedback failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FEEDBACK", "Error submitting feedback")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			feedback.ID = id
		}

		log.Println("[FEEDBACK] [INFO] feedback submitted:", feedback.FeedbackType)
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Feedback submitted successfully",
			"feedback": feedback,
		})
	}
}

// GetAllFeedback lists every feedback entry, newest-first.
func GetAllFeedback(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FEEDBACK")

		opts, err := listOptions(c, "createdAt")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "FEEDBACK", "Invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("feedbacks").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("[FEEDBACK] [ERROR] list feedback failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FEEDBACK", "Error fetching feedback")
			return
		}
		defer cursor.Close(ctx)

		feedbacks := []models.Feedback{}
		if err := cursor.All(ctx, &feedbacks); err != nil {
			log.Println("[FEEDBACK] [ERROR] decode feedback failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FEEDBACK", "Error fetching feedback")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"feedbacks": feedbacks,
		})
	}
}

// GetFeedbackByID fetches one feedback entry.
func GetFeedbackByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "FEEDBACK")

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "FEEDBACK", "Feedback not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var feedback models.Feedback
		err = db.Collection("feedbacks").FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "FEEDBACK", "Feedback not found")
			return
		}
		if err != nil {
			log.Println("[FEEDBACK] [ERROR] feedback lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FEEDBACK", "Error fetching feedback")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"feedback": feedback,
		})
	}
}
