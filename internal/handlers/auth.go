package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/middleware"
	"backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// registerFieldMessages mirrors the validation wording clients already expect.
var registerFieldMessages = map[string]string{
	"name":     "Name is required",
	"phone":    "Phone number is required",
	"email":    "Valid email is required",
	"password": "Password must be at least 6 characters",
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			if message, ok := registerFieldMessages[field]; ok {
				details = append(details, message)
				continue
			}
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "min":
				details = append(details, fmt.Sprintf("%s is too short", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// Register creates a user account. Email and phone are globally unique; the
// handler checks first for a friendly message and the unique indexes are the
// backstop under concurrent registrations.
func Register(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "AUTH")

		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		phone := strings.TrimSpace(req.Phone)
		name := strings.TrimSpace(req.Name)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		users := db.Collection("users")

		count, err := users.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register email check failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration", "error": err.Error()})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}

		count, err = users.CountDocuments(ctx, bson.M{"phone": phone})
		if err != nil {
			log.Println("[AUTH] [ERROR] register phone check failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration", "error": err.Error()})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register phone exists:", phone)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration", "error": err.Error()})
			return
		}

		now := time.Now()
		user := models.User{
			Name:         name,
			Phone:        phone,
			Email:        email,
			PasswordHash: string(hash),
			LoginHistory: []models.LoginRecord{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := users.InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost the race against a concurrent registration; the index
				// is the authoritative duplicate signal.
				c.JSON(http.StatusBadRequest, gin.H{"message": duplicateUserMessage(err)})
				return
			}
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration", "error": err.Error()})
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			user.ID = id
		}
		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    user,
		})
	}
}

func duplicateUserMessage(err error) string {
	if strings.Contains(err.Error(), "phone") {
		return "Phone number already exists"
	}
	return "Email already exists"
}

// Login authenticates by email or phone (email takes precedence) and appends
// a login-history entry on success.
func Login(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "AUTH")

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation failed",
				"errors":  []string{"Password is required"},
			})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		phone := strings.TrimSpace(req.Phone)

		var filter bson.M
		switch {
		case email != "":
			filter = bson.M{"email": email}
		case phone != "":
			filter = bson.M{"phone": phone}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email or phone number is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		users := db.Collection("users")

		var user models.User
		if err := users.FindOne(ctx, filter).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] login no matching user")
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
				return
			}
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login", "error": err.Error()})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials:", user.Email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}

		record := newLoginRecord(c)
		user.LoginHistory = append(user.LoginHistory, record)
		user.UpdatedAt = record.Timestamp

		if _, err := users.UpdateByID(ctx, user.ID, bson.M{
			"$push": bson.M{"loginHistory": record},
			"$set":  bson.M{"updatedAt": user.UpdatedAt},
		}); err != nil {
			log.Println("[AUTH] [ERROR] login history append failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login", "error": err.Error()})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
		})
	}
}

// UpdateProfile applies only the name/email/phone fields present in the
// request body.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "AUTH")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		users := db.Collection("users")
		update := bson.M{}

		if req.Name != nil {
			user.Name = strings.TrimSpace(*req.Name)
			update["name"] = user.Name
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email != user.Email {
				count, err := users.CountDocuments(ctx, bson.M{
					"email": email,
					"_id":   bson.M{"$ne": user.ID},
				})
				if err != nil {
					log.Println("[AUTH] [ERROR] profile email check failed:", err)
					c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
					return
				}
				if count > 0 {
					c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
					return
				}
			}
			user.Email = email
			update["email"] = email
		}
		if req.Phone != nil {
			user.Phone = strings.TrimSpace(*req.Phone)
			update["phone"] = user.Phone
		}

		if len(update) > 0 {
			user.UpdatedAt = time.Now()
			update["updatedAt"] = user.UpdatedAt

			if _, err := users.UpdateByID(ctx, user.ID, bson.M{"$set": update}); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					c.JSON(http.StatusBadRequest, gin.H{"message": duplicateUserMessage(err)})
					return
				}
				log.Println("[AUTH] [ERROR] profile update failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
		}

		log.Println("[AUTH] [INFO] profile updated:", user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    user,
		})
	}
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "AUTH")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			log.Println("[AUTH] [ERROR] change password mismatch:", user.ID.Hex())
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] change password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"passwordHash": string(hash),
				"updatedAt":    time.Now(),
			},
		}); err != nil {
			log.Println("[AUTH] [ERROR] change password update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		log.Println("[AUTH] [INFO] password changed:", user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

// GetLoginHistory returns the user's login records newest-first. Sorting
// happens at read time; storage order is append order.
func GetLoginHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "AUTH")

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"loginHistory": sortLoginHistory(user.LoginHistory)})
	}
}

func sortLoginHistory(history []models.LoginRecord) []models.LoginRecord {
	sorted := make([]models.LoginRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}
