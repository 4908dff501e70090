package middleware

import (
	"context"
	"errors"
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

// UserIDHeader carries the caller's identity. The value is opaque and
// unsigned; the gate only checks that it resolves to a stored user. Swap the
// lookup for a token verifier to strengthen this without touching handlers.
const UserIDHeader = "User-Id"

const userContextKey = "authUser"

// ErrUserNotFound is returned by a UserLookup when the identifier resolves to
// no stored user.
var ErrUserNotFound = errors.New("user not found")

// UserLookup resolves a user identifier to the stored account.
type UserLookup func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// MongoUserLookup is the production lookup against the users collection.
func MongoUserLookup(db *mongo.Database) UserLookup {
	return func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
}

// UserAuth resolves the User-Id header to a stored user and injects it into
// the context. Missing and unresolvable identifiers both abort with 401;
// storage faults abort with 500.
func UserAuth(lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			log.Println("[AUTH] [ERROR] user id header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			log.Println("[AUTH] [ERROR] malformed user id header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := lookup(ctx, userID)
		if errors.Is(err, ErrUserNotFound) {
			log.Println("[AUTH] [ERROR] user id does not resolve:", raw)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] user lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by UserAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
