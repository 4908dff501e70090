package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errInvalidPagination = errors.New("invalid pagination params")

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// listOptions builds find options sorting newest-first on sortField, with an
// optional page/limit window from the query string. Without page or limit the
// whole collection is returned, matching the original endpoints.
func listOptions(c *gin.Context, sortField string) (*options.FindOptions, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	if pageStr == "" && limitStr == "" {
		return opts, nil
	}

	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return nil, errInvalidPagination
		}
		page = p
	}
	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return nil, errInvalidPagination
		}
		limit = l
	}

	opts.SetSkip((page - 1) * limit).SetLimit(limit)
	return opts, nil
}
