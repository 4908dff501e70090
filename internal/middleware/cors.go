package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS restricts browser callers to the configured origin allow-list with
// credentials enabled. Requests without an Origin header (curl, mobile apps)
// are passed through untouched.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", UserIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
