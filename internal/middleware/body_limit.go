package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request payloads at 10MB.
const MaxBodyBytes = 10 << 20

// BodyLimit rejects oversized request bodies. Reads past the cap make the
// handler's bind fail, which surfaces as an invalid-body 400.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		c.Next()
	}
}
