package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
)

// AuthRequired validates the Authorization: Bearer token and stores the
// authenticated user's identity in the gin context.
func AuthRequired(manager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed Authorization header"})
			return
		}

		claims, err := manager.ParseAndValidate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or empty when the request
// did not pass AuthRequired.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetUserEmail returns the authenticated user's email, or empty.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
