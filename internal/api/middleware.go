package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/user"
)

// RequireSystemAdmin restricts a route to system admin accounts. It must run
// after auth.AuthRequired so the user ID is present in the context.
func RequireSystemAdmin(users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.GetUserID(c)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), id)
		switch {
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		case !u.IsSystemAdmin:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "system admin access required"})
		default:
			c.Next()
		}
	}
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
