package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxUserIDKey is where RequireAuth stores the authenticated user's ID.
const CtxUserIDKey = "user_id"

// Authenticator resolves a bearer token to a user ID.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uint, error)
}

// RequireAuth guards protected routes. Any failure — missing header, bad
// token, revoked session — gets the same 401.
func RequireAuth(sessions Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		userID, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
