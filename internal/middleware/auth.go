package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"billtrack/internal/pkg/response"
	"billtrack/internal/pkg/token"
)

const ContextUserIDKey = "user_id"

// Authenticator resolves a bearer token string to its verified claims.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*token.Claims, error)
}

// TokenAuth guards every protected route. The identity is resolved once
// here and handed to handlers through the gin context.
func TokenAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Fail(c, http.StatusUnauthorized, "Missing authorization header.")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Fail(c, http.StatusUnauthorized, "Invalid authorization header.")
			c.Abort()
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or revoked token.")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
