package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/davitama/storefront/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const UserContextKey = "userID"

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token, err := c.Cookie("access_token"); err == nil {
		return token
	}
	return ""
}

func resolveIdentity(c *gin.Context, tokens services.ITokenService) (uuid.UUID, bool) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return uuid.Nil, false
	}
	claims, err := tokens.ValidateToken(tokenStr, "access")
	if err != nil {
		return uuid.Nil, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(tokens services.ITokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveIdentity(c, tokens)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves identity when a valid token is present but lets
// guests through. The cart endpoints serve both modes.
func OptionalAuth(tokens services.ITokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveIdentity(c, tokens); ok {
			c.Set(UserContextKey, userID)
		}
		c.Next()
	}
}

// GetUserID extracts the signed-in user from the Gin context. Returns an
// error for guest requests.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}
