package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"inventory_system/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Context keys set by JWTAuthMiddleware
const (
	ClaimsKey = "user"   // *utils.Claims of the caller
	UserIDKey = "userID" // ID of the caller
)

// Messages returned when access is refused
const (
	MsgNoAccess     = "You don't have access to this endpoint"
	MsgInvalidToken = "Invalid token. Please log in again."
)

// JWTAuthMiddleware validates JWT tokens and extracts user information.
// The Authorization header may carry the raw token or "Bearer <token>".
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c.GetHeader("Authorization")) // Get token from the Authorization header
		// Check if a token is present
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MsgNoAccess})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Requested route
				"error": err.Error(),  // Parse failure
			}).Warn("Rejected token")
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MsgInvalidToken})
			return
		}
		c.Set(ClaimsKey, claims)    // Store claims in context
		c.Set(UserIDKey, claims.ID) // Store userID in context
		c.Next()                    // Proceed to the next handler
	}
}

// extractToken strips an optional Bearer scheme from the header value
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// ClaimsFrom returns the claims stored by JWTAuthMiddleware
func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
