package middleware

import (
	"net/http" // HTTP status codes
	"slices"   // Role membership

	"inventory_system/internal/domain" // Role names
	"inventory_system/internal/utils"  // JWT claims

	"github.com/gin-gonic/gin" // Gin web framework
)

// Guard decides whether the authenticated caller may continue
type Guard func(claims *utils.Claims) bool

// HasRole allows callers whose role is one of roles
func HasRole(roles ...string) Guard {
	return func(claims *utils.Claims) bool {
		return slices.Contains(roles, claims.Role)
	}
}

var (
	IsOperator    = HasRole(domain.RoleOperator)
	IsKoordinator = HasRole(domain.RoleKoordinator)
	IsAdmin       = HasRole(domain.RoleOperator, domain.RoleKoordinator)
)

// Authorize runs guards in order and aborts at the first rejection.
// It must be chained after JWTAuthMiddleware.
func Authorize(guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c) // Claims attached by JWTAuthMiddleware
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MsgNoAccess})
			return
		}
		for _, guard := range guards {
			if !guard(claims) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MsgNoAccess})
				return
			}
		}
		c.Next() // Every guard passed
	}
}

// AuthorizeOperator only lets operators through
func AuthorizeOperator() gin.HandlerFunc { return Authorize(IsOperator) }

// AuthorizeKoordinator only lets koordinators through
func AuthorizeKoordinator() gin.HandlerFunc { return Authorize(IsKoordinator) }

// AuthorizeAdmin lets operators and koordinators through
func AuthorizeAdmin() gin.HandlerFunc { return Authorize(IsAdmin) }

// Protect returns the full chain for a route group: token verification followed by the guards
func Protect(secret string, guards ...Guard) []gin.HandlerFunc {
	return []gin.HandlerFunc{JWTAuthMiddleware(secret), Authorize(guards...)}
}
