package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wheelio/rental-backend/internal/auth"
	"github.com/wheelio/rental-backend/internal/models"
)

// Context keys populated by Authenticate.
const (
	ContextAccountID = "accountId"
	ContextRole      = "role"
)

// SessionCookie is the name of the session cookie set at login.
const SessionCookie = "auth_token"

// Authenticate validates the session token (cookie first, Authorization
// header as fallback) and attaches {accountId, role} to the request context.
func Authenticate(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			token = c.GetHeader("Authorization")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role claim differs from required. This is
// the single authorization gate in front of every mutating operation.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if role.(models.Role) != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Unauthorized action. Only showroom owners can perform this action.",
			})
			return
		}
		c.Next()
	}
}

// AccountID extracts the caller's account id from the request context.
func AccountID(c *gin.Context) string {
	return c.GetString(ContextAccountID)
}

// Role extracts the caller's role from the request context.
func Role(c *gin.Context) models.Role {
	if role, ok := c.Get(ContextRole); ok {
		return role.(models.Role)
	}
	return ""
}
