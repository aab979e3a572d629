package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urbanfix/urbanfix/models"
	"github.com/urbanfix/urbanfix/utils"
)

// AuthMiddleware verifies the session token. The browser client sends it as
// the "token" cookie; the CLI client sends a Bearer header. Either works.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		}
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		claims, err := utils.ValidateToken(tokenStr, os.Getenv("JWT_SECRET"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to a single role. It must run after
// AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get("role")
		if !ok || roleVal.(string) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the authenticated session carries the admin role.
func IsAdmin(c *gin.Context) bool {
	roleVal, ok := c.Get("role")
	return ok && roleVal.(string) == string(models.RoleAdmin)
}

// SessionUsername returns the authenticated username, or "" when the request
// is unauthenticated.
func SessionUsername(c *gin.Context) string {
	v, ok := c.Get("username")
	if !ok {
		return ""
	}
	return v.(string)
}
