package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meetingroom/internal/pkg/jwt"
	"meetingroom/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores user_id and role on the context.
func JWTAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Empty token")
			c.Abort()
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

// UserID returns the authenticated user id set by JWTAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == jwt.RoleAdmin
}

// AdminOnly must run after JWTAuth. A request that never went through
// JWTAuth has no role and is treated as unauthenticated.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxRole); !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		if !IsAdmin(c) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
