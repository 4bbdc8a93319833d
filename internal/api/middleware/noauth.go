package middleware

import (
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/gin-gonic/gin"
)

const anonymousUser = "anonymous"

// NoAuth is a pass-through middleware for AUTH_MODE=none (local development).
// Every caller is treated as an anonymous admin.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", anonymousUser)
		c.Set("user_role", models.RoleAdmin)
		c.Next()
	}
}
