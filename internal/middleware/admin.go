package middleware

import (
	"net/http"

	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/gin-gonic/gin"
)

// AdminRequired ensures the caller may edit the cantus firmus catalog
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetCurrentUserID(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		role, _ := GetCurrentRole(c)
		if !models.CanEditCatalog(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
