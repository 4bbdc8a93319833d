package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API and its database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	healthy := "healthy"
	if status != http.StatusOK {
		healthy = "degraded"
	}
	c.JSON(status, gin.H{
		"status":   healthy,
		"database": dbStatus,
	})
}
