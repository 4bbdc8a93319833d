package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/counterpoint-api/internal/logger"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes
func respondError(c *gin.Context, err error, action string) {
	var inputErr *services.InputError
	switch {
	case errors.As(err, &inputErr):
		body := gin.H{"error": inputErr.Error()}
		if inputErr.Hint != "" {
			body["hint"] = inputErr.Hint
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, services.ErrCantusNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCantusExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to " + action,
			"request_id": c.GetString("request_id"),
		})
	}
}
