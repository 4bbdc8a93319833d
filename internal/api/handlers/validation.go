package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/counterpoint-api/internal/middleware"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ValidationHandler struct {
	service *services.ValidationService
}

func NewValidationHandler(service *services.ValidationService) *ValidationHandler {
	return &ValidationHandler{service: service}
}

// Validate checks a counterpoint against a cantus firmus. Structural
// failures such as a wrong length still return 200 with the result.
func (h *ValidationHandler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	v, err := h.service.Validate(c.Request.Context(), req, services.RequestMeta{
		RequestID: c.GetString("request_id"),
		UserID:    userID,
	})
	if err != nil {
		respondError(c, err, "validate exercise")
		return
	}

	c.JSON(http.StatusOK, v.Result)
}

// Stats returns aggregate numbers over all logged validations
func (h *ValidationHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "load validation stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
