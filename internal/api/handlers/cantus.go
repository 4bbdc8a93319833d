package handlers

import (
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/counterpoint-api/internal/logger"
	"github.com/Conceptual-Machines/counterpoint-api/internal/middleware"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CantusHandler struct {
	service *services.CantusService
}

func NewCantusHandler(service *services.CantusService) *CantusHandler {
	return &CantusHandler{service: service}
}

// List returns stored cantus firmi, optionally filtered by mode, key and max_length
func (h *CantusHandler) List(c *gin.Context) {
	filter := services.CantusFilter{
		Mode: c.Query("mode"),
		Key:  c.Query("key"),
	}
	if raw := c.Query("max_length"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxQueryLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_length must be between 1 and " + strconv.Itoa(maxQueryLength)})
			return
		}
		filter.MaxLength = n
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "list cantus firmi")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cantus_firmi": list, "count": len(list)})
}

// Show returns one cantus firmus
func (h *CantusHandler) Show(c *gin.Context) {
	cf, err := h.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "load cantus firmus")
		return
	}
	c.JSON(http.StatusOK, cf)
}

// Create adds a cantus firmus to the catalog
func (h *CantusHandler) Create(c *gin.Context) {
	var req models.CantusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Notes) > maxCantusNotes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many notes, the limit is " + strconv.Itoa(maxCantusNotes)})
		return
	}

	cf := &models.CantusFirmus{
		Slug:   req.Slug,
		Title:  req.Title,
		Source: req.Source,
		Key:    req.Key,
		Mode:   req.Mode,
		Notes:  req.Notes,
	}
	if err := h.service.Create(c.Request.Context(), cf); err != nil {
		respondError(c, err, "create cantus firmus")
		return
	}

	fields := logger.WithContext(c)
	fields["slug"] = cf.Slug
	logger.Info("Cantus firmus created", fields)

	c.JSON(http.StatusCreated, cf)
}

// Delete removes a cantus firmus; only admins may delete
func (h *CantusHandler) Delete(c *gin.Context) {
	role, _ := middleware.GetCurrentRole(c)
	if !models.CanDeleteFromCatalog(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	slug := c.Param("slug")
	if err := h.service.Delete(c.Request.Context(), slug); err != nil {
		respondError(c, err, "delete cantus firmus")
		return
	}

	fields := logger.WithContext(c)
	fields["slug"] = slug
	logger.Info("Cantus firmus deleted", fields)

	c.JSON(http.StatusOK, gin.H{"message": "Cantus firmus deleted", "slug": slug})
}
