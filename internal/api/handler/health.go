package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	searchEnabled bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(searchEnabled bool) *HealthHandler {
	return &HealthHandler{searchEnabled: searchEnabled}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"search": h.searchEnabled,
	})
}
