package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spotbulle/pitchmatch/internal/api/middleware"
	"github.com/spotbulle/pitchmatch/internal/service"
)

// ProfileHandler handles astro profile endpoints.
type ProfileHandler struct {
	astro *service.AstroService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(astro *service.AstroService) *ProfileHandler {
	return &ProfileHandler{astro: astro}
}

type calculateRequest struct {
	BirthDate  string `json:"birth_date" binding:"required"`
	BirthTime  string `json:"birth_time"`
	BirthPlace string `json:"birth_place" binding:"required"`
}

// Calculate computes and stores the caller's astro profile from birth
// data. Recalculation overwrites the existing profile.
func (h *ProfileHandler) Calculate(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date and birth_place are required"})
		return
	}

	profile, err := h.astro.Calculate(c.Request.Context(), service.CalculateInput{
		UserID:     identity.UserID,
		BirthDate:  req.BirthDate,
		BirthTime:  req.BirthTime,
		BirthPlace: req.BirthPlace,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Get returns the caller's astro profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	profile, err := h.astro.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
