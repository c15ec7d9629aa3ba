package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spotbulle/pitchmatch/internal/api/middleware"
	"github.com/spotbulle/pitchmatch/internal/service"
)

// MatchHandler handles compatibility matching endpoints.
type MatchHandler struct {
	matching        *service.MatchService
	recommendations *service.RecommendationService
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(matching *service.MatchService, recommendations *service.RecommendationService) *MatchHandler {
	return &MatchHandler{matching: matching, recommendations: recommendations}
}

// Run scores the caller against the candidate pool and returns the
// admitted matches, best first.
func (h *MatchHandler) Run(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	results, err := h.matching.Run(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": results, "count": len(results)})
}

// List returns the caller's persisted matches, best first.
func (h *MatchHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	matches, err := h.matching.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

// Recommend generates collaboration suggestions for the caller's top
// matches.
func (h *MatchHandler) Recommend(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	recs, err := h.recommendations.Run(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

// Recommendations returns the caller's stored suggestions.
func (h *MatchHandler) Recommendations(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	recs, err := h.recommendations.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}
