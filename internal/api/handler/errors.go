package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/service"
	"gorm.io/gorm"
)

// respondError maps service and domain errors onto HTTP status codes
// with a uniform error envelope.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var providerErr *service.ProviderError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.Is(err, domain.ErrIncompleteBirthData),
		errors.Is(err, domain.ErrEmptyTranscript):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoEmbedding):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSearchDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &providerErr):
		logger.CtxError(c.Request.Context(), "Provider error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream provider failed"})
	default:
		logger.CtxError(c.Request.Context(), "Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
