package api

import (
	"github.com/gin-gonic/gin"
	"github.com/spotbulle/pitchmatch/internal/api/handler"
	"github.com/spotbulle/pitchmatch/internal/api/middleware"
	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/provider"
	"github.com/spotbulle/pitchmatch/internal/service"
)

// Services bundles the service instances the router wires into handlers.
type Services struct {
	Videos          *service.VideoService
	Transcription   *service.TranscriptionService
	Analysis        *service.AnalysisService
	Embedding       *service.EmbeddingService
	Astro           *service.AstroService
	Matching        *service.MatchService
	Recommendations *service.RecommendationService
	Search          *service.SearchService
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(cfg *config.ServerConfig, log *logger.Logger, verifier *provider.AuthVerifier, svcs Services) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(svcs.Search.Enabled())
	videoHandler := handler.NewVideoHandler(svcs.Videos, svcs.Transcription, svcs.Analysis, svcs.Embedding)
	profileHandler := handler.NewProfileHandler(svcs.Astro)
	matchHandler := handler.NewMatchHandler(svcs.Matching, svcs.Recommendations)
	searchHandler := handler.NewSearchHandler(svcs.Search)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes, all authenticated
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(verifier))
	{
		// Videos and pipeline stage triggers
		v1.POST("/videos", videoHandler.Upload)
		v1.GET("/videos", videoHandler.List)
		v1.GET("/videos/:id/status", videoHandler.Status)
		v1.POST("/videos/:id/transcribe", videoHandler.Transcribe)
		v1.POST("/videos/:id/analyze", videoHandler.Analyze)
		v1.POST("/videos/:id/embedding", videoHandler.Embed)
		v1.POST("/videos/:id/reset", videoHandler.Reset)
		v1.DELETE("/videos/:id", videoHandler.Delete)
		v1.POST("/videos/search", searchHandler.Search)

		// Astro profile
		v1.POST("/profiles/astro", profileHandler.Calculate)
		v1.GET("/profiles/astro", profileHandler.Get)

		// Matching and recommendations
		v1.POST("/matches", matchHandler.Run)
		v1.GET("/matches", matchHandler.List)
		v1.POST("/recommendations", matchHandler.Recommend)
		v1.GET("/recommendations", matchHandler.Recommendations)
	}

	return r
}
