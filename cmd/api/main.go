package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spotbulle/pitchmatch/internal/api"
	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/provider"
	"github.com/spotbulle/pitchmatch/internal/repository"
	"github.com/spotbulle/pitchmatch/internal/service"
	"github.com/spotbulle/pitchmatch/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewFromEnv(nil)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	videoRepo := repository.NewVideoRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	astroRepo := repository.NewAstroProfileRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	ctx := context.Background()

	var qdrantRepo *repository.QdrantRepository
	if cfg.Qdrant.Enabled {
		qdrantRepo, err = repository.NewQdrantRepository(&repository.QdrantConnectionConfig{
			Host:            cfg.Qdrant.Host,
			Port:            cfg.Qdrant.Port,
			Collection:      cfg.Qdrant.Collection,
			APIKey:          cfg.Qdrant.APIKey,
			UseTLS:          cfg.Qdrant.UseTLS,
			VectorDimension: cfg.Embedding.Dimensions,
		})
		if err != nil {
			logger.Fatal("Failed to initialize Qdrant repository: %v", err)
		}
		defer qdrantRepo.Close()

		if err := qdrantRepo.EnsureCollection(ctx); err != nil {
			logger.Fatal("Failed to ensure Qdrant collection: %v", err)
		}
	}

	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Provider),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}

	sttChain, err := provider.NewTranscriberChain(&cfg.Transcription)
	if err != nil {
		logger.Fatal("Failed to build transcription chain: %v", err)
	}
	chatClient := provider.NewChatClient(&cfg.LLM)
	embedder := provider.NewOpenAIEmbedder(&cfg.Embedding)
	geocoder := provider.NewNominatimGeocoder(&cfg.Geocoding)
	astrologyClient := provider.NewAstrologyClient(&cfg.Astrology)
	authVerifier := provider.NewAuthVerifier(&cfg.Auth)

	embeddingService := service.NewEmbeddingService(videoRepo, astroRepo, embedder, qdrantRepo)
	analysisService := service.NewAnalysisService(videoRepo, chatClient, cfg.LLM.AnalysisModel)
	transcriptionService := service.NewTranscriptionService(videoRepo, transcriptionRepo, objectStorage, sttChain)
	astroService := service.NewAstroService(astroRepo, geocoder, astrologyClient, chatClient, embeddingService, cfg.LLM.GenerationModel)
	matchService := service.NewMatchService(astroRepo, matchRepo, cfg.Matching.CandidateLimit, cfg.Matching.MinScore)
	recommendationService := service.NewRecommendationService(matchRepo, recRepo, astroRepo, chatClient, cfg.LLM.GenerationModel, cfg.Recommendation.TopMatches)
	videoService := service.NewVideoService(videoRepo, transcriptionRepo, objectStorage)
	searchService := service.NewSearchService(embeddingService, qdrantRepo)

	// Chain the pipeline stages: transcription feeds analysis, analysis
	// feeds embedding, a matching pass feeds recommendations.
	transcriptionService.SetOnTranscribed(func(ctx context.Context, videoID string) {
		if _, err := analysisService.Run(ctx, videoID); err != nil {
			logger.CtxError(ctx, "Analysis stage failed: %v", err)
		}
	})
	analysisService.SetOnAnalyzed(func(ctx context.Context, videoID string) {
		if err := embeddingService.EmbedVideo(ctx, videoID); err != nil {
			logger.CtxError(ctx, "Embedding stage failed: %v", err)
		}
	})
	matchService.SetOnMatched(func(ctx context.Context, userID string) {
		if _, err := recommendationService.Run(ctx, userID); err != nil {
			logger.CtxError(ctx, "Recommendation stage failed: %v", err)
		}
	})

	if cfg.Scheduler.Enabled {
		scheduler := service.NewScheduler(astroRepo, matchService, cfg.Scheduler.RematchCron)
		if err := scheduler.Start(); err != nil {
			logger.Fatal("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	router := api.SetupRouter(&cfg.Server, appLogger, authVerifier, api.Services{
		Videos:          videoService,
		Transcription:   transcriptionService,
		Analysis:        analysisService,
		Embedding:       embeddingService,
		Astro:           astroService,
		Matching:        matchService,
		Recommendations: recommendationService,
		Search:          searchService,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
