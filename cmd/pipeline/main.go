package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/provider"
	"github.com/spotbulle/pitchmatch/internal/repository"
	"github.com/spotbulle/pitchmatch/internal/service"
	"github.com/spotbulle/pitchmatch/internal/storage"
)

// The pipeline runner executes one stage for one video or user from the
// command line. It shares the service wiring with the API server so a
// stuck video can be pushed through manually.
func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "pitchmatch-pipeline",
	})
	logger.SetDefaultLogger(appLogger)

	stage := flag.String("stage", "", "Stage to run: transcribe, analyze, embed, match, recommend, rematch")
	videoID := flag.String("video", "", "Video ID (transcribe, analyze, embed)")
	userID := flag.String("user", "", "User ID (match, recommend)")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *stage == "" {
		appLogger.Fatal("Missing -stage flag")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	videoRepo := repository.NewVideoRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	astroRepo := repository.NewAstroProfileRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
			appLogger.WithError(err).Fatal("Failed to initialize Qdrant repository")
		}
		defer qdrantRepo.Close()

		if err := qdrantRepo.EnsureCollection(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure Qdrant collection")
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
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	sttChain, err := provider.NewTranscriberChain(&cfg.Transcription)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to build transcription chain")
	}
	chatClient := provider.NewChatClient(&cfg.LLM)
	embedder := provider.NewOpenAIEmbedder(&cfg.Embedding)

	embeddingService := service.NewEmbeddingService(videoRepo, astroRepo, embedder, qdrantRepo)
	analysisService := service.NewAnalysisService(videoRepo, chatClient, cfg.LLM.AnalysisModel)
	transcriptionService := service.NewTranscriptionService(videoRepo, transcriptionRepo, objectStorage, sttChain)
	matchService := service.NewMatchService(astroRepo, matchRepo, cfg.Matching.CandidateLimit, cfg.Matching.MinScore)
	recommendationService := service.NewRecommendationService(matchRepo, recRepo, astroRepo, chatClient, cfg.LLM.GenerationModel, cfg.Recommendation.TopMatches)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	appLogger.WithFields(logger.Fields{
		"stage": *stage,
		"video": *videoID,
		"user":  *userID,
	}).Info("Running pipeline stage")

	switch *stage {
	case "transcribe":
		requireFlag(appLogger, "video", *videoID)
		if _, err := transcriptionService.Run(ctx, *videoID); err != nil {
			appLogger.WithError(err).Fatal("Transcription failed")
		}
	case "analyze":
		requireFlag(appLogger, "video", *videoID)
		if _, err := analysisService.Run(ctx, *videoID); err != nil {
			appLogger.WithError(err).Fatal("Analysis failed")
		}
	case "embed":
		requireFlag(appLogger, "video", *videoID)
		if err := embeddingService.EmbedVideo(ctx, *videoID); err != nil {
			appLogger.WithError(err).Fatal("Embedding failed")
		}
	case "match":
		requireFlag(appLogger, "user", *userID)
		results, err := matchService.Run(ctx, *userID)
		if err != nil {
			appLogger.WithError(err).Fatal("Matching failed")
		}
		appLogger.WithField("count", len(results)).Info("Matching completed")
	case "recommend":
		requireFlag(appLogger, "user", *userID)
		recs, err := recommendationService.Run(ctx, *userID)
		if err != nil {
			appLogger.WithError(err).Fatal("Recommendation failed")
		}
		appLogger.WithField("count", len(recs)).Info("Recommendations generated")
	case "rematch":
		scheduler := service.NewScheduler(astroRepo, matchService, cfg.Scheduler.RematchCron)
		scheduler.Sweep(ctx)
	default:
		appLogger.WithField("stage", *stage).Fatal("Unknown stage")
	}

	appLogger.Info("Stage completed")
}

func requireFlag(log *logger.Logger, name, value string) {
	if value == "" {
		log.WithField("flag", name).Fatal("Missing required flag")
	}
}
