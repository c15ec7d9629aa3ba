package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/provider"
	"github.com/spotbulle/pitchmatch/internal/repository"
)

// EmbeddingVideoStore is the video persistence surface the embedding
// stage needs.
type EmbeddingVideoStore interface {
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	SaveEmbedding(ctx context.Context, id string, embedding domain.Vector, mock bool) error
}

// EmbeddingProfileStore persists profile embeddings.
type EmbeddingProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.AstroProfile, error)
	SaveEmbedding(ctx context.Context, userID string, embedding domain.Vector, mock bool) error
}

// EmbeddingService vectorizes videos and astro profiles for similarity
// matching. The qdrant index is best-effort: an index failure logs a
// warning but never fails the stage, since the database copy of the
// vector is authoritative.
type EmbeddingService struct {
	videos   EmbeddingVideoStore
	profiles EmbeddingProfileStore
	embedder provider.Embedder
	qdrant   *repository.QdrantRepository
}

// NewEmbeddingService creates the embedding stage. qdrant may be nil
// when the index is disabled.
func NewEmbeddingService(videos EmbeddingVideoStore, profiles EmbeddingProfileStore, embedder provider.Embedder, qdrant *repository.QdrantRepository) *EmbeddingService {
	return &EmbeddingService{
		videos:   videos,
		profiles: profiles,
		embedder: embedder,
		qdrant:   qdrant,
	}
}

// EmbedVideo embeds the video's textual content (title, analysis
// summary and topics, transcript) and stores the vector.
func (s *EmbeddingService) EmbedVideo(ctx context.Context, videoID string) error {
	ctx = logger.SetStage(ctx, "embedding")

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	text := videoEmbeddingText(video)
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyTranscript
	}

	result, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return &ProviderError{Provider: "embedding", Err: err}
	}

	if err := s.videos.SaveEmbedding(ctx, videoID, result.Vector, result.Mock); err != nil {
		return err
	}

	s.indexVideo(ctx, video, result)
	return nil
}

// EmbedProfile embeds the astro profile's symbolic text (signs,
// archetype, narrative) and stores the vector.
func (s *EmbeddingService) EmbedProfile(ctx context.Context, userID string) error {
	ctx = logger.SetStage(ctx, "embedding")

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	result, err := s.embedder.Embed(ctx, profileEmbeddingText(profile))
	if err != nil {
		return &ProviderError{Provider: "embedding", Err: err}
	}

	return s.profiles.SaveEmbedding(ctx, userID, result.Vector, result.Mock)
}

// EmbedQuery embeds free text for search. No persistence.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, query string) (*provider.EmbeddingResult, error) {
	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &ProviderError{Provider: "embedding", Err: err}
	}
	return result, nil
}

func (s *EmbeddingService) indexVideo(ctx context.Context, video *domain.Video, result *provider.EmbeddingResult) {
	if s.qdrant == nil {
		return
	}

	vector := make([]float32, len(result.Vector))
	for i, v := range result.Vector {
		vector[i] = float32(v)
	}

	err := s.qdrant.Upsert(ctx, video.ID, vector, &repository.VideoPayload{
		VideoID: video.ID,
		UserID:  video.UserID,
		Title:   video.Title,
		Status:  string(video.Status),
		AIScore: video.AIScore,
		Mock:    result.Mock,
	})
	if err != nil {
		logger.CtxWarn(ctx, "Failed to index video in qdrant: %v", err)
	}
}

func videoEmbeddingText(video *domain.Video) string {
	var parts []string
	if video.Title != "" {
		parts = append(parts, video.Title)
	}
	if video.Analysis != nil {
		if summary, ok := video.Analysis["summary"].(string); ok && summary != "" {
			parts = append(parts, summary)
		}
		if topics, ok := video.Analysis["key_topics"].([]interface{}); ok {
			for _, t := range topics {
				if s, ok := t.(string); ok {
					parts = append(parts, s)
				}
			}
		}
	}
	if video.TranscriptText != "" {
		parts = append(parts, video.TranscriptText)
	}
	return strings.Join(parts, "\n")
}

func profileEmbeddingText(profile *domain.AstroProfile) string {
	parts := []string{
		fmt.Sprintf("Soleil %s, Lune %s, Ascendant %s", profile.SunSign, profile.MoonSign, profile.RisingSign),
		fmt.Sprintf("Élément dominant %s", domain.ElementOf(profile.SunSign)),
	}
	if profile.Archetype != "" {
		parts = append(parts, profile.Archetype)
	}
	if profile.ProfileText != "" {
		parts = append(parts, profile.ProfileText)
	}
	return strings.Join(parts, "\n")
}
