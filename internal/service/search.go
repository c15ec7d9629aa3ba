package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/repository"
)

// ErrSearchDisabled is returned when the vector index is not configured.
var ErrSearchDisabled = errors.New("semantic search is disabled")

// SearchHit is one semantic search result.
type SearchHit struct {
	VideoID string  `json:"video_id"`
	UserID  string  `json:"user_id"`
	Title   string  `json:"title"`
	Score   float32 `json:"score"`
	AIScore float64 `json:"ai_score"`
	Mock    bool    `json:"mock"`
}

// SearchService answers free-text queries against the qdrant video
// index. Only published videos are searchable.
type SearchService struct {
	embedder *EmbeddingService
	qdrant   *repository.QdrantRepository
}

// NewSearchService creates the search service. qdrant may be nil when
// the index is disabled; queries then return ErrSearchDisabled.
func NewSearchService(embedder *EmbeddingService, qdrant *repository.QdrantRepository) *SearchService {
	return &SearchService{embedder: embedder, qdrant: qdrant}
}

// Enabled reports whether the vector index is available.
func (s *SearchService) Enabled() bool {
	return s.qdrant != nil
}

// Search embeds the query and returns the closest published videos.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if s.qdrant == nil {
		return nil, ErrSearchDisabled
	}
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Msg: "must not be empty"}
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	embedded, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	vector := make([]float32, len(embedded.Vector))
	for i, v := range embedded.Vector {
		vector[i] = float32(v)
	}

	published := "published"
	results, err := s.qdrant.Search(ctx, vector, limit, &repository.SearchFilters{Status: &published})
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		hit := SearchHit{VideoID: r.ID, Score: r.Score}
		if r.Payload != nil {
			hit.UserID = r.Payload.UserID
			hit.Title = r.Payload.Title
			hit.AIScore = r.Payload.AIScore
			hit.Mock = r.Payload.Mock
		}
		hits = append(hits, hit)
	}

	logger.With(logger.Fields{logger.FieldCount: len(hits)}).Debug(ctx, "Semantic search completed")
	return hits, nil
}
