package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
)

// matchMinScore is the persistence threshold: pairs scoring below it
// are computed but never stored.
const matchMinScore = 0.6

// MatchProfileStore is the profile surface the matching stage reads.
type MatchProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.AstroProfile, error)
	ListCandidates(ctx context.Context, excludeUserID string, limit int) ([]domain.AstroProfile, error)
}

// MatchStore persists scored matches.
type MatchStore interface {
	Upsert(ctx context.Context, m *domain.Match) error
	ListForUser(ctx context.Context, userID string) ([]domain.Match, error)
}

// MatchService scores the subject user against the candidate pool,
// blending embedding similarity with astrological compatibility.
type MatchService struct {
	profiles       MatchProfileStore
	matches        MatchStore
	candidateLimit int
	minScore       float64

	// onMatched, when set, runs asynchronously after a matching pass
	// that persisted at least one match.
	onMatched func(ctx context.Context, userID string)
}

// NewMatchService creates the matching stage.
func NewMatchService(profiles MatchProfileStore, matches MatchStore, candidateLimit int, minScore float64) *MatchService {
	if candidateLimit <= 0 {
		candidateLimit = 20
	}
	if minScore <= 0 {
		minScore = matchMinScore
	}
	return &MatchService{
		profiles:       profiles,
		matches:        matches,
		candidateLimit: candidateLimit,
		minScore:       minScore,
	}
}

// SetOnMatched installs the follow-up trigger (normally recommendation
// generation).
func (s *MatchService) SetOnMatched(fn func(ctx context.Context, userID string)) {
	s.onMatched = fn
}

// Run scores userID against the candidate pool and persists every pair
// at or above the threshold. The subject must have a profile embedding.
// Only admitted matches come back, sorted by overall score, best first.
func (s *MatchService) Run(ctx context.Context, userID string) ([]domain.Match, error) {
	ctx = logger.SetStage(ctx, "matching")

	subject, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !subject.HasEmbedding() {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNoEmbedding)
	}

	candidates, err := s.profiles.ListCandidates(ctx, userID, s.candidateLimit)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Match, 0, len(candidates))

	for i := range candidates {
		match := s.score(subject, &candidates[i])
		if match.OverallScore < s.minScore {
			continue
		}
		if err := s.matches.Upsert(ctx, &match); err != nil {
			return nil, err
		}
		results = append(results, match)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	logger.With(logger.Fields{
		logger.FieldUserID: userID,
		logger.FieldCount:  len(results),
	}).Info(ctx, "Matching completed: %d candidates scored", len(candidates))

	if len(results) > 0 && s.onMatched != nil {
		followCtx := logger.SetUserID(context.Background(), userID)
		go s.onMatched(followCtx, userID)
	}

	return results, nil
}

// ListForUser returns the user's persisted matches, best first.
func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]domain.Match, error) {
	return s.matches.ListForUser(ctx, userID)
}

func (s *MatchService) score(subject, candidate *domain.AstroProfile) domain.Match {
	vectorSim := VectorSimilarity(subject.Embedding, candidate.Embedding)
	astroCompat, details := AstroCompatibility(subject, candidate)
	overall := OverallScore(vectorSim, astroCompat)

	a, b := domain.CanonicalPair(subject.UserID, candidate.UserID)
	details["vector_mock"] = subject.EmbeddingMock || candidate.EmbeddingMock

	return domain.Match{
		ID:                 uuid.NewString(),
		UserAID:            a,
		UserBID:            b,
		VectorSimilarity:   vectorSim,
		AstroCompatibility: astroCompat,
		OverallScore:       overall,
		Details:            domain.JSONMap(details),
	}
}
