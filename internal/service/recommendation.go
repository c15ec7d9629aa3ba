package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/prompts"
	"github.com/spotbulle/pitchmatch/internal/provider"
)

// catalogTemplate is one entry of the deterministic fallback catalog.
type catalogTemplate struct {
	Title       string
	Description string
	Category    string
}

// recommendationCatalog is the fallback used when no LLM is configured
// or generation fails. Entries are ordered by ambition so the match
// score selects the template: index = floor(score * len(catalog)), clamped.
var recommendationCatalog = []catalogTemplate{
	{
		Title:       "Échange de feedback vidéo",
		Description: "Visionnez mutuellement vos derniers pitchs et partagez trois retours concrets chacun. Un premier pas simple pour tester votre complémentarité.",
		Category:    "Feedback",
	},
	{
		Title:       "Session de brainstorming croisé",
		Description: "Organisez une session d'une heure pour challenger vos idées de contenu respectives. Chacun repart avec un angle neuf pour sa prochaine vidéo.",
		Category:    "Stratégie",
	},
	{
		Title:       "Vidéo en duo",
		Description: "Co-créez un pitch commun qui croise vos deux univers. Le format duo met en valeur le contraste et la complémentarité de vos profils.",
		Category:    "Création",
	},
	{
		Title:       "Série de contenus en tandem",
		Description: "Lancez une mini-série de plusieurs épisodes co-animés, avec un fil rouge construit autour de vos forces respectives. Un projet ambitieux pour une compatibilité forte.",
		Category:    "Production",
	},
}

// RecommendationMatchStore is the match surface the recommendation
// stage reads.
type RecommendationMatchStore interface {
	TopForUser(ctx context.Context, userID string, limit int) ([]domain.Match, error)
}

// RecommendationStore persists generated recommendations.
type RecommendationStore interface {
	Upsert(ctx context.Context, rec *domain.Recommendation) error
	ListForUser(ctx context.Context, userID string) ([]domain.Recommendation, error)
}

// RecommendationProfileStore resolves profiles for prompt context.
type RecommendationProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.AstroProfile, error)
}

// RecommendationService turns the user's best matches into concrete
// collaboration suggestions, via the LLM when available and the
// deterministic catalog otherwise.
type RecommendationService struct {
	matches    RecommendationMatchStore
	recs       RecommendationStore
	profiles   RecommendationProfileStore
	chat       *provider.ChatClient
	model      string
	topMatches int
}

// NewRecommendationService creates the recommendation stage.
func NewRecommendationService(matches RecommendationMatchStore, recs RecommendationStore, profiles RecommendationProfileStore, chat *provider.ChatClient, model string, topMatches int) *RecommendationService {
	if topMatches <= 0 {
		topMatches = 5
	}
	return &RecommendationService{
		matches:    matches,
		recs:       recs,
		profiles:   profiles,
		chat:       chat,
		model:      model,
		topMatches: topMatches,
	}
}

// Run generates one recommendation per top match of the user. A failed
// generation for one pair falls back to the catalog rather than
// aborting the pass.
func (s *RecommendationService) Run(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	ctx = logger.SetStage(ctx, "recommendation")

	top, err := s.matches.TopForUser(ctx, userID, s.topMatches)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Recommendation, 0, len(top))
	for i := range top {
		match := &top[i]
		rec, err := s.generate(ctx, match)
		if err != nil {
			return nil, err
		}
		if err := s.recs.Upsert(ctx, rec); err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}

	logger.With(logger.Fields{
		logger.FieldUserID: userID,
		logger.FieldCount:  len(out),
	}).Info(ctx, "Recommendations generated")

	return out, nil
}

// ListForUser returns the user's stored recommendations, best match
// first.
func (s *RecommendationService) ListForUser(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	return s.recs.ListForUser(ctx, userID)
}

func (s *RecommendationService) generate(ctx context.Context, match *domain.Match) (*domain.Recommendation, error) {
	rec := &domain.Recommendation{
		ID:         uuid.NewString(),
		UserAID:    match.UserAID,
		UserBID:    match.UserBID,
		MatchScore: match.OverallScore,
	}

	if s.chat.Configured() {
		generated, err := s.generateWithLLM(ctx, match)
		if err == nil {
			rec.Title = stringField(generated, "title")
			rec.Description = stringField(generated, "description")
			rec.Category = stringField(generated, "category")
			rec.Reasoning = domain.JSONMap{
				"ai_generated": true,
				"reasoning":    stringField(generated, "reasoning"),
			}
			return rec, nil
		}
		logger.CtxWarn(ctx, "Recommendation generation failed, using catalog: %v", err)
	}

	tpl := catalogTemplateFor(match.OverallScore)
	rec.Title = tpl.Title
	rec.Description = tpl.Description
	rec.Category = tpl.Category
	rec.Reasoning = domain.JSONMap{
		"ai_generated": false,
		"reasoning":    fmt.Sprintf("Suggestion du catalogue pour un score de %.2f", match.OverallScore),
	}
	return rec, nil
}

func (s *RecommendationService) generateWithLLM(ctx context.Context, match *domain.Match) (map[string]interface{}, error) {
	profileA, err := s.profiles.GetByUserID(ctx, match.UserAID)
	if err != nil {
		return nil, err
	}
	profileB, err := s.profiles.GetByUserID(ctx, match.UserBID)
	if err != nil {
		return nil, err
	}

	user := fmt.Sprintf(prompts.RecommendationUserPrompt,
		match.OverallScore,
		profileA.SunSign, profileA.MoonSign, profileA.RisingSign,
		profileB.SunSign, profileB.MoonSign, profileB.RisingSign)

	return s.chat.CompleteJSON(ctx, s.model,
		prompts.RecommendationSystemPrompt, user, prompts.RecommendationRequiredKeys)
}

// catalogTemplateFor selects the fallback template for a match score.
func catalogTemplateFor(score float64) catalogTemplate {
	idx := int(score * float64(len(recommendationCatalog)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(recommendationCatalog) {
		idx = len(recommendationCatalog) - 1
	}
	return recommendationCatalog[idx]
}
