package repository

import (
	"context"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationRepository handles recommendation data operations.
type RecommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new RecommendationRepository.
func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Upsert creates or replaces the recommendation for an unordered pair.
// The caller must have put the pair in canonical order.
func (r *RecommendationRepository) Upsert(ctx context.Context, rec *domain.Recommendation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

// ListForUser retrieves all recommendations involving a user, best first.
func (r *RecommendationRepository) ListForUser(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	var recs []domain.Recommendation
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("match_score DESC").
		Find(&recs).Error
	return recs, err
}
