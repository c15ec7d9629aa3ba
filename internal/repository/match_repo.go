package repository

import (
	"context"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository handles match data operations.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Upsert creates or replaces the match for an unordered pair. The caller
// must have put the pair in canonical order.
func (r *MatchRepository) Upsert(ctx context.Context, m *domain.Match) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
		UpdateAll: true,
	}).Create(m).Error
}

// ListForUser retrieves all matches involving a user, best first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID string) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("overall_score DESC").
		Find(&matches).Error
	return matches, err
}

// TopForUser retrieves up to limit highest-scoring matches involving a user.
func (r *MatchRepository) TopForUser(ctx context.Context, userID string, limit int) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("overall_score DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}
