package repository

import (
	"context"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AstroProfileRepository handles astro profile data operations.
type AstroProfileRepository struct {
	db *gorm.DB
}

// NewAstroProfileRepository creates a new AstroProfileRepository.
func NewAstroProfileRepository(db *gorm.DB) *AstroProfileRepository {
	return &AstroProfileRepository{db: db}
}

// Upsert creates or replaces the profile for a user. Recalculation
// overwrites the prior chart; profiles are never versioned.
func (r *AstroProfileRepository) Upsert(ctx context.Context, p *domain.AstroProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(p).Error
}

// GetByUserID retrieves the profile for a user.
func (r *AstroProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.AstroProfile, error) {
	var p domain.AstroProfile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveEmbedding stores the profile embedding and its provenance flag.
func (r *AstroProfileRepository) SaveEmbedding(ctx context.Context, userID string, embedding domain.Vector, mock bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.AstroProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"embedding":      embedding,
			"embedding_mock": mock,
		}).Error
}

// SaveNarrative stores the narrative enrichment fields on the profile.
func (r *AstroProfileRepository) SaveNarrative(ctx context.Context, userID, archetype, phrase, profileText, color string) error {
	return r.db.WithContext(ctx).
		Model(&domain.AstroProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"archetype":      archetype,
			"phrase":         phrase,
			"profile_text":   profileText,
			"dominant_color": color,
		}).Error
}

// ListCandidates retrieves up to limit profiles other than the subject's
// that already have an embedding. The bound keeps the matching scan cheap;
// candidate selection is not ranked.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - excludeUserID: subject user to leave out of the pool.
//   - limit: maximum pool size.
// Returns:
//   - []domain.AstroProfile: candidate profiles.
//   - error: non-nil if the query fails.
func (r *AstroProfileRepository) ListCandidates(ctx context.Context, excludeUserID string, limit int) ([]domain.AstroProfile, error) {
	var profiles []domain.AstroProfile
	err := r.db.WithContext(ctx).
		Where("user_id <> ?", excludeUserID).
		Where("embedding IS NOT NULL").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

// ListWithEmbeddings retrieves every profile that has an embedding.
// Used by the scheduled re-matching sweep.
func (r *AstroProfileRepository) ListWithEmbeddings(ctx context.Context) ([]domain.AstroProfile, error) {
	var profiles []domain.AstroProfile
	err := r.db.WithContext(ctx).
		Where("embedding IS NOT NULL").
		Find(&profiles).Error
	return profiles, err
}
