package repository

import (
	"context"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TranscriptionRepository handles transcription data operations.
type TranscriptionRepository struct {
	db *gorm.DB
}

// NewTranscriptionRepository creates a new TranscriptionRepository.
func NewTranscriptionRepository(db *gorm.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

// Upsert creates or replaces the transcription for a video. Re-running
// the stage overwrites the prior record rather than accumulating rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - t: transcription record to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *TranscriptionRepository) Upsert(ctx context.Context, t *domain.Transcription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		UpdateAll: true,
	}).Create(t).Error
}

// GetByVideoID retrieves the transcription for a video.
func (r *TranscriptionRepository) GetByVideoID(ctx context.Context, videoID string) (*domain.Transcription, error) {
	var t domain.Transcription
	if err := r.db.WithContext(ctx).First(&t, "video_id = ?", videoID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
