package repository

import (
	"context"
	"fmt"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"gorm.io/gorm"
)

// VideoRepository handles video data operations, including the guarded
// status transitions that serialize concurrent pipeline stages.
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *VideoRepository: repository instance bound to db.
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video record.
func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// GetByID retrieves a video by its ID.
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetOwned retrieves a video by ID scoped to its owner.
func (r *VideoRepository) GetOwned(ctx context.Context, id, userID string) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// ListByUser retrieves all videos owned by a user, newest first.
func (r *VideoRepository) ListByUser(ctx context.Context, userID string) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

// TransitionStatus moves a video from one of the expected statuses to the
// target status with a single compare-and-set update. Zero rows affected
// means the video was not in any expected status (or does not exist) and
// yields domain.ErrInvalidTransition.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID.
//   - from: statuses the video must currently be in.
//   - to: target status.
// Returns:
//   - error: domain.ErrInvalidTransition if the guard did not match.
func (r *VideoRepository) TransitionStatus(ctx context.Context, id string, from []domain.VideoStatus, to domain.VideoStatus) error {
	return r.transition(ctx, id, from, to, map[string]interface{}{"status": to})
}

// TransitionToFailed moves a video to failed and records the error message.
// Terminal statuses are left untouched.
func (r *VideoRepository) TransitionToFailed(ctx context.Context, id, message string) error {
	nonTerminal := []domain.VideoStatus{
		domain.VideoStatusDraft, domain.VideoStatusUploaded, domain.VideoStatusProcessing,
		domain.VideoStatusTranscribing, domain.VideoStatusTranscribed, domain.VideoStatusAnalyzing,
		domain.VideoStatusAnalyzed,
	}
	return r.transition(ctx, id, nonTerminal, domain.VideoStatusFailed, map[string]interface{}{
		"status":        domain.VideoStatusFailed,
		"error_message": message,
	})
}

// ResetToDraft resets a failed video back to draft, clearing the recorded
// error. Only failed videos may be reset.
func (r *VideoRepository) ResetToDraft(ctx context.Context, id string) error {
	return r.transition(ctx, id, []domain.VideoStatus{domain.VideoStatusFailed}, domain.VideoStatusDraft, map[string]interface{}{
		"status":        domain.VideoStatusDraft,
		"error_message": "",
	})
}

func (r *VideoRepository) transition(ctx context.Context, id string, from []domain.VideoStatus, to domain.VideoStatus, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update video status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("video %s to %s: %w", id, to, domain.ErrInvalidTransition)
	}
	return nil
}

// SaveTranscript stores the transcript text on the video together with the
// transcribing -> transcribed transition, in one guarded update.
func (r *VideoRepository) SaveTranscript(ctx context.Context, id, text string) error {
	return r.transition(ctx, id, []domain.VideoStatus{domain.VideoStatusTranscribing}, domain.VideoStatusTranscribed, map[string]interface{}{
		"status":          domain.VideoStatusTranscribed,
		"transcript_text": text,
	})
}

// SaveAnalysis stores the analysis payload and score together with the
// analyzing -> analyzed transition, in one guarded update. Nothing is
// persisted when the guard does not match.
func (r *VideoRepository) SaveAnalysis(ctx context.Context, id string, analysis domain.JSONMap, score float64) error {
	return r.transition(ctx, id, []domain.VideoStatus{domain.VideoStatusAnalyzing}, domain.VideoStatusAnalyzed, map[string]interface{}{
		"status":   domain.VideoStatusAnalyzed,
		"analysis": analysis,
		"ai_score": score,
	})
}

// SaveEmbedding stores the content embedding and its provenance flag.
// Embeddings are auxiliary enrichment and imply no status transition.
func (r *VideoRepository) SaveEmbedding(ctx context.Context, id string, embedding domain.Vector, mock bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"embedding":      embedding,
			"embedding_mock": mock,
		}).Error
}

// Delete removes a video record.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id).Error
}
