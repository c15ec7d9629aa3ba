package service

import (
	"context"
	"strings"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/prompts"
	"github.com/spotbulle/pitchmatch/internal/provider"
)

// AnalysisVideoStore is the video persistence surface the analysis
// stage needs.
type AnalysisVideoStore interface {
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	TransitionStatus(ctx context.Context, id string, from []domain.VideoStatus, to domain.VideoStatus) error
	TransitionToFailed(ctx context.Context, id, message string) error
	SaveAnalysis(ctx context.Context, id string, analysis domain.JSONMap, score float64) error
}

// AnalysisService extracts structured insight from a video transcript
// and derives the AI quality score.
type AnalysisService struct {
	videos AnalysisVideoStore
	chat   *provider.ChatClient
	model  string

	// onAnalyzed, when set, runs asynchronously after a successful
	// analysis (normally the embedding stage).
	onAnalyzed func(ctx context.Context, videoID string)
}

// NewAnalysisService creates the analysis stage.
func NewAnalysisService(videos AnalysisVideoStore, chat *provider.ChatClient, model string) *AnalysisService {
	return &AnalysisService{videos: videos, chat: chat, model: model}
}

// SetOnAnalyzed installs the follow-up trigger.
func (s *AnalysisService) SetOnAnalyzed(fn func(ctx context.Context, videoID string)) {
	s.onAnalyzed = fn
}

// Run analyzes the video's transcript. The video must be transcribed;
// an empty transcript rejects the run without touching the status so
// the video stays retryable after re-transcription. On success the
// video moves through analyzing to analyzed and then published.
func (s *AnalysisService) Run(ctx context.Context, videoID string) (domain.JSONMap, error) {
	ctx = logger.SetStage(ctx, "analysis")

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	transcript := strings.TrimSpace(video.TranscriptText)
	if transcript == "" {
		return nil, domain.ErrEmptyTranscript
	}

	err = s.videos.TransitionStatus(ctx, videoID,
		[]domain.VideoStatus{domain.VideoStatusTranscribed},
		domain.VideoStatusAnalyzing)
	if err != nil {
		return nil, err
	}

	if len(transcript) > prompts.AnalysisMaxChars {
		transcript = transcript[:prompts.AnalysisMaxChars]
	}

	payload, err := s.chat.CompleteJSON(ctx, s.model,
		prompts.AnalysisSystemPrompt,
		prompts.AnalysisUserPrompt+transcript,
		prompts.AnalysisRequiredKeys)
	if err != nil {
		s.markFailed(ctx, videoID, err)
		return nil, &ProviderError{Provider: "analysis", Err: err}
	}

	analysis := domain.JSONMap(payload)
	score := ComputeScore(analysis)

	if err := s.videos.SaveAnalysis(ctx, videoID, analysis, score); err != nil {
		s.markFailed(ctx, videoID, err)
		return nil, err
	}

	// Publication follows immediately; the analyzed status is observable
	// only between the two updates.
	err = s.videos.TransitionStatus(ctx, videoID,
		[]domain.VideoStatus{domain.VideoStatusAnalyzed},
		domain.VideoStatusPublished)
	if err != nil {
		s.markFailed(ctx, videoID, err)
		return nil, err
	}

	logger.With(logger.Fields{"score": score}).Info(ctx, "Analysis completed")

	if s.onAnalyzed != nil {
		followCtx := logger.SetVideoID(context.Background(), videoID)
		go s.onAnalyzed(followCtx, videoID)
	}

	return analysis, nil
}

// markFailed records the failure status so the video never stays parked
// in analyzing. The original error is what the caller sees.
func (s *AnalysisService) markFailed(ctx context.Context, videoID string, cause error) {
	if failErr := s.videos.TransitionToFailed(ctx, videoID, cause.Error()); failErr != nil {
		logger.CtxWarn(ctx, "Failed to mark video failed: %v", failErr)
	}
}

// ComputeScore derives the quality score from the analysis payload:
// 7.0 baseline, plus 0.5 for each richness signal, clamped to [0,10].
func ComputeScore(analysis domain.JSONMap) float64 {
	score := 7.0

	if summary, ok := analysis["summary"].(string); ok && len(summary) > 50 {
		score += 0.5
	}
	if topics, ok := analysis["key_topics"].([]interface{}); ok && len(topics) >= 3 {
		score += 0.5
	}
	if entities, ok := analysis["entities"].([]interface{}); ok && len(entities) > 0 {
		score += 0.5
	}
	if actions, ok := analysis["action_items"].([]interface{}); ok && len(actions) > 0 {
		score += 0.5
	}
	if insights, ok := analysis["insights"].([]interface{}); ok && len(insights) > 0 {
		score += 0.5
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score
}
