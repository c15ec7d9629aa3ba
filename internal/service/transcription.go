package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/provider"
	"github.com/spotbulle/pitchmatch/internal/storage"
)

// TranscriptionVideoStore is the video persistence surface the
// transcription stage needs.
type TranscriptionVideoStore interface {
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	TransitionStatus(ctx context.Context, id string, from []domain.VideoStatus, to domain.VideoStatus) error
	TransitionToFailed(ctx context.Context, id, message string) error
	SaveTranscript(ctx context.Context, id, text string) error
}

// TranscriptStore persists transcription records.
type TranscriptStore interface {
	Upsert(ctx context.Context, t *domain.Transcription) error
}

// TranscriptionService drives a video through the speech-to-text stage:
// guard the precondition, download the media, walk the provider fallback
// chain, persist the transcript, and hand off to analysis.
type TranscriptionService struct {
	videos      TranscriptionVideoStore
	transcripts TranscriptStore
	storage     storage.ObjectStorage
	chain       []provider.Transcriber

	// onTranscribed, when set, is triggered asynchronously after a
	// successful transcription. Its failure is logged, never surfaced.
	onTranscribed func(ctx context.Context, videoID string)
}

// NewTranscriptionService creates the transcription stage.
func NewTranscriptionService(videos TranscriptionVideoStore, transcripts TranscriptStore, store storage.ObjectStorage, chain []provider.Transcriber) *TranscriptionService {
	return &TranscriptionService{
		videos:      videos,
		transcripts: transcripts,
		storage:     store,
		chain:       chain,
	}
}

// SetOnTranscribed installs the follow-up trigger (normally the analysis
// stage). Set after construction to keep the stage wiring acyclic.
func (s *TranscriptionService) SetOnTranscribed(fn func(ctx context.Context, videoID string)) {
	s.onTranscribed = fn
}

// Run transcribes the video. The video must be in uploaded or processing
// status; the compare-and-set move to transcribing serializes concurrent
// runs for the same video. Providers are tried in chain order, stopping
// at the first success. Exhausting the chain fails the video with the
// aggregated error text.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: video to transcribe.
// Returns:
//   - *domain.Transcription: persisted transcription on success.
//   - error: non-nil on precondition, storage, or provider failure.
func (s *TranscriptionService) Run(ctx context.Context, videoID string) (*domain.Transcription, error) {
	ctx = logger.SetStage(ctx, "transcription")

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	err = s.videos.TransitionStatus(ctx, videoID,
		[]domain.VideoStatus{domain.VideoStatusUploaded, domain.VideoStatusProcessing},
		domain.VideoStatusTranscribing)
	if err != nil {
		return nil, err
	}

	result, providerName, err := s.transcribe(ctx, video)
	if err != nil {
		// Record the failed attempt before failing the video so the
		// transcription row reflects the last run.
		failedRecord := &domain.Transcription{
			ID:      uuid.NewString(),
			VideoID: videoID,
			Status:  domain.TranscriptionStatusFailed,
		}
		if upsertErr := s.transcripts.Upsert(ctx, failedRecord); upsertErr != nil {
			logger.CtxWarn(ctx, "Failed to record failed transcription: %v", upsertErr)
		}
		if failErr := s.videos.TransitionToFailed(ctx, videoID, err.Error()); failErr != nil {
			logger.CtxWarn(ctx, "Failed to mark video failed: %v", failErr)
		}
		return nil, err
	}

	now := time.Now()
	record := &domain.Transcription{
		ID:          uuid.NewString(),
		VideoID:     videoID,
		Text:        result.Text,
		Language:    result.Language,
		Confidence:  result.Confidence,
		Segments:    segmentsToJSON(result.Segments),
		Status:      domain.TranscriptionStatusCompleted,
		Provider:    providerName,
		ProcessedAt: &now,
	}
	if err := s.transcripts.Upsert(ctx, record); err != nil {
		if failErr := s.videos.TransitionToFailed(ctx, videoID, err.Error()); failErr != nil {
			logger.CtxWarn(ctx, "Failed to mark video failed: %v", failErr)
		}
		return nil, fmt.Errorf("failed to persist transcription: %w", err)
	}

	if err := s.videos.SaveTranscript(ctx, videoID, result.Text); err != nil {
		if failErr := s.videos.TransitionToFailed(ctx, videoID, err.Error()); failErr != nil {
			logger.CtxWarn(ctx, "Failed to mark video failed: %v", failErr)
		}
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldProvider: providerName,
		logger.FieldSize:     len(result.Text),
	}).Info(ctx, "Transcription completed")

	if s.onTranscribed != nil {
		followCtx := logger.SetVideoID(context.Background(), videoID)
		go s.onTranscribed(followCtx, videoID)
	}

	return record, nil
}

// transcribe walks the fallback chain, downloading the media fresh for
// each attempt since the reader is consumed by the provider call.
func (s *TranscriptionService) transcribe(ctx context.Context, video *domain.Video) (*provider.TranscriptResult, string, error) {
	var attemptErrs []string

	for _, t := range s.chain {
		media, err := s.storage.Download(ctx, video.StorageKey)
		if err != nil {
			return nil, "", fmt.Errorf("failed to download media %s: %w", video.StorageKey, err)
		}

		result, err := t.Transcribe(ctx, provider.MediaInput{
			Reader:   media,
			FileName: video.FileName,
			MimeType: video.MimeType,
		})
		media.Close()

		if err != nil {
			logger.CtxWarn(ctx, "Transcription provider failed: provider=%s, error=%v", t.Name(), err)
			attemptErrs = append(attemptErrs, fmt.Sprintf("%s: %v", t.Name(), err))
			continue
		}

		return result, t.Name(), nil
	}

	return nil, "", &ProviderError{
		Provider: "transcription",
		Err:      errors.New("all providers failed: " + strings.Join(attemptErrs, "; ")),
	}
}

func segmentsToJSON(segments []provider.TranscriptSegment) domain.JSONArray {
	out := make(domain.JSONArray, 0, len(segments))
	for _, seg := range segments {
		out = append(out, map[string]interface{}{
			"start": seg.Start,
			"end":   seg.End,
			"text":  seg.Text,
		})
	}
	return out
}
