package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/storage"
)

// VideoStore is the full video persistence surface.
type VideoStore interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	GetOwned(ctx context.Context, id, userID string) (*domain.Video, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Video, error)
	ResetToDraft(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// VideoTranscriptStore resolves the transcription record for status
// reporting.
type VideoTranscriptStore interface {
	GetByVideoID(ctx context.Context, videoID string) (*domain.Transcription, error)
}

// VideoService owns video registration, retrieval, and lifecycle
// operations outside the pipeline stages.
type VideoService struct {
	videos      VideoStore
	transcripts VideoTranscriptStore
	storage     storage.ObjectStorage
}

// NewVideoService creates the video management service.
func NewVideoService(videos VideoStore, transcripts VideoTranscriptStore, store storage.ObjectStorage) *VideoService {
	return &VideoService{videos: videos, transcripts: transcripts, storage: store}
}

// RegisterInput carries an upload for registration.
type RegisterInput struct {
	UserID      string
	Title       string
	Description string
	FileName    string
	FileSize    int64
	MimeType    string
	Media       io.Reader
}

// Register stores the media object and creates the video in uploaded
// status. If the database write fails the stored object is removed so
// no orphan remains.
func (s *VideoService) Register(ctx context.Context, input RegisterInput) (*domain.Video, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if input.Media == nil {
		return nil, &ValidationError{Field: "file", Msg: "media is required"}
	}

	id := uuid.NewString()
	key := storageKey(input.UserID, id, input.FileName)

	if err := s.storage.Upload(ctx, key, input.Media, input.FileSize, input.MimeType); err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	video := &domain.Video{
		ID:          id,
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		StorageKey:  key,
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		MimeType:    input.MimeType,
		Status:      domain.VideoStatusUploaded,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxWarn(ctx, "Failed to clean up orphaned media %s: %v", key, delErr)
		}
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldVideoID: id,
		logger.FieldSize:    input.FileSize,
	}).Info(ctx, "Video registered")

	return video, nil
}

// StatusReport is the processing state envelope for one video.
type StatusReport struct {
	Video         *domain.Video         `json:"video"`
	Transcription *domain.Transcription `json:"transcription,omitempty"`
	MediaURL      string                `json:"media_url,omitempty"`
}

// Status returns the video with its transcription record, scoped to the
// owning user.
func (s *VideoService) Status(ctx context.Context, videoID, userID string) (*StatusReport, error) {
	video, err := s.videos.GetOwned(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{Video: video, MediaURL: s.storage.GetURL(video.StorageKey)}
	if transcription, err := s.transcripts.GetByVideoID(ctx, videoID); err == nil {
		report.Transcription = transcription
	}
	return report, nil
}

// List returns the user's videos, newest first.
func (s *VideoService) List(ctx context.Context, userID string) ([]domain.Video, error) {
	return s.videos.ListByUser(ctx, userID)
}

// ResetFailed moves a failed video back to draft so its owner can
// restart the pipeline.
func (s *VideoService) ResetFailed(ctx context.Context, videoID, userID string) error {
	if _, err := s.videos.GetOwned(ctx, videoID, userID); err != nil {
		return err
	}
	return s.videos.ResetToDraft(ctx, videoID)
}

// Delete removes the video and its media object. The object delete is
// best-effort once the row is gone.
func (s *VideoService) Delete(ctx context.Context, videoID, userID string) error {
	video, err := s.videos.GetOwned(ctx, videoID, userID)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, videoID); err != nil {
		return err
	}
	if video.StorageKey != "" {
		if err := s.storage.Delete(ctx, video.StorageKey); err != nil {
			logger.CtxWarn(ctx, "Failed to delete media %s: %v", video.StorageKey, err)
		}
	}
	return nil
}

func storageKey(userID, videoID, fileName string) string {
	ext := path.Ext(fileName)
	if ext == "" {
		ext = ".mp4"
	}
	return fmt.Sprintf("videos/%s/%s%s", userID, videoID, ext)
}
