package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spotbulle/pitchmatch/internal/api/middleware"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/service"
)

// maxUploadBytes caps accepted media uploads at 500 MB.
const maxUploadBytes = 500 << 20

// VideoHandler handles video upload, status, and pipeline trigger
// endpoints.
type VideoHandler struct {
	videos        *service.VideoService
	transcription *service.TranscriptionService
	analysis      *service.AnalysisService
	embedding     *service.EmbeddingService
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videos *service.VideoService, transcription *service.TranscriptionService, analysis *service.AnalysisService, embedding *service.EmbeddingService) *VideoHandler {
	return &VideoHandler{
		videos:        videos,
		transcription: transcription,
		analysis:      analysis,
		embedding:     embedding,
	}
}

// Upload registers a new video from a multipart form. Fields: title
// (required), description, file (required).
func (h *VideoHandler) Upload(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if c.Request.ContentLength > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	media, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer media.Close()

	video, err := h.videos.Register(c.Request.Context(), service.RegisterInput{
		UserID:      identity.UserID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Media:       media,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// List returns the authenticated user's videos.
func (h *VideoHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	videos, err := h.videos.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

// Status returns the video and its transcription record.
func (h *VideoHandler) Status(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	report, err := h.videos.Status(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Transcribe triggers the transcription stage. On success it chains
// into analysis and embedding; 202 acknowledges the trigger and the
// work runs in the background. Ownership and existence are checked
// synchronously.
func (h *VideoHandler) Transcribe(c *gin.Context) {
	h.trigger(c, "transcribing", func(ctx context.Context, videoID string) error {
		_, err := h.transcription.Run(ctx, videoID)
		return err
	})
}

// Analyze triggers the analysis stage for a transcribed video.
func (h *VideoHandler) Analyze(c *gin.Context) {
	h.trigger(c, "analyzing", func(ctx context.Context, videoID string) error {
		_, err := h.analysis.Run(ctx, videoID)
		return err
	})
}

// Embed triggers the embedding stage.
func (h *VideoHandler) Embed(c *gin.Context) {
	h.trigger(c, "embedding", h.embedding.EmbedVideo)
}

func (h *VideoHandler) trigger(c *gin.Context, label string, run func(ctx context.Context, videoID string) error) {
	identity, _ := middleware.CurrentIdentity(c)
	videoID := c.Param("id")

	if _, err := h.videos.Status(c.Request.Context(), videoID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	bgCtx := logger.SetVideoID(logger.SetUserID(context.Background(), identity.UserID), videoID)
	go func() {
		if err := run(bgCtx, videoID); err != nil {
			logger.CtxError(bgCtx, "Stage trigger failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"video_id": videoID, "status": label})
}

// Reset moves a failed video back to draft.
func (h *VideoHandler) Reset(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.videos.ResetFailed(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video_id": c.Param("id"), "status": "draft"})
}

// Delete removes the video and its stored media.
func (h *VideoHandler) Delete(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.videos.Delete(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
