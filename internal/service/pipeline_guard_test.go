package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/provider"
)

type fakeVideoStore struct {
	video           *domain.Video
	transitions     []domain.VideoStatus
	failed          bool
	saveAnalysisErr error
}

func (f *fakeVideoStore) GetByID(_ context.Context, id string) (*domain.Video, error) {
	return f.video, nil
}

func (f *fakeVideoStore) TransitionStatus(_ context.Context, _ string, from []domain.VideoStatus, to domain.VideoStatus) error {
	for _, s := range from {
		if f.video.Status == s {
			f.video.Status = to
			f.transitions = append(f.transitions, to)
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

func (f *fakeVideoStore) TransitionToFailed(_ context.Context, _ string, message string) error {
	f.video.Status = domain.VideoStatusFailed
	f.video.ErrorMessage = message
	f.failed = true
	return nil
}

func (f *fakeVideoStore) SaveAnalysis(_ context.Context, _ string, analysis domain.JSONMap, score float64) error {
	if f.saveAnalysisErr != nil {
		return f.saveAnalysisErr
	}
	if f.video.Status != domain.VideoStatusAnalyzing {
		return domain.ErrInvalidTransition
	}
	f.video.Analysis = analysis
	f.video.AIScore = score
	f.video.Status = domain.VideoStatusAnalyzed
	return nil
}

func TestAnalysisService_Run_EmptyTranscript(t *testing.T) {
	store := &fakeVideoStore{video: &domain.Video{
		ID:             "v1",
		Status:         domain.VideoStatusTranscribed,
		TranscriptText: "   \n\t ",
	}}
	svc := NewAnalysisService(store, nil, "gpt-4o")

	_, err := svc.Run(context.Background(), "v1")
	if !errors.Is(err, domain.ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}

	// The guard fires before any transition: the video stays
	// retryable in transcribed and is not failed.
	if store.video.Status != domain.VideoStatusTranscribed {
		t.Errorf("expected status unchanged, got %s", store.video.Status)
	}
	if store.failed {
		t.Error("expected video not to be failed")
	}
}

func TestAnalysisService_Run_WrongStatus(t *testing.T) {
	store := &fakeVideoStore{video: &domain.Video{
		ID:             "v1",
		Status:         domain.VideoStatusUploaded,
		TranscriptText: "un pitch complet",
	}}
	svc := NewAnalysisService(store, nil, "gpt-4o")

	_, err := svc.Run(context.Background(), "v1")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAnalysisService_Run_PersistFailureMarksFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		content, _ := json.Marshal(map[string]interface{}{
			"summary":      "Un pitch structuré.",
			"key_topics":   []string{"startup"},
			"entities":     []string{},
			"action_items": []string{},
			"insights":     []string{},
		})
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": string(content)}},
			},
		})
		w.Write(body)
	}))
	defer srv.Close()

	store := &fakeVideoStore{
		video: &domain.Video{
			ID:             "v1",
			Status:         domain.VideoStatusTranscribed,
			TranscriptText: "un pitch complet",
		},
		saveAnalysisErr: errors.New("disk full"),
	}
	chat := provider.NewChatClient(&config.LLMConfig{APIKey: "test", BaseURL: srv.URL})
	svc := NewAnalysisService(store, chat, "gpt-4o")

	_, err := svc.Run(context.Background(), "v1")
	if err == nil {
		t.Fatal("expected error")
	}

	// A persistence failure after the model answered must not leave the
	// video parked in analyzing.
	if store.video.Status != domain.VideoStatusFailed {
		t.Errorf("expected video failed, got %s", store.video.Status)
	}
}

func TestAstroService_Calculate_Validation(t *testing.T) {
	svc := &AstroService{}

	_, err := svc.Calculate(context.Background(), CalculateInput{UserID: "u1"})
	if !errors.Is(err, domain.ErrIncompleteBirthData) {
		t.Errorf("expected ErrIncompleteBirthData, got %v", err)
	}

	_, err = svc.Calculate(context.Background(), CalculateInput{
		UserID:     "u1",
		BirthDate:  "15/06/1990",
		BirthPlace: "Paris",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "birth_date" {
		t.Errorf("expected birth_date validation error, got %v", err)
	}

	_, err = svc.Calculate(context.Background(), CalculateInput{
		UserID:     "u1",
		BirthDate:  "1990-06-15",
		BirthTime:  "midi",
		BirthPlace: "Paris",
	})
	if !errors.As(err, &validationErr) || validationErr.Field != "birth_time" {
		t.Errorf("expected birth_time validation error, got %v", err)
	}
}
