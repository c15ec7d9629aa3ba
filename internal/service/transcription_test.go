package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/provider"
)

type fakeTranscriptionStore struct {
	fakeVideoStore
	saveTranscriptErr error
}

func (f *fakeTranscriptionStore) SaveTranscript(_ context.Context, _ string, text string) error {
	if f.saveTranscriptErr != nil {
		return f.saveTranscriptErr
	}
	f.video.TranscriptText = text
	f.video.Status = domain.VideoStatusTranscribed
	return nil
}

type fakeTranscriptStore struct {
	records []*domain.Transcription
}

func (f *fakeTranscriptStore) Upsert(_ context.Context, t *domain.Transcription) error {
	f.records = append(f.records, t)
	return nil
}

type fakeObjectStorage struct {
	payload string
}

func (f *fakeObjectStorage) Upload(context.Context, string, io.Reader, int64, string) error {
	return nil
}

func (f *fakeObjectStorage) Download(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.payload)), nil
}

func (f *fakeObjectStorage) GetURL(string) string { return "" }

func (f *fakeObjectStorage) Delete(context.Context, string) error { return nil }

func (f *fakeObjectStorage) Exists(context.Context, string) (bool, error) { return true, nil }

type fakeTranscriber struct {
	name   string
	result *provider.TranscriptResult
	err    error
}

func (f *fakeTranscriber) Name() string     { return f.name }
func (f *fakeTranscriber) Configured() bool { return true }

func (f *fakeTranscriber) Transcribe(context.Context, provider.MediaInput) (*provider.TranscriptResult, error) {
	return f.result, f.err
}

func uploadedVideo() *domain.Video {
	return &domain.Video{
		ID:         "v1",
		Status:     domain.VideoStatusUploaded,
		StorageKey: "videos/u1/v1.mp4",
		FileName:   "pitch.mp4",
		MimeType:   "video/mp4",
	}
}

func TestTranscriptionService_Run(t *testing.T) {
	store := &fakeTranscriptionStore{fakeVideoStore: fakeVideoStore{video: uploadedVideo()}}
	transcripts := &fakeTranscriptStore{}
	chain := []provider.Transcriber{&fakeTranscriber{
		name:   "whisper",
		result: &provider.TranscriptResult{Text: "Bonjour, voici mon pitch.", Language: "fr", Confidence: 0.97},
	}}

	svc := NewTranscriptionService(store, transcripts, &fakeObjectStorage{payload: "media"}, chain)

	record, err := svc.Run(context.Background(), "v1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if record.Status != domain.TranscriptionStatusCompleted {
		t.Errorf("expected completed record, got %s", record.Status)
	}
	if record.Provider != "whisper" {
		t.Errorf("expected provider whisper, got %s", record.Provider)
	}
	if store.video.Status != domain.VideoStatusTranscribed {
		t.Errorf("expected video transcribed, got %s", store.video.Status)
	}
	if store.video.TranscriptText != "Bonjour, voici mon pitch." {
		t.Errorf("unexpected transcript %q", store.video.TranscriptText)
	}
}

func TestTranscriptionService_Run_ChainFallback(t *testing.T) {
	store := &fakeTranscriptionStore{fakeVideoStore: fakeVideoStore{video: uploadedVideo()}}
	transcripts := &fakeTranscriptStore{}
	chain := []provider.Transcriber{
		&fakeTranscriber{name: "whisper", err: errors.New("rate limited")},
		&fakeTranscriber{name: "deepgram", result: &provider.TranscriptResult{Text: "secours", Language: "fr"}},
	}

	svc := NewTranscriptionService(store, transcripts, &fakeObjectStorage{payload: "media"}, chain)

	record, err := svc.Run(context.Background(), "v1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if record.Provider != "deepgram" {
		t.Errorf("expected fallback provider deepgram, got %s", record.Provider)
	}
}

func TestTranscriptionService_Run_AllProvidersFail(t *testing.T) {
	store := &fakeTranscriptionStore{fakeVideoStore: fakeVideoStore{video: uploadedVideo()}}
	transcripts := &fakeTranscriptStore{}
	chain := []provider.Transcriber{
		&fakeTranscriber{name: "whisper", err: errors.New("rate limited")},
		&fakeTranscriber{name: "deepgram", err: errors.New("bad audio")},
	}

	svc := NewTranscriptionService(store, transcripts, &fakeObjectStorage{payload: "media"}, chain)

	_, err := svc.Run(context.Background(), "v1")
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if store.video.Status != domain.VideoStatusFailed {
		t.Errorf("expected video failed, got %s", store.video.Status)
	}
	if len(transcripts.records) != 1 || transcripts.records[0].Status != domain.TranscriptionStatusFailed {
		t.Errorf("expected one failed transcription record, got %+v", transcripts.records)
	}
}

func TestTranscriptionService_Run_PersistFailureMarksFailed(t *testing.T) {
	store := &fakeTranscriptionStore{
		fakeVideoStore:    fakeVideoStore{video: uploadedVideo()},
		saveTranscriptErr: errors.New("disk full"),
	}
	transcripts := &fakeTranscriptStore{}
	chain := []provider.Transcriber{&fakeTranscriber{
		name:   "whisper",
		result: &provider.TranscriptResult{Text: "texte", Language: "fr"},
	}}

	svc := NewTranscriptionService(store, transcripts, &fakeObjectStorage{payload: "media"}, chain)

	_, err := svc.Run(context.Background(), "v1")
	if err == nil {
		t.Fatal("expected error")
	}

	// A persistence failure after the provider succeeded must not leave
	// the video parked in transcribing.
	if store.video.Status != domain.VideoStatusFailed {
		t.Errorf("expected video failed, got %s", store.video.Status)
	}
}
