package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
)

// WhisperTranscriber calls the OpenAI audio transcription endpoint.
type WhisperTranscriber struct {
	client  *resty.Client
	model   string
	apiKey  string
	baseURL string
}

// NewWhisperTranscriber creates a new Whisper transcriber.
// Parameters:
//   - cfg: whisper configuration including API key, model, and timeout.
// Returns:
//   - *WhisperTranscriber: initialized client wrapper.
func NewWhisperTranscriber(cfg *config.WhisperConfig) *WhisperTranscriber {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &WhisperTranscriber{
		client:  client,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

// Name identifies the provider.
func (t *WhisperTranscriber) Name() string {
	return "whisper"
}

// Configured reports whether an API key is present.
func (t *WhisperTranscriber) Configured() bool {
	return t.apiKey != ""
}

// Whisper verbose_json response structure
type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe submits the media as a multipart upload and parses the
// verbose JSON response into the normalized result.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, media MediaInput) (*TranscriptResult, error) {
	var resp whisperResponse
	httpResp, err := t.client.R().
		SetContext(ctx).
		SetFileReader("file", media.FileName, media.Reader).
		SetFormData(map[string]string{
			"model":           t.model,
			"response_format": "verbose_json",
		}).
		SetResult(&resp).
		SetError(&resp).
		Post(t.baseURL + "/audio/transcriptions")

	if err != nil {
		return nil, fmt.Errorf("failed to call whisper API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Error.Message != "" {
			return nil, fmt.Errorf("whisper API error: %s", resp.Error.Message)
		}
		return nil, fmt.Errorf("whisper API error: status %d", httpResp.StatusCode())
	}

	result := &TranscriptResult{
		Text:       resp.Text,
		Language:   resp.Language,
		Confidence: 1.0,
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	return result, nil
}
