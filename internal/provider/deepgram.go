package provider

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
)

// DeepgramTranscriber calls the Deepgram prerecorded listen endpoint.
// It is the secondary provider in the default fallback chain.
type DeepgramTranscriber struct {
	client  *resty.Client
	model   string
	apiKey  string
	baseURL string
}

// NewDeepgramTranscriber creates a new Deepgram transcriber.
func NewDeepgramTranscriber(cfg *config.DeepgramConfig) *DeepgramTranscriber {
	client := resty.New()
	client.SetHeader("Authorization", "Token "+cfg.APIKey)
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.deepgram.com/v1"
	}

	return &DeepgramTranscriber{
		client:  client,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

// Name identifies the provider.
func (t *DeepgramTranscriber) Name() string {
	return "deepgram"
}

// Configured reports whether an API key is present.
func (t *DeepgramTranscriber) Configured() bool {
	return t.apiKey != ""
}

// Deepgram prerecorded response structure
type deepgramResponse struct {
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
				Words      []struct {
					Word  string  `json:"word"`
					Start float64 `json:"start"`
					End   float64 `json:"end"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
	ErrMsg string `json:"err_msg"`
}

// Transcribe streams the media body to Deepgram and normalizes the top
// alternative of the first channel.
func (t *DeepgramTranscriber) Transcribe(ctx context.Context, media MediaInput) (*TranscriptResult, error) {
	body, err := io.ReadAll(media.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read media: %w", err)
	}

	var resp deepgramResponse
	httpResp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", media.MimeType).
		SetBody(body).
		SetResult(&resp).
		SetError(&resp).
		SetQueryParams(map[string]string{
			"model":           t.model,
			"smart_format":    "true",
			"detect_language": "true",
		}).
		Post(t.baseURL + "/listen")

	if err != nil {
		return nil, fmt.Errorf("failed to call deepgram API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.ErrMsg != "" {
			return nil, fmt.Errorf("deepgram API error: %s", resp.ErrMsg)
		}
		return nil, fmt.Errorf("deepgram API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Results.Channels) == 0 || len(resp.Results.Channels[0].Alternatives) == 0 {
		return nil, fmt.Errorf("deepgram API returned no transcript")
	}

	channel := resp.Results.Channels[0]
	alt := channel.Alternatives[0]

	result := &TranscriptResult{
		Text:       alt.Transcript,
		Language:   channel.DetectedLanguage,
		Confidence: alt.Confidence,
	}
	for _, w := range alt.Words {
		result.Segments = append(result.Segments, TranscriptSegment{
			Start: w.Start,
			End:   w.End,
			Text:  w.Word,
		})
	}

	return result, nil
}
