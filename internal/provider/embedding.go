package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
)

// EmbeddingResult carries a vector plus its provenance. Mock vectors are
// deterministic stand-ins generated without a provider; downstream
// consumers must not treat them as semantic.
type EmbeddingResult struct {
	Vector []float64
	Mock   bool
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (*EmbeddingResult, error)
	Dimensions() int
}

// OpenAIEmbedder calls the OpenAI embeddings endpoint, falling back to a
// deterministic pseudo-random vector when no API key is configured so
// downstream similarity math stays well-defined.
type OpenAIEmbedder struct {
	client     *resty.Client
	model      string
	apiKey     string
	baseURL    string
	dimensions int
}

// NewOpenAIEmbedder creates a new embedder.
// Parameters:
//   - cfg: embedding configuration including API key, model, and dimensions.
// Returns:
//   - *OpenAIEmbedder: initialized client wrapper.
func NewOpenAIEmbedder(cfg *config.EmbeddingConfig) *OpenAIEmbedder {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	dimensions := cfg.Dimensions
	if dimensions <= 0 {
		dimensions = 1536
	}

	return &OpenAIEmbedder{
		client:     client,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		dimensions: dimensions,
	}
}

// Dimensions returns the vector dimension this embedder produces.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// OpenAI embeddings API request/response structures
type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Embed generates an embedding for the text. Without an API key the
// deterministic fallback vector is returned with Mock set.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) (*EmbeddingResult, error) {
	if e.apiKey == "" {
		return &EmbeddingResult{
			Vector: FallbackVector(text, e.dimensions),
			Mock:   true,
		}, nil
	}

	req := embeddingRequest{
		Model: e.model,
		Input: text,
	}

	var resp embeddingResponse
	httpResp, err := e.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(e.baseURL + "/embeddings")

	if err != nil {
		return nil, fmt.Errorf("failed to call embeddings API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Error.Message != "" {
			return nil, fmt.Errorf("embeddings API error: %s", resp.Error.Message)
		}
		return nil, fmt.Errorf("embeddings API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embeddings API returned no data")
	}

	return &EmbeddingResult{Vector: resp.Data[0].Embedding, Mock: false}, nil
}

// FallbackVector builds the deterministic pseudo-random vector used when
// no embedding provider is configured: v[i] = sin(i + seed) with the
// seed derived from the input length. Equal-length inputs therefore map
// to equal vectors; the result carries no semantic signal.
func FallbackVector(text string, dimensions int) []float64 {
	seed := len(text) % 100
	v := make([]float64, dimensions)
	for i := range v {
		v[i] = math.Sin(float64(i + seed))
	}
	return v
}
