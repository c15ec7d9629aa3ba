package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
)

// ChatClient calls an OpenAI-compatible chat completions endpoint and
// returns strict JSON payloads. All generative stages (analysis,
// recommendations, narrative enrichment) share one client.
type ChatClient struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

// NewChatClient creates a new chat completions client.
// Parameters:
//   - cfg: LLM configuration including API key, base URL, and timeout.
// Returns:
//   - *ChatClient: initialized client wrapper.
func NewChatClient(cfg *config.LLMConfig) *ChatClient {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &ChatClient{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

// Configured reports whether an API key is present.
func (c *ChatClient) Configured() bool {
	return c.apiKey != ""
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CompleteJSON sends a system+user prompt pair requesting a JSON object
// response, decodes it, and verifies that every required key is present.
// A missing key is a provider error: the model violated the contract.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - model: model identifier for this call.
//   - system, user: prompt pair.
//   - requiredKeys: top-level keys the response must contain.
// Returns:
//   - map[string]interface{}: decoded JSON payload.
//   - error: non-nil on transport, decode, or schema failure.
func (c *ChatClient) CompleteJSON(ctx context.Context, model, system, user string, requiredKeys []string) (map[string]interface{}, error) {
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.7,
		ResponseFormat: &chatFormat{Type: "json_object"},
	}

	var resp chatResponse
	var httpResp *resty.Response
	err := retryWithBackoff(ctx, defaultRetryAttempts, defaultRetryBase, func() error {
		var callErr error
		httpResp, callErr = c.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&resp).
			SetError(&resp).
			Post(c.baseURL + "/chat/completions")
		if callErr != nil {
			return callErr
		}
		// Retry only transient statuses; 4xx other than 429 will not heal.
		if code := httpResp.StatusCode(); code == 429 || code >= 500 {
			return fmt.Errorf("chat API transient error: status %d", code)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call chat API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Error.Message != "" {
			return nil, fmt.Errorf("chat API error: %s", resp.Error.Message)
		}
		return nil, fmt.Errorf("chat API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat API returned no choices")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse chat response as JSON: %w", err)
	}

	if err := ValidateKeys(payload, requiredKeys); err != nil {
		return nil, err
	}

	return payload, nil
}

// ValidateKeys verifies that every required top-level key is present.
func ValidateKeys(payload map[string]interface{}, keys []string) error {
	for _, key := range keys {
		if _, ok := payload[key]; !ok {
			return fmt.Errorf("chat response missing required key %q", key)
		}
	}
	return nil
}
