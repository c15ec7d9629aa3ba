package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
)

// Identity is the verified subject of a bearer token.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}

// AuthVerifier checks bearer tokens against the external identity
// service. Token issuance and session management live there; this
// service only verifies and extracts the subject.
type AuthVerifier struct {
	client    *resty.Client
	verifyURL string
}

// NewAuthVerifier creates a new verifier.
func NewAuthVerifier(cfg *config.AuthConfig) *AuthVerifier {
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &AuthVerifier{
		client:    client,
		verifyURL: cfg.VerifyURL,
	}
}

// Verify checks the token and returns the identity it belongs to.
// Any non-200 response is an authentication failure.
func (v *AuthVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	var identity Identity
	httpResp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&identity).
		Get(v.verifyURL)

	if err != nil {
		return nil, fmt.Errorf("failed to call auth service: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		return nil, fmt.Errorf("auth service rejected token: status %d", httpResp.StatusCode())
	}

	if identity.UserID == "" {
		return nil, fmt.Errorf("auth service returned no subject")
	}

	return &identity, nil
}
