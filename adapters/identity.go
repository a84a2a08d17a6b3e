package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sessionguard/helpers"
	"sessionguard/interfaces"
)

// validatePath is appended to the provider base URL.
const validatePath = "/sessions/validate"

// maxResponseBody caps how much of the provider response is read.
const maxResponseBody = 1 << 20

// IdentityProviderHTTP creates an interfaces.IdentityProvider that talks to the identity service over HTTP:
// POST baseURL/sessions/validate. Panics on empty baseURL or nil client.
//
// Parameters: baseURL - provider base URL (e.g. https://auth.example.com); a trailing "/" is dropped. client - HTTP client;
// it is copied and the copy never follows redirects, so a 3xx from the provider is treated like any other non-2xx status.
// The caller's client is not modified.
//
// Returns: interfaces.IdentityProvider (*identityProviderHTTP).
//
// Called from cmd/main.
func IdentityProviderHTTP(baseURL string, client *http.Client) interfaces.IdentityProvider {
	helpers.MustString(baseURL, "adapters.identity.go: baseURL is required")
	noRedirect := *helpers.MustNotNil(client, "adapters.identity.go: http client is required")
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &identityProviderHTTP{
		endpoint: strings.TrimRight(baseURL, "/") + validatePath,
		client:   &noRedirect,
	}
}

// identityProviderHTTP implements interfaces.IdentityProvider. Holds the full validate endpoint URL and a non-redirecting client.
type identityProviderHTTP struct {
	endpoint string
	client   *http.Client
}

// validateRequest is the JSON body of POST /sessions/validate.
type validateRequest struct {
	SessionToken string `json:"session_token"`
}

// validateResponse is the JSON shape of a successful POST /sessions/validate response. Other fields are ignored.
type validateResponse struct {
	IsValid bool `json:"is_valid"`
}

// ValidateSession performs POST endpoint with {"session_token": token} and Content-Type application/json. The deadline comes from ctx
// (service.sessionValidator sets one).
//
// Parameters: ctx - request context; token - session token (sent as-is, emptiness is checked by the caller).
//
// Returns: (is_valid, nil) on 2xx with a JSON body (missing is_valid decodes as false); (false, nil) on any other status,
// including 3xx because redirects are not followed; (false, error) on request build, network, timeout, body read or JSON errors.
//
// Called from service.sessionValidator.ValidateToken.
func (p *identityProviderHTTP) ValidateSession(ctx context.Context, token string) (bool, error) {
	body, err := json.Marshal(validateRequest{SessionToken: token})
	if err != nil {
		return false, fmt.Errorf("marshal validate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("post %s: %w", validatePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return false, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return false, fmt.Errorf("read validate response: %w", err)
	}
	var out validateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return false, fmt.Errorf("decode validate response: %w", err)
	}
	return out.IsValid, nil
}
