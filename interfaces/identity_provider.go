package interfaces

import "context"

// IdentityProvider checks a session token against the remote identity service.
//
// ValidateSession performs exactly one request (POST <baseURL>/sessions/validate) and reports
// the provider's verdict. It does not apply the fail-closed policy itself: transport and decode
// failures are returned as errors so the caller can log them and decide.
//
// Implemented by adapters.IdentityProviderHTTP. Called from service.sessionValidator.ValidateToken.
//
//go:generate moq -stub -out mock/identity_provider.go -pkg mock . IdentityProvider
type IdentityProvider interface {
	// ValidateSession asks the provider whether token is a live session.
	// Parameters: ctx - request context (deadline bounds the HTTP call); token - raw session token, non-empty.
	// Returns: (is_valid, nil) on a 2xx response with a JSON body; (false, nil) on a non-2xx response;
	// (false, err) on network error, timeout or malformed response body.
	ValidateSession(ctx context.Context, token string) (bool, error)
}
