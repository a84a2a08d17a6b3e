package interfaces

import "context"

// SessionValidator decides whether a token represents a valid session. It never returns an error:
// every failure collapses to false (fail closed).
//
// Implemented by service.sessionValidator. Called from handlers (HTTP API and RequireSession
// middleware) and helpers.ConfigurableAuthProcessor (gRPC).
//
//go:generate moq -stub -out mock/session_validator.go -pkg mock . SessionValidator
type SessionValidator interface {
	// ValidateToken returns true when token is a valid session, or when the development bypass is enabled.
	ValidateToken(ctx context.Context, token string) bool
}
