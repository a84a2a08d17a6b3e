package handlers

import (
	"time"

	"sessionguard/domain"

	"github.com/labstack/echo/v4"
)

// ValidateSessionRequest is the body of POST /v1/sessions/validate.
type ValidateSessionRequest struct {
	SessionToken *string `json:"session_token"`
}

// ValidateSessionResponse is the verdict for POST /v1/sessions/validate.
type ValidateSessionResponse struct {
	IsValid bool `json:"is_valid"`
}

// DecodeTokenRequest is the body of POST /v1/tokens/decode.
type DecodeTokenRequest struct {
	Token *string `json:"token"`
}

// DecodeTokenResponse carries the unverified payload.
type DecodeTokenResponse struct {
	Payload domain.Claims `json:"payload"`
}

// SessionResponse is returned by GET /v1/session.
type SessionResponse struct {
	IsValid   bool          `json:"is_valid"`
	Subject   *string       `json:"subject,omitempty"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	Claims    domain.Claims `json:"claims,omitempty"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /v1/sessions/validate)
	ValidateSession(ctx echo.Context) error
	// (POST /v1/tokens/decode)
	DecodeToken(ctx echo.Context) error
	// (GET /v1/session)
	GetSession(ctx echo.Context) error
	// (GET /healthz)
	Health(ctx echo.Context) error
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router. sessionGuard wraps the routes that need a valid
// session (RequireSession in prod); nil registers them unguarded.
func RegisterHandlers(router EchoRouter, si ServerInterface, sessionGuard echo.MiddlewareFunc) {
	var guarded []echo.MiddlewareFunc
	if sessionGuard != nil {
		guarded = append(guarded, sessionGuard)
	}
	router.POST("/v1/sessions/validate", si.ValidateSession)
	router.POST("/v1/tokens/decode", si.DecodeToken)
	router.GET("/v1/session", si.GetSession, guarded...)
	router.GET("/healthz", si.Health)
}
