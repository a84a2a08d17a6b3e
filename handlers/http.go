// Package handlers contains the HTTP handlers for sessionguard.
package handlers

import (
	"net/http"

	"sessionguard/auth"
	"sessionguard/helpers"
	"sessionguard/interfaces"
	"sessionguard/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	validator interfaces.SessionValidator
	logger    log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil validator or logger.
func NewHTTPServer(validator interfaces.SessionValidator, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		validator: helpers.MustNotNil(validator, "handlers.http.go: SessionValidator is required"),
		logger:    log.With(helpers.MustNotNil(logger, "handlers.http.go: logger is required"), "component", "HTTPServer"),
	}
}

// ValidateSession (POST /v1/sessions/validate) returns the validator's verdict. Always 200 once the body is
// well-formed; an empty token is answered with is_valid=false.
func (h *HTTPServer) ValidateSession(ectx echo.Context) error {
	var req ValidateSessionRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	if req.SessionToken == nil {
		return service.NewBadParameterError("session_token is required", nil)
	}

	valid := h.validator.ValidateToken(ectx.Request().Context(), *req.SessionToken)
	return ectx.JSON(http.StatusOK, ValidateSessionResponse{IsValid: valid})
}

// DecodeToken (POST /v1/tokens/decode) returns the token payload without verifying the signature.
func (h *HTTPServer) DecodeToken(ectx echo.Context) error {
	var req DecodeTokenRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	if req.Token == nil {
		return service.NewBadParameterError("token is required", nil)
	}

	claims, err := auth.DecodePayload(*req.Token)
	if err != nil {
		return service.NewBadParameterError("token payload cannot be decoded", err)
	}
	return ectx.JSON(http.StatusOK, DecodeTokenResponse{Payload: claims})
}

// GetSession (GET /v1/session) describes the session admitted by RequireSession. Subject, expiry and claims are
// filled in only when the token is a decodable JWT.
func (h *HTTPServer) GetSession(ectx echo.Context) error {
	resp := SessionResponse{IsValid: true}
	token := SessionToken(ectx)
	if token == "" {
		// bypass admitted a request without a token
		return ectx.JSON(http.StatusOK, resp)
	}

	claims, err := auth.DecodePayload(token)
	if err != nil {
		level.Debug(h.logger).Log("msg", "session token is not a decodable JWT", "err", err)
		return ectx.JSON(http.StatusOK, resp)
	}
	resp.Claims = claims
	if sub, ok := claims.Subject(); ok {
		resp.Subject = helpers.Ptr(sub)
	}
	if exp, ok := claims.ExpiresAt(); ok {
		resp.ExpiresAt = helpers.Ptr(exp)
	}
	return ectx.JSON(http.StatusOK, resp)
}

// Health (GET /healthz).
func (h *HTTPServer) Health(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
