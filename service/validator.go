package service

import (
	"context"
	"time"

	"sessionguard/domain"
	"sessionguard/helpers"
	"sessionguard/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// sessionValidator implements interfaces.SessionValidator on top of an IdentityProvider. It owns the policy around the
// single provider call: development bypass, empty-token short-circuit, per-call timeout and fail-closed error handling.
// It holds no mutable state and is safe for concurrent use.
type sessionValidator struct {
	provider interfaces.IdentityProvider
	recorder interfaces.ValidationRecorder
	bypass   bool
	timeout  time.Duration
	logger   log.Logger
}

// NewSessionValidator creates a SessionValidator. Panics on nil provider, recorder or logger.
//
// Parameters: provider - remote identity provider (adapters.IdentityProviderHTTP in prod); recorder - metrics sink;
// bypass - when true every token is accepted without a network call (local development only); timeout - upper bound for one
// provider call, 0 or negative means the caller's context alone bounds it; logger - diagnostics for swallowed failures.
//
// Returns: interfaces.SessionValidator (*sessionValidator).
//
// Called from cmd/main.
func NewSessionValidator(
	provider interfaces.IdentityProvider,
	recorder interfaces.ValidationRecorder,
	bypass bool,
	timeout time.Duration,
	logger log.Logger,
) interfaces.SessionValidator {
	return &sessionValidator{
		provider: helpers.MustNotNil(provider, "service.validator.go: identity provider is required"),
		recorder: helpers.MustNotNil(recorder, "service.validator.go: validation recorder is required"),
		bypass:   bypass,
		timeout:  timeout,
		logger:   log.With(helpers.MustNotNil(logger, "service.validator.go: logger is required"), "component", "SessionValidator"),
	}
}

// ValidateToken reports whether token is a valid session.
//
// Order: bypass → true (no call); empty token → false (no call); otherwise one provider call whose verdict is returned.
// Any provider error (network, timeout, malformed response) is logged and collapses to false; nothing is returned to the caller.
//
// Called from handlers (HTTP) and helpers.ConfigurableAuthProcessor (gRPC).
func (v *sessionValidator) ValidateToken(ctx context.Context, token string) bool {
	if v.bypass {
		level.Debug(v.logger).Log("msg", "session validation bypassed")
		v.recorder.RecordValidation(domain.OutcomeBypassed, 0)
		return true
	}
	if token == "" {
		v.recorder.RecordValidation(domain.OutcomeEmptyToken, 0)
		return false
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	start := time.Now()
	valid, err := v.provider.ValidateSession(ctx, token)
	elapsed := time.Since(start)
	if err != nil {
		level.Warn(v.logger).Log("msg", "token validation error", "elapsed", elapsed, "err", err)
		v.recorder.RecordValidation(domain.OutcomeError, elapsed)
		return false
	}
	if !valid {
		v.recorder.RecordValidation(domain.OutcomeInvalid, elapsed)
		return false
	}
	v.recorder.RecordValidation(domain.OutcomeValid, elapsed)
	return true
}
