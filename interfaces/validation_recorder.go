package interfaces

import (
	"time"

	"sessionguard/domain"
)

// ValidationRecorder receives one observation per token validation.
//
// Implemented by metrics.Metrics. Called from service.sessionValidator.ValidateToken.
//
//go:generate moq -stub -out mock/validation_recorder.go -pkg mock . ValidationRecorder
type ValidationRecorder interface {
	// RecordValidation counts outcome. elapsed is the identity provider round trip, or 0 when no call was made.
	RecordValidation(outcome domain.ValidationOutcome, elapsed time.Duration)
}
