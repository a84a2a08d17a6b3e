package domain

// ValidationOutcome labels how a single token validation ended. Used as the metrics label and in logs.
type ValidationOutcome string

const (
	OutcomeValid      ValidationOutcome = "valid"
	OutcomeInvalid    ValidationOutcome = "invalid"
	OutcomeBypassed   ValidationOutcome = "bypassed"
	OutcomeEmptyToken ValidationOutcome = "empty_token"
	OutcomeError      ValidationOutcome = "error"
)

// Outcomes lists every ValidationOutcome, in a stable order (metrics pre-initialise one series per outcome).
var Outcomes = []ValidationOutcome{
	OutcomeValid,
	OutcomeInvalid,
	OutcomeBypassed,
	OutcomeEmptyToken,
	OutcomeError,
}
