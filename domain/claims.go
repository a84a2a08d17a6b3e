package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Bounds of a NumericDate that time.Time can marshal (0001-01-01T00:00:00Z through 9999-12-31T23:59:59Z).
const (
	minExpiresAt = -62135596800
	maxExpiresAt = 253402300799
)

// Claims is the decoded JWT payload as a plain key/value mapping. Values keep the shapes produced by
// encoding/json (string, float64, bool, []any, map[string]any, nil). Nothing in Claims is verified.
type Claims map[string]any

// Subject returns the "sub" claim.
//
// Returns: (sub, true) when the claim is a non-empty string; ("", false) otherwise (missing, wrong type, empty).
//
// Called from handlers.HTTPServer.GetSession and helpers.ConfigurableAuthProcessor.Process for display/enrichment.
func (c Claims) Subject() (string, bool) {
	sub, ok := c["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}

// ExpiresAt returns the "exp" claim (NumericDate, seconds since epoch) as UTC time.
//
// Returns: (time, true) when exp is a JSON number within years 0001-9999; (zero time, false) otherwise.
//
// Called from handlers.HTTPServer.GetSession.
func (c Claims) ExpiresAt() (time.Time, bool) {
	var secs float64
	switch v := c["exp"].(type) {
	case float64:
		secs = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		secs = f
	default:
		return time.Time{}, false
	}
	if math.IsNaN(secs) || secs < minExpiresAt || secs >= maxExpiresAt+1 {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}
