package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sessionguard/domain"
)

// ErrInvalidTokenFormat is returned when the token has no payload segment (fewer than two parts separated by ".").
var ErrInvalidTokenFormat = errors.New("invalid token format: expected header.payload[.signature]")

// base64URLToStd maps the URL-safe alphabet onto the standard one.
var base64URLToStd = strings.NewReplacer("-", "+", "_", "/")

// DecodePayload returns the payload segment (index 1) of a dot-separated JWT as claims. The segment is
// converted from the base64url alphabet to standard base64, decoded (trailing "=" padding optional) and
// parsed as a JSON object. The signature is NOT verified: the result is for inspection and display only
// and must never drive a trust decision.
//
// Parameter token - raw token string ("header.payload.signature"; a missing signature is tolerated).
//
// Returns: (claims, nil) on success; (nil, ErrInvalidTokenFormat) when there is no payload segment; (nil, wrapped error) when
// the segment is not valid base64 or not a JSON object.
//
// Called from handlers.HTTPServer (decode and session endpoints) and helpers.ConfigurableAuthProcessor.
func DecodePayload(token string) (domain.Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, ErrInvalidTokenFormat
	}
	segment := strings.TrimRight(base64URLToStd.Replace(parts[1]), "=")

	payload, err := base64.RawStdEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	var claims domain.Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	if claims == nil {
		// JSON "null" unmarshals into a nil map without error.
		return nil, errors.New("unmarshal payload: payload is null")
	}
	return claims, nil
}
