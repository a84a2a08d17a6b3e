package helpers

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

// HeaderAuthorization is the gRPC metadata key carrying the session token (raw or "Bearer <token>").
const HeaderAuthorization = "authorization"

// HeaderSessionSubject is the metadata key added to the incoming context after a successful
// session check; its value is the token's "sub" claim when the token is a decodable JWT.
const HeaderSessionSubject = "x-session-subject"

const bearerPrefix = "bearer "

// BearerToken strips an optional case-insensitive "Bearer " prefix from value and trims surrounding spaces.
//
// Parameter value - raw Authorization header or metadata value.
//
// Returns: the token, or "" when value is empty or holds only the prefix.
//
// Called from GetAuthToken and TokenFromRequest.
func BearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		v = strings.TrimSpace(v[len(bearerPrefix):])
	}
	return v
}

// GetHeaderValue returns the first value of key in md. Key is lowercased (gRPC canonicalizes keys).
//
// Returns: (value, true) when there is a non-empty first value; ("", false) when md is nil, key is missing or value is empty.
func GetHeaderValue(md metadata.MD, key string) (string, bool) {
	if md == nil {
		return "", false
	}
	vals := md.Get(strings.ToLower(key))
	if len(vals) == 0 || vals[0] == "" {
		return "", false
	}
	return vals[0], true
}

// GetAuthToken returns the session token from "authorization" metadata, with an optional "Bearer " prefix removed.
//
// Parameter md - request metadata (nil allowed).
//
// Returns: (token, true) or ("", false) when missing, empty or whitespace-only.
//
// Called from ConfigurableAuthProcessor.Process.
func GetAuthToken(md metadata.MD) (string, bool) {
	raw, ok := GetHeaderValue(md, HeaderAuthorization)
	if !ok {
		return "", false
	}
	token := BearerToken(raw)
	if token == "" {
		return "", false
	}
	return token, true
}

// TokenFromRequest extracts the session token from an HTTP request: the Authorization header first,
// then the cookie named cookieName (skipped when cookieName is empty).
//
// Returns: the token or "" when neither source carries one.
//
// Called from handlers.RequireSession.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if token := BearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookieName == "" {
		return ""
	}
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
