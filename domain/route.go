package domain

import (
	"strconv"
)

// AuthorizationMode is the per-method auth policy for the gRPC surface: none (pass through) or required (valid session token).
type AuthorizationMode string

const (
	AuthorizationNone     AuthorizationMode = "none"
	AuthorizationRequired AuthorizationMode = "required"
)

// Route maps a gRPC method prefix to an authorization mode.
// Prefix must start with "/" and is matched with strings.HasPrefix(fullMethod, Prefix).
type Route struct {
	Prefix        string
	Authorization AuthorizationMode
}

// RouteConfig is the list of method routes plus the mode applied when no prefix matches.
// Order does not matter: matching is longest-prefix.
type RouteConfig struct {
	Routes  []Route
	Default AuthorizationMode
}

// ValidateRouteConfig validates the route config: each route has a non-empty Prefix starting with "/" and authorization none|required (empty means none); prefixes are unique; Default is none|required (empty means none).
//
// Parameter cfg - route config (usually from YAML via cmd.LoadConfig).
//
// Returns: nil when config is valid; *RouteConfigError with Index (0-based route index or -1 for the default) and Reason on the first error found.
//
// Called from cmd.LoadConfig and helpers.NewConfigurableAuthProcessor.
func ValidateRouteConfig(cfg RouteConfig) error {
	seen := make(map[string]int, len(cfg.Routes))
	for i, r := range cfg.Routes {
		if r.Prefix == "" {
			return &RouteConfigError{Index: i, Reason: "prefix must be non-empty"}
		}
		if r.Prefix[0] != '/' {
			return &RouteConfigError{Index: i, Reason: "prefix must start with /"}
		}
		if !validMode(r.Authorization) {
			return &RouteConfigError{Index: i, Reason: "authorization must be none|required"}
		}
		if first, dup := seen[r.Prefix]; dup {
			return &RouteConfigError{Index: i, Reason: "prefix duplicates route[" + strconv.Itoa(first) + "]"}
		}
		seen[r.Prefix] = i
	}
	if !validMode(cfg.Default) {
		return &RouteConfigError{Index: -1, Reason: "default must be none|required"}
	}
	return nil
}

func validMode(m AuthorizationMode) bool {
	switch m {
	case "", AuthorizationNone, AuthorizationRequired:
		return true
	default:
		return false
	}
}

// RouteConfigError is returned by ValidateRouteConfig when a route or the default is invalid.
// Index is the route index (0-based) or -1 for the default; Reason is a human-readable message.
type RouteConfigError struct {
	Index  int
	Reason string
}

// Error returns "route[N]: reason", or "default: reason" for Index -1.
func (e *RouteConfigError) Error() string {
	if e.Index < 0 {
		return "default: " + e.Reason
	}
	return "route[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
