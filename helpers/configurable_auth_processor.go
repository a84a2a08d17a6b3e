package helpers

import (
	"context"
	"sort"
	"strings"

	"sessionguard/auth"
	"sessionguard/domain"
	"sessionguard/interfaces"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// MsgMissingOrInvalidToken is the status message for rejected calls. It does not say which of the two it was.
const MsgMissingOrInvalidToken = "missing or invalid token"

// AuthRule is a method prefix and the authorization mode for that prefix.
type AuthRule struct {
	Prefix        string
	Authorization domain.AuthorizationMode
}

// ConfigurableAuthProcessor implements interfaces.HeaderProcessor. It applies per-method authorization:
// for methods under a route with authorization=required the "authorization" metadata must carry a token the
// SessionValidator accepts; other methods pass through. Rules are kept sorted by descending prefix length.
type ConfigurableAuthProcessor struct {
	validator   interfaces.SessionValidator
	rules       []AuthRule
	defaultMode domain.AuthorizationMode
}

// NewConfigurableAuthProcessor builds the processor from route config. Panics on nil validator.
//
// Parameters: validator - session validator; cfg - routes and default mode (empty modes mean none).
//
// Returns: (*ConfigurableAuthProcessor, nil); (nil, *domain.RouteConfigError) when cfg is invalid.
//
// Called from cmd/main when building the gRPC server.
func NewConfigurableAuthProcessor(validator interfaces.SessionValidator, cfg domain.RouteConfig) (*ConfigurableAuthProcessor, error) {
	MustNotNil(validator, "helpers.configurable_auth_processor.go: SessionValidator is required")
	if err := domain.ValidateRouteConfig(cfg); err != nil {
		return nil, err
	}
	rules := make([]AuthRule, 0, len(cfg.Routes))
	for _, r := range cfg.Routes {
		rules = append(rules, AuthRule{Prefix: r.Prefix, Authorization: orNone(r.Authorization)})
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Prefix) > len(rules[j].Prefix)
	})
	return &ConfigurableAuthProcessor{
		validator:   validator,
		rules:       rules,
		defaultMode: orNone(cfg.Default),
	}, nil
}

func orNone(m domain.AuthorizationMode) domain.AuthorizationMode {
	if m == "" {
		return domain.AuthorizationNone
	}
	return m
}

// Mode returns the authorization mode for method: the longest matching prefix wins, otherwise the default.
func (p *ConfigurableAuthProcessor) Mode(method string) domain.AuthorizationMode {
	for _, rule := range p.rules {
		if strings.HasPrefix(method, rule.Prefix) {
			return rule.Authorization
		}
	}
	return p.defaultMode
}

// Process returns a copy of headers with any client-supplied x-session-subject removed. When method requires
// authorization it validates the "authorization" token first and, on success, sets x-session-subject to the token's
// "sub" claim if the token decodes as a JWT.
//
// Parameters: ctx - request context (handed to the validator); headers - incoming metadata (nil allowed); method - full gRPC method name.
//
// Returns: (metadata, nil) when the call may proceed; (nil, status Unauthenticated) when the token is missing or rejected.
// The token is always handed to the validator, so the development bypass also admits calls without one.
//
// Called from service.SessionAuthUnaryInterceptor and service.SessionAuthStreamInterceptor.
func (p *ConfigurableAuthProcessor) Process(ctx context.Context, headers metadata.MD, method string) (metadata.MD, error) {
	out := headers.Copy()
	out.Delete(HeaderSessionSubject)
	if p.Mode(method) != domain.AuthorizationRequired {
		return out, nil
	}
	token, _ := GetAuthToken(headers)
	if !p.validator.ValidateToken(ctx, token) {
		return nil, status.Error(codes.Unauthenticated, MsgMissingOrInvalidToken)
	}
	if claims, err := auth.DecodePayload(token); err == nil {
		if sub, ok := claims.Subject(); ok {
			out.Set(HeaderSessionSubject, sub)
		}
	}
	return out, nil
}
