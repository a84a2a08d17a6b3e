package interfaces

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// HeaderProcessor inspects incoming gRPC metadata before the handler runs and returns the metadata
// the handler should see (or a gRPC status error that is returned to the client as-is).
//
// Must not mutate the input headers; return a copy with modifications. method is the full gRPC
// method name (e.g. /pkg.Service/Method) and selects the per-route policy.
//
// Implemented by helpers.ConfigurableAuthProcessor, helpers.RequestIDProcessor and helpers.HeaderProcessorChain.
// Called from service.SessionAuthUnaryInterceptor and service.SessionAuthStreamInterceptor.
//
//go:generate moq -stub -out mock/header_processor.go -pkg mock . HeaderProcessor
type HeaderProcessor interface {
	// Process applies the policy for method to headers.
	// Parameters: ctx - request context (passed on to token validation); headers - incoming metadata (nil allowed); method - full gRPC method name.
	// Returns: (metadata for the handler, nil) on success; (nil, error) when the call must be rejected (codes.Unauthenticated).
	Process(ctx context.Context, headers metadata.MD, method string) (metadata.MD, error)
}
