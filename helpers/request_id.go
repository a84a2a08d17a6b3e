package helpers

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// HeaderRequestID is the metadata key correlating a gRPC call across logs, the gRPC twin of echo's X-Request-Id.
const HeaderRequestID = "x-request-id"

// RequestIDProcessor implements interfaces.HeaderProcessor: it keeps a client-supplied x-request-id and
// generates one otherwise.
type RequestIDProcessor struct {
	generate func() string
}

// NewRequestIDProcessor creates the processor. generate is uuid.NewString in prod. Panics on nil generate.
func NewRequestIDProcessor(generate func() string) *RequestIDProcessor {
	return &RequestIDProcessor{generate: MustNotNil(generate, "helpers.request_id.go: generate is required")}
}

// Process returns a copy of headers that carries exactly one non-empty x-request-id.
func (p *RequestIDProcessor) Process(_ context.Context, headers metadata.MD, _ string) (metadata.MD, error) {
	out := headers.Copy()
	if id, ok := GetHeaderValue(out, HeaderRequestID); ok {
		out.Set(HeaderRequestID, id)
		return out, nil
	}
	out.Set(HeaderRequestID, p.generate())
	return out, nil
}
