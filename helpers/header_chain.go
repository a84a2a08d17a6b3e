package helpers

import (
	"context"
	"strconv"

	"sessionguard/interfaces"

	"google.golang.org/grpc/metadata"
)

// HeaderProcessorChain runs HeaderProcessors in sequence, each one receiving the output of the previous.
// cmd/main chains the request-id processor in front of the session auth processor.
type HeaderProcessorChain []interfaces.HeaderProcessor

// NewHeaderProcessorChain creates a chain from processors. Panics on an empty list or a nil element.
func NewHeaderProcessorChain(processors ...interfaces.HeaderProcessor) HeaderProcessorChain {
	if len(processors) == 0 {
		panic("helpers.header_chain.go: at least one processor is required")
	}
	for i, p := range processors {
		MustNotNil(p, "helpers.header_chain.go: processor at index "+strconv.Itoa(i)+" is required")
	}
	return HeaderProcessorChain(processors)
}

// Process runs all processors in order on a copy of headers and stops at the first error.
func (c HeaderProcessorChain) Process(ctx context.Context, headers metadata.MD, method string) (metadata.MD, error) {
	out := headers.Copy()
	for _, p := range c {
		next, err := p.Process(ctx, out, method)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
