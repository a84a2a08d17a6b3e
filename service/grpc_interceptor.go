package service

import (
	"context"
	"errors"

	"sessionguard/helpers"
	"sessionguard/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const msgInternal = "internal error"

// SessionAuthUnaryInterceptor returns a unary server interceptor that runs the incoming metadata through processor
// before the handler. A rejection is returned to the client unchanged (codes.Unauthenticated for a missing or invalid
// token); on success the handler sees the processed metadata (e.g. with x-session-subject set).
//
// Parameters: processor - per-method policy (helpers.ConfigurableAuthProcessor in prod); logger - "rejected" logs with method and err.
//
// Called from cmd/main when creating the gRPC server (grpc.ChainUnaryInterceptor).
func SessionAuthUnaryInterceptor(processor interfaces.HeaderProcessor, logger log.Logger) grpc.UnaryServerInterceptor {
	helpers.MustNotNil(processor, "service.grpc_interceptor.go: processor is required")
	logger = log.With(helpers.MustNotNil(logger, "service.grpc_interceptor.go: logger is required"), "component", "SessionAuthInterceptor")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		authCtx, err := authorize(ctx, processor, logger, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// SessionAuthStreamInterceptor is the streaming counterpart of SessionAuthUnaryInterceptor. The handler receives a
// stream whose Context carries the processed metadata.
func SessionAuthStreamInterceptor(processor interfaces.HeaderProcessor, logger log.Logger) grpc.StreamServerInterceptor {
	helpers.MustNotNil(processor, "service.grpc_interceptor.go: processor is required")
	logger = log.With(helpers.MustNotNil(logger, "service.grpc_interceptor.go: logger is required"), "component", "SessionAuthInterceptor")
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := authorize(ss.Context(), processor, logger, info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &authorizedStream{ServerStream: ss, ctx: authCtx})
	}
}

func authorize(ctx context.Context, processor interfaces.HeaderProcessor, logger log.Logger, method string) (context.Context, error) {
	in, _ := metadata.FromIncomingContext(ctx)
	out, err := processor.Process(ctx, in, method)
	if err != nil {
		level.Info(logger).Log(
			"msg", "call rejected",
			"method", method,
			"err", err,
		)
		return nil, err
	}
	return metadata.NewIncomingContext(ctx, out), nil
}

// authorizedStream overrides Context so the stream handler sees the processed metadata.
type authorizedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authorizedStream) Context() context.Context {
	return s.ctx
}

// ErrorToGRPCUnaryInterceptor returns a unary server interceptor that logs handler errors and maps them via
// handlerErrorToGRPC, so clients never see a raw Go error string as codes.Unknown.
//
// Called from cmd/main (grpc.ChainUnaryInterceptor, outermost).
func ErrorToGRPCUnaryInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			level.Info(logger).Log(
				"msg", "unary handler error",
				"method", info.FullMethod,
				"err", err,
			)
			err = handlerErrorToGRPC(err)
		}
		return resp, err
	}
}

// ErrorToGRPCStreamInterceptor is the streaming counterpart of ErrorToGRPCUnaryInterceptor.
func ErrorToGRPCStreamInterceptor(logger log.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			level.Info(logger).Log(
				"msg", "stream handler error",
				"method", info.FullMethod,
				"err", err,
			)
			err = handlerErrorToGRPC(err)
		}
		return err
	}
}

// handlerErrorToGRPC maps handler errors to a gRPC status: nil → nil; a status with code != Unknown is returned as-is;
// context cancellation and deadline map to Canceled and DeadlineExceeded; anything else → Internal "internal error".
func handlerErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Err()
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, context.Canceled.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, context.DeadlineExceeded.Error())
	default:
		return status.Error(codes.Internal, msgInternal)
	}
}
