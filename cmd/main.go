// Package main is the entry point for sessionguard. It loads configuration (.env + env + optional route YAML),
// builds the identity provider adapter (adapters.IdentityProviderHTTP), the session validator
// (service.NewSessionValidator) with Prometheus metrics, and serves two surfaces: the echo HTTP API
// (validate, decode, session, health, metrics) and a gRPC server whose calls are authorized per method by
// helpers.ConfigurableAuthProcessor. On SIGINT/SIGTERM both servers are shut down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sessionguard/adapters"
	"sessionguard/handlers"
	"sessionguard/helpers"
	"sessionguard/interfaces"
	"sessionguard/metrics"
	"sessionguard/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, levelOption(config.LogLevel))

	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"identity_api_url", config.IdentityAPIURL,
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"validate_timeout", config.ValidateTimeout,
		"session_cookie", config.SessionCookie,
		"grpc_routes", len(config.Routes.Routes),
	)
	if config.AuthBypass {
		level.Warn(logger).Log("msg", "AUTH_BYPASS is enabled, every session token is accepted")
	}

	m := metrics.New()

	var validator interfaces.SessionValidator
	{
		provider := adapters.IdentityProviderHTTP(config.IdentityAPIURL, &http.Client{})
		validator = service.NewSessionValidator(provider, m, config.AuthBypass, config.ValidateTimeout, logger)
	}

	e, err := newHTTPServer(validator, m, config.SessionCookie, logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to build HTTP server", "err", err)
		os.Exit(1)
	}

	grpcServer, healthServer, err := newGRPCServer(validator, config, logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to build gRPC server", "err", err)
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "err", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()
	go func() {
		level.Info(logger).Log("msg", "Starting gRPC server", "addr", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			level.Error(logger).Log("msg", "gRPC server error", "err", err)
		}
	}()

	<-quit
	level.Info(logger).Log("msg", "Shutting down...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during HTTP server shutdown", "err", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		grpcServer.Stop()
	}
	level.Info(logger).Log("msg", "Server stopped")
}

// newHTTPServer builds the echo server: recover and request-id middleware, the APIError handler, the OpenAPI
// request validator, the API routes (GET /v1/session behind RequireSession) and GET /metrics.
func newHTTPServer(validator interfaces.SessionValidator, m *metrics.Metrics, cookieName string, logger log.Logger) (*echo.Echo, error) {
	doc, err := handlers.LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	requestValidator, err := handlers.NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	service.RegisterErrorHandler(e, logger)
	e.Use(requestValidator)

	handlers.RegisterHandlers(e, handlers.NewHTTPServer(validator, logger), handlers.RequireSession(validator, cookieName))
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	return e, nil
}

// newGRPCServer builds the gRPC server with error mapping and header interceptors (request id, then per-method
// session authorization), the health service (SERVING) and reflection.
func newGRPCServer(validator interfaces.SessionValidator, config *Config, logger log.Logger) (*grpc.Server, *health.Server, error) {
	processor, err := helpers.NewConfigurableAuthProcessor(validator, config.Routes)
	if err != nil {
		return nil, nil, err
	}

	headerChain := helpers.NewHeaderProcessorChain(
		helpers.NewRequestIDProcessor(uuid.NewString),
		processor,
	)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			service.ErrorToGRPCUnaryInterceptor(logger),
			service.SessionAuthUnaryInterceptor(headerChain, logger),
		),
		grpc.ChainStreamInterceptor(
			service.ErrorToGRPCStreamInterceptor(logger),
			service.SessionAuthStreamInterceptor(headerChain, logger),
		),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)
	return grpcServer, healthServer, nil
}
