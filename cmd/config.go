package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sessionguard/domain"

	"github.com/go-kit/log/level"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envIdentityAPIURL    = "IDENTITY_API_URL"
	envAuthBypass        = "AUTH_BYPASS"
	envValidateTimeoutMs = "VALIDATE_TIMEOUT_MS"
	envHTTPPort          = "SERVICE_PORT_HTTP"
	envGRPCPort          = "SERVICE_PORT_GRPC"
	envSessionCookie     = "SESSION_COOKIE"
	envLogLevel          = "LOG_LEVEL"
	envConfigPath        = "CONFIG_PATH"
)

// Defaults for optional variables.
const (
	defaultValidateTimeout = 5000 * time.Millisecond
	defaultHTTPPort        = 8080
	defaultGRPCPort        = 50051
	defaultSessionCookie   = "hanko"
	defaultLogLevel        = "info"
)

// dotEnvFile is read from the working directory before the environment is consulted. Variables already set in
// the environment win over the file.
const dotEnvFile = ".env"

// Config holds the service configuration loaded by LoadConfig. Routes is the gRPC method authorization policy
// from the YAML file at CONFIG_PATH (all methods open when CONFIG_PATH is unset).
type Config struct {
	IdentityAPIURL  string        `validate:"required,url"`
	ValidateTimeout time.Duration `validate:"gt=0"`
	HTTPPort        int           `validate:"min=1,max=65535"`
	GRPCPort        int           `validate:"min=1,max=65535"`
	SessionCookie   string        `validate:"required"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	AuthBypass      bool
	Routes          domain.RouteConfig
}

// yamlConfig is the root struct of the CONFIG_PATH file.
type yamlConfig struct {
	Default string      `yaml:"default"`
	Routes  []yamlRoute `yaml:"routes"`
}

// yamlRoute is one route entry: gRPC method prefix and authorization (none|required).
type yamlRoute struct {
	Prefix        string `yaml:"prefix"`
	Authorization string `yaml:"authorization"`
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// loadDotEnv loads path into the process environment. A missing file is not an error; a malformed one is.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the configuration from .env (optional), environment variables and the optional route file.
// IDENTITY_API_URL is required; AUTH_BYPASS, VALIDATE_TIMEOUT_MS, SERVICE_PORT_HTTP, SERVICE_PORT_GRPC,
// SESSION_COOKIE and LOG_LEVEL fall back to defaults. The assembled Config is checked with its validate tags and
// the route config with domain.ValidateRouteConfig.
//
// Returns: (*Config, nil) on success; (nil, error) naming the offending variable or file otherwise.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		IdentityAPIURL:  strings.TrimSpace(os.Getenv(envIdentityAPIURL)),
		ValidateTimeout: defaultValidateTimeout,
		HTTPPort:        defaultHTTPPort,
		GRPCPort:        defaultGRPCPort,
		SessionCookie:   defaultSessionCookie,
		LogLevel:        defaultLogLevel,
		Routes:          domain.RouteConfig{Default: domain.AuthorizationNone},
	}
	if cfg.IdentityAPIURL == "" {
		return nil, fmt.Errorf("%s is required", envIdentityAPIURL)
	}

	if v := strings.TrimSpace(os.Getenv(envAuthBypass)); v != "" {
		bypass, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be a boolean, got %q", envAuthBypass, v)
		}
		cfg.AuthBypass = bypass
	}
	if v := strings.TrimSpace(os.Getenv(envValidateTimeoutMs)); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer (ms), got %q", envValidateTimeoutMs, v)
		}
		cfg.ValidateTimeout = time.Duration(ms) * time.Millisecond
	}
	var err error
	if cfg.HTTPPort, err = portFromEnv(envHTTPPort, defaultHTTPPort); err != nil {
		return nil, err
	}
	if cfg.GRPCPort, err = portFromEnv(envGRPCPort, defaultGRPCPort); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(os.Getenv(envSessionCookie)); v != "" {
		cfg.SessionCookie = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		routes, err := loadRouteConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg.Routes = routes
	}

	if err := configValidate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// portFromEnv reads a TCP port from name, returning def when the variable is unset.
func portFromEnv(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	port, err := strconv.Atoi(v)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be a valid port (1-65535), got %q", name, v)
	}
	return port, nil
}

// loadRouteConfig reads the gRPC authorization routes from the YAML file at path (relative paths are resolved
// against the working directory), normalizes prefixes and validates the result.
func loadRouteConfig(path string) (domain.RouteConfig, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return domain.RouteConfig{}, err
		}
		path = abs
	}
	raw, err := loadYAMLConfig(path)
	if err != nil {
		return domain.RouteConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}

	routes := make([]domain.Route, 0, len(raw.Routes))
	for _, route := range raw.Routes {
		mode := domain.AuthorizationMode(strings.TrimSpace(route.Authorization))
		if mode == "" {
			mode = domain.AuthorizationNone
		}
		routes = append(routes, domain.Route{
			Prefix:        normalizePrefix(route.Prefix),
			Authorization: mode,
		})
	}
	cfg := domain.RouteConfig{
		Routes:  routes,
		Default: domain.AuthorizationMode(strings.TrimSpace(raw.Default)),
	}
	if cfg.Default == "" {
		cfg.Default = domain.AuthorizationNone
	}
	if err := domain.ValidateRouteConfig(cfg); err != nil {
		return domain.RouteConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// normalizePrefix trims spaces, removes a trailing "*" and adds a leading "/" so prefix matching
// (strings.HasPrefix against the full method name) works.
func normalizePrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	p = strings.TrimSuffix(p, "*")
	if p != "" && p[0] != '/' {
		p = "/" + p
	}
	return p
}

// levelOption maps LOG_LEVEL to a go-kit level filter.
func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
