package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sessionguard/domain"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes every config variable unset for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		envIdentityAPIURL, envAuthBypass, envValidateTimeoutMs, envHTTPPort,
		envGRPCPort, envSessionCookie, envLogLevel, envConfigPath,
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(envIdentityAPIURL, "http://hanko:8000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://hanko:8000", cfg.IdentityAPIURL)
	assert.False(t, cfg.AuthBypass)
	assert.Equal(t, 5*time.Second, cfg.ValidateTimeout)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "hanko", cfg.SessionCookie)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Routes.Routes)
	assert.Equal(t, domain.AuthorizationNone, cfg.Routes.Default)
}

func TestLoadConfig_AllSet(t *testing.T) {
	clearEnv(t)
	t.Setenv(envIdentityAPIURL, "https://passkeys.example.com/api")
	t.Setenv(envAuthBypass, "true")
	t.Setenv(envValidateTimeoutMs, "250")
	t.Setenv(envHTTPPort, "9090")
	t.Setenv(envGRPCPort, "9091")
	t.Setenv(envSessionCookie, "session")
	t.Setenv(envLogLevel, "DEBUG")
	t.Setenv(envConfigPath, writeFile(t, t.TempDir(), "routes.yaml", `
default: required
routes:
  - prefix: grpc.health.v1.Health/*
    authorization: none
  - prefix: /orders.OrderService/
    authorization: required
  - prefix: /catalog.
`))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.AuthBypass)
	assert.Equal(t, 250*time.Millisecond, cfg.ValidateTimeout)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 9091, cfg.GRPCPort)
	assert.Equal(t, "session", cfg.SessionCookie)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, domain.AuthorizationRequired, cfg.Routes.Default)
	assert.Equal(t, []domain.Route{
		{Prefix: "/grpc.health.v1.Health/", Authorization: domain.AuthorizationNone},
		{Prefix: "/orders.OrderService/", Authorization: domain.AuthorizationRequired},
		{Prefix: "/catalog.", Authorization: domain.AuthorizationNone},
	}, cfg.Routes.Routes)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		routes  string
		wantErr string
	}{
		{name: "url missing", env: map[string]string{}, wantErr: envIdentityAPIURL + " is required"},
		{name: "url invalid", env: map[string]string{envIdentityAPIURL: "not-a-url"}, wantErr: "invalid configuration"},
		{name: "bypass invalid", env: map[string]string{envAuthBypass: "maybe"}, wantErr: envAuthBypass},
		{name: "timeout zero", env: map[string]string{envValidateTimeoutMs: "0"}, wantErr: envValidateTimeoutMs},
		{name: "timeout not a number", env: map[string]string{envValidateTimeoutMs: "5s"}, wantErr: envValidateTimeoutMs},
		{name: "http port out of range", env: map[string]string{envHTTPPort: "70000"}, wantErr: envHTTPPort},
		{name: "grpc port not a number", env: map[string]string{envGRPCPort: "grpc"}, wantErr: envGRPCPort},
		{name: "log level unknown", env: map[string]string{envLogLevel: "trace"}, wantErr: "invalid configuration"},
		{name: "config path missing file", env: map[string]string{envConfigPath: "/nonexistent/routes.yaml"}, wantErr: "load config"},
		{name: "routes bad yaml", routes: "routes: [", wantErr: "load config"},
		{name: "routes bad mode", routes: "routes:\n  - prefix: /svc/\n    authorization: sometimes\n", wantErr: "route[0]"},
		{name: "routes duplicate", routes: "routes:\n  - prefix: /svc/\n  - prefix: /svc/*\n", wantErr: "route[1]"},
		{name: "routes empty prefix", routes: "routes:\n  - authorization: required\n", wantErr: "route[0]"},
		{name: "routes bad default", routes: "default: always\n", wantErr: "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, ok := tt.env[envIdentityAPIURL]; !ok && tt.name != "url missing" {
				t.Setenv(envIdentityAPIURL, "http://hanko:8000")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.routes != "" {
				t.Setenv(envConfigPath, writeFile(t, t.TempDir(), "routes.yaml", tt.routes))
			}

			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	t.Run("file fills unset variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(envSessionCookie, "from-env")
		dir := t.TempDir()
		writeFile(t, dir, dotEnvFile, "IDENTITY_API_URL=http://from-dotenv:8000\nSESSION_COOKIE=from-dotenv\n")
		chdir(t, dir)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://from-dotenv:8000", cfg.IdentityAPIURL)
		assert.Equal(t, "from-env", cfg.SessionCookie, "environment wins over .env")
	})
	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(envIdentityAPIURL, "http://hanko:8000")
		dir := t.TempDir()
		writeFile(t, dir, dotEnvFile, "NOT-A-VALID-NAME=1\n")
		chdir(t, dir)

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), dotEnvFile)
	})
	t.Run("missing file is fine", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(envIdentityAPIURL, "http://hanko:8000")
		chdir(t, t.TempDir())

		_, err := LoadConfig()
		require.NoError(t, err)
	})
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "/svc/", normalizePrefix("svc/*"))
	assert.Equal(t, "/svc/", normalizePrefix("  /svc/  "))
	assert.Equal(t, "", normalizePrefix(" "))
}

func TestLevelOption(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", ""} {
		assert.NotNil(t, levelOption(lvl), lvl)
	}
	var buf []string
	logger := level.NewFilter(logFunc(func(kv ...any) error {
		buf = append(buf, kv[1].(level.Value).String())
		return nil
	}), levelOption("warn"))
	_ = level.Info(logger).Log("msg", "dropped")
	_ = level.Warn(logger).Log("msg", "kept")
	_ = level.Error(logger).Log("msg", "kept")
	assert.Equal(t, []string{"warn", "error"}, buf)
}

type logFunc func(kv ...any) error

func (f logFunc) Log(kv ...any) error { return f(kv...) }

// chdir changes the working directory for the test and restores it afterwards
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
