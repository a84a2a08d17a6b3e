package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"sessionguard/adapters"
	"sessionguard/domain"
	"sessionguard/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionValidator_Panics(t *testing.T) {
	provider := &mock.IdentityProviderMock{}
	recorder := &mock.ValidationRecorderMock{}
	logger := log.NewNopLogger()

	t.Run("provider_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.validator.go: identity provider is required", func() {
			NewSessionValidator(nil, recorder, false, time.Second, logger)
		})
	})
	t.Run("recorder_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.validator.go: validation recorder is required", func() {
			NewSessionValidator(provider, nil, false, time.Second, logger)
		})
	})
	t.Run("logger_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.validator.go: logger is required", func() {
			NewSessionValidator(provider, recorder, false, time.Second, nil)
		})
	})
}

func TestSessionValidator_ValidateToken(t *testing.T) {
	tests := []struct {
		name        string
		bypass      bool
		token       string
		validate    func(ctx context.Context, token string) (bool, error)
		want        bool
		wantCalls   int
		wantOutcome domain.ValidationOutcome
	}{
		{
			name:        "bypass_accepts_any_token_without_call",
			bypass:      true,
			token:       "garbage",
			want:        true,
			wantCalls:   0,
			wantOutcome: domain.OutcomeBypassed,
		},
		{
			name:        "bypass_accepts_empty_token",
			bypass:      true,
			token:       "",
			want:        true,
			wantCalls:   0,
			wantOutcome: domain.OutcomeBypassed,
		},
		{
			name:        "empty_token_rejected_without_call",
			token:       "",
			want:        false,
			wantCalls:   0,
			wantOutcome: domain.OutcomeEmptyToken,
		},
		{
			name:  "provider_says_valid",
			token: "tok",
			validate: func(_ context.Context, token string) (bool, error) {
				return token == "tok", nil
			},
			want:        true,
			wantCalls:   1,
			wantOutcome: domain.OutcomeValid,
		},
		{
			name:  "provider_says_invalid",
			token: "tok",
			validate: func(context.Context, string) (bool, error) {
				return false, nil
			},
			want:        false,
			wantCalls:   1,
			wantOutcome: domain.OutcomeInvalid,
		},
		{
			name:  "provider_error_fails_closed",
			token: "tok",
			validate: func(context.Context, string) (bool, error) {
				return true, errors.New("connection refused")
			},
			want:        false,
			wantCalls:   1,
			wantOutcome: domain.OutcomeError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mock.IdentityProviderMock{ValidateSessionFunc: tt.validate}
			recorder := &mock.ValidationRecorderMock{}
			v := NewSessionValidator(provider, recorder, tt.bypass, time.Second, log.NewNopLogger())

			got := v.ValidateToken(context.Background(), tt.token)

			assert.Equal(t, tt.want, got)
			assert.Len(t, provider.ValidateSessionCalls(), tt.wantCalls)
			calls := recorder.RecordValidationCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantOutcome, calls[0].Outcome)
			if tt.wantCalls == 0 {
				assert.Zero(t, calls[0].Elapsed)
			}
		})
	}
}

func TestSessionValidator_LogsSwallowedError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(log.NewSyncWriter(&buf))
	provider := &mock.IdentityProviderMock{
		ValidateSessionFunc: func(context.Context, string) (bool, error) {
			return false, errors.New("dial tcp: connection refused")
		},
	}
	v := NewSessionValidator(provider, &mock.ValidationRecorderMock{}, false, time.Second, logger)

	assert.False(t, v.ValidateToken(context.Background(), "tok"))
	assert.Contains(t, buf.String(), `msg="token validation error"`)
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "component=SessionValidator")
}

func TestSessionValidator_AppliesTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	provider := &mock.IdentityProviderMock{
		ValidateSessionFunc: func(ctx context.Context, _ string) (bool, error) {
			deadline, hasDeadline = ctx.Deadline()
			return true, nil
		},
	}

	before := time.Now()
	v := NewSessionValidator(provider, &mock.ValidationRecorderMock{}, false, 250*time.Millisecond, log.NewNopLogger())
	require.True(t, v.ValidateToken(context.Background(), "tok"))
	require.True(t, hasDeadline)
	assert.WithinDuration(t, before.Add(250*time.Millisecond), deadline, 200*time.Millisecond)

	v = NewSessionValidator(provider, &mock.ValidationRecorderMock{}, false, 0, log.NewNopLogger())
	require.True(t, v.ValidateToken(context.Background(), "tok"))
	assert.False(t, hasDeadline)
}

func TestSessionValidator_ConcurrentCalls(t *testing.T) {
	provider := &mock.IdentityProviderMock{
		ValidateSessionFunc: func(_ context.Context, token string) (bool, error) {
			return token == "good", nil
		},
	}
	recorder := &mock.ValidationRecorderMock{}
	v := NewSessionValidator(provider, recorder, false, time.Second, log.NewNopLogger())

	const n = 32
	results := make([]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := "bad"
			if i%2 == 0 {
				token = "good"
			}
			results[i] = v.ValidateToken(context.Background(), token)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, i%2 == 0, got, "call %d", i)
	}
	assert.Len(t, provider.ValidateSessionCalls(), n)
	assert.Len(t, recorder.RecordValidationCalls(), n)
}

// TestSessionValidator_WithHTTPProvider runs the validator against a real identity endpoint.
func TestSessionValidator_WithHTTPProvider(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
	}{
		{
			name: "200_is_valid_true",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"is_valid":true}`))
			},
			want: true,
		},
		{
			name: "200_is_valid_false",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"is_valid":false}`))
			},
			want: false,
		},
		{
			name: "401",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: false,
		},
		{
			name: "malformed_body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"is_valid":`))
			},
			want: false,
		},
		{
			name: "slow_provider_times_out",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
					_, _ = w.Write([]byte(`{"is_valid":true}`))
				case <-r.Context().Done():
				}
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			recorder := &mock.ValidationRecorderMock{}
			provider := adapters.IdentityProviderHTTP(server.URL, server.Client())
			v := NewSessionValidator(provider, recorder, false, 100*time.Millisecond, log.NewNopLogger())

			assert.Equal(t, tt.want, v.ValidateToken(context.Background(), "tok"))
			assert.Len(t, recorder.RecordValidationCalls(), 1)
		})
	}
}
