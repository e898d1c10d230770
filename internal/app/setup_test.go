package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/transport/rest"
	"github.com/abgdnv/storefront/pkg/messaging"
	pkgconfig "github.com/abgdnv/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTPServer: pkgconfig.HTTPConfig{Port: 8080},
		Session: pkgconfig.SessionConfig{
			Secret:          "0123456789abcdef0123456789abcdef",
			Issuer:          "storefront-test",
			CookieName:      "sf_session",
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
		RateLimit: pkgconfig.RateLimitConfig{Enabled: true, RPS: 100, Burst: 100},
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) (*Dependencies, http.Handler) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	deps, err := SetupDependencies(cfg, messaging.NoopPublisher{}, NewMetricsRegistry(), logger)
	require.NoError(t, err)
	return deps, SetupHttpHandler(deps)
}

func TestSetupHttpHandler(t *testing.T) {
	_, handler := newTestHandler(t, testConfig())

	testCases := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{name: "health", path: "/healthz", expectedCode: http.StatusOK},
		{name: "metrics", path: "/metrics", expectedCode: http.StatusOK, expectedBody: "go_goroutines"},
		{name: "catalog", path: "/api/v1/products/1", expectedCode: http.StatusOK, expectedBody: "fast-furious-skyline-gtr"},
		{name: "unknown route", path: "/api/v1/nope", expectedCode: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func TestSetupHttpHandler_RequestIDAndSession(t *testing.T) {
	_, handler := newTestHandler(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Request-Id", "req-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, rec.Header().Get(rest.SessionTokenHeader))
}

func TestSetupDependencies(t *testing.T) {
	t.Run("rate limiter follows config", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit.Enabled = false

		deps, _ := newTestHandler(t, cfg)

		assert.Nil(t, deps.RateLimiter)
	})
}

func TestSetupBroker_Disabled(t *testing.T) {
	broker, err := SetupBroker(context.Background(), testConfig(), slog.New(slog.NewJSONHandler(io.Discard, nil)))

	require.NoError(t, err)
	assert.IsType(t, messaging.NoopPublisher{}, broker.Publisher)
	assert.Nil(t, broker.JetStream)
	assert.NoError(t, broker.Close())
}

func TestSetupGrpcServer(t *testing.T) {
	deps, _ := newTestHandler(t, testConfig())

	srv, hs := SetupGrpcServer(deps, testConfig())
	defer srv.Stop()

	require.NotNil(t, hs)
	info := srv.GetServiceInfo()
	assert.Len(t, info, 1)
	assert.Contains(t, info, "grpc.health.v1.Health")
}
