package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(rps float64, burst int, trustProxy bool) *RateLimiter {
	cfg := config.RateLimitConfig{Enabled: true, RPS: rps, Burst: burst, TrustProxy: trustProxy}
	return NewRateLimiter(cfg, time.Minute, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestRateLimiter_Middleware(t *testing.T) {
	// given
	rl := newTestRateLimiter(0.5, 2, false)
	f := newFixture(t, rl.Middleware)
	first := f.client(t)
	second := f.client(t)
	require.Equal(t, http.StatusOK, first.do(http.MethodGet, "/api/v1/cart", "").Code)

	// when
	codes := []int{
		first.do(http.MethodGet, "/api/v1/cart", "").Code,
		first.do(http.MethodGet, "/api/v1/cart", "").Code,
	}
	limited := first.do(http.MethodGet, "/api/v1/cart", "")

	// then
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "2", limited.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, second.do(http.MethodGet, "/api/v1/cart", "").Code)
	assert.Equal(t, 2, rl.Len(), "one address bucket and one session bucket")
	assert.Equal(t, http.StatusOK, first.do(http.MethodGet, "/healthz", "").Code)
}

func TestRateLimiter_RequestsWithoutSession(t *testing.T) {
	send := func(f *fixture, path, remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("catalog reads are limited per address and create no sessions", func(t *testing.T) {
		// given
		rl := newTestRateLimiter(0.5, 1, false)
		f := newFixture(t, rl.Middleware)

		// when
		var codes []int
		for range 10 {
			codes = append(codes, send(f, "/api/v1/products", "192.0.2.1:1234"))
		}

		// then
		assert.Equal(t, http.StatusOK, codes[0])
		for _, code := range codes[1:] {
			assert.Equal(t, http.StatusTooManyRequests, code)
		}
		assert.Equal(t, 1, rl.Len())
		assert.Zero(t, f.sessions.Len())
		assert.Equal(t, http.StatusOK, send(f, "/api/v1/products", "198.51.100.7:4321"), "other addresses keep their budget")
	})

	t.Run("rejected requests do not allocate sessions", func(t *testing.T) {
		// given
		rl := newTestRateLimiter(0.5, 2, false)
		f := newFixture(t, rl.Middleware)

		// when
		var codes []int
		for range 5 {
			codes = append(codes, send(f, "/api/v1/cart", "192.0.2.1:1234"))
		}

		// then
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
		assert.Equal(t, 2, f.sessions.Len())
	})

	t.Run("forwarded address is used behind a trusted proxy", func(t *testing.T) {
		// given
		rl := newTestRateLimiter(0.5, 1, true)
		f := newFixture(t, rl.Middleware)
		forwarded := func(addr string) int {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			req.RemoteAddr = "10.0.0.1:80"
			req.Header.Set("X-Forwarded-For", addr)
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)
			return rec.Code
		}

		// when
		codes := []int{forwarded("203.0.113.5"), forwarded("203.0.113.5"), forwarded("203.0.113.6")}

		// then
		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
	})
}

func TestRateLimiter_Cleanup(t *testing.T) {
	// given
	now := time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC)
	rl := newTestRateLimiter(1, 1, false)
	rl.now = func() time.Time { return now }
	rl.get("a")
	now = now.Add(30 * time.Second)
	rl.get("b")

	// when
	now = now.Add(45 * time.Second)
	rl.cleanup()

	// then
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1}, time.Minute, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, rl.Run(ctx, time.Millisecond))
}
