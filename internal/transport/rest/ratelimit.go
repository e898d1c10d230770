package rest

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

type sessionLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a token bucket per session. Requests that do not carry a valid
// session are limited per client address, so dropping the cookie does not reset the budget.
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	idle       time.Duration
	trustProxy bool
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	limiters map[string]*sessionLimiter
}

// NewRateLimiter creates a limiter allowing cfg.RPS requests per second with bursts of
// cfg.Burst. Buckets unused for longer than idle are dropped by Run.
func NewRateLimiter(cfg config.RateLimitConfig, idle time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limit:      rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		idle:       idle,
		trustProxy: cfg.TrustProxy,
		logger:     logger.With("component", "ratelimit"),
		now:        time.Now,
		limiters:   make(map[string]*sessionLimiter),
	}
}

// Middleware must run after ResolveSession and before SessionMiddleware. With
// trustProxy the client address is taken from X-Real-IP / X-Forwarded-For.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.get(rl.key(r)).Allow() {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "path", r.URL.Path)
			retryAfter := max(int(math.Ceil(1/float64(rl.limit))), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			web.RespondError(w, rl.logger, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
	if rl.trustProxy {
		return middleware.RealIP(h)
	}
	return h
}

func (rl *RateLimiter) key(r *http.Request) string {
	if s := SessionFrom(r.Context()); s != nil {
		return "session:" + s.ID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	sl, ok := rl.limiters[key]
	if !ok {
		sl = &sessionLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = sl
	}
	sl.lastAccess = rl.now()
	return sl.limiter
}

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, sl := range rl.limiters {
		if now.Sub(sl.lastAccess) > rl.idle {
			delete(rl.limiters, key)
		}
	}
}

// Run drops idle buckets every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rl.cleanup()
		}
	}
}
