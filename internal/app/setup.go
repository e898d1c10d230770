// Package app wires the storefront components into HTTP and gRPC servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/checkout"
	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/contact"
	"github.com/abgdnv/storefront/internal/identity"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/internal/session"
	"github.com/abgdnv/storefront/internal/transport/rest"
	"github.com/abgdnv/storefront/pkg/auth"
	pkgconfig "github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/messaging"
	natspkg "github.com/abgdnv/storefront/pkg/nats"
	"github.com/abgdnv/storefront/pkg/resilience"
	"github.com/abgdnv/storefront/pkg/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const serviceName = "storefront"

type Dependencies struct {
	Catalog     catalog.Store
	Orders      order.Store
	Messages    contact.Store
	Sessions    *session.Registry
	Tokens      *auth.TokenManager
	RateLimiter *rest.RateLimiter
	Metrics     *prometheus.Registry
	Session     pkgconfig.SessionConfig
	Logger      *slog.Logger
}

// SetupDependencies builds the in-memory stores seeded with the demo catalog and accounts.
// RateLimiter is nil when rate limiting is disabled.
func SetupDependencies(cfg *config.Config, publisher messaging.Publisher, metrics *prometheus.Registry, logger *slog.Logger) (*Dependencies, error) {
	directory, err := identity.NewDirectory(bcrypt.DefaultCost, identity.DemoAccounts()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build credential directory: %w", err)
	}
	tokens, err := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	products := catalog.NewInMemoryStore(catalog.SeedCategories(), catalog.SeedProducts())
	orders := order.NewInMemoryStore()
	sessions := session.NewRegistry(session.Deps{
		Catalog:       products,
		Authenticator: directory,
		Placer:        checkout.NewPlacer(orders, publisher, logger),
	}, cfg.Session.TTL, logger)

	deps := &Dependencies{
		Catalog:  products,
		Orders:   orders,
		Messages: contact.NewInMemoryStore(),
		Sessions: sessions,
		Tokens:   tokens,
		Metrics:  metrics,
		Session:  cfg.Session,
		Logger:   logger,
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = rest.NewRateLimiter(cfg.RateLimit, cfg.Session.TTL, logger)
	}
	return deps, nil
}

// NewMetricsRegistry returns a registry with the Go runtime and process collectors.
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// SetupHttpHandler builds the instrumented router serving the storefront API and /metrics.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)

	h := rest.NewHandler(rest.Deps{
		Catalog:  deps.Catalog,
		Orders:   deps.Orders,
		Messages: deps.Messages,
		Sessions: deps.Sessions,
		Tokens:   deps.Tokens,
		Session:  deps.Session,
	}, deps.Logger)

	var mw []func(http.Handler) http.Handler
	if deps.RateLimiter != nil {
		mw = append(mw, deps.RateLimiter.Middleware)
	}
	h.RegisterRoutes(mux, mw...)

	if deps.Metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
	return otelhttp.NewHandler(mux, serviceName)
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}

// SetupGrpcServer creates the gRPC server exposing the standard health service.
func SetupGrpcServer(deps *Dependencies, cfg *config.Config) (*grpc.Server, *health.Server) {
	hs, registerHealth := server.HealthRegistration()
	return server.NewGRPCServer(deps.Logger, cfg.GrpcServer.ReflectionEnabled, registerHealth), hs
}

// Broker is the NATS side of the process. Publisher is a no-op when NATS is disabled.
type Broker struct {
	Publisher messaging.Publisher
	JetStream jetstream.JetStream
	conn      *nats.Conn
}

// SetupBroker connects to NATS, makes sure the orders stream exists and guards the
// publisher with a circuit breaker.
func SetupBroker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Broker, error) {
	if !cfg.Nats.Enabled {
		logger.Info("NATS is disabled, order events are not published")
		return &Broker{Publisher: messaging.NoopPublisher{}}, nil
	}
	nc, err := natspkg.NewClient(cfg.Nats, logger)
	if err != nil {
		return nil, err
	}
	js, err := natspkg.NewJetStreamContext(nc)
	if err != nil {
		return nil, err
	}
	streamCtx, cancel := context.WithTimeout(ctx, cfg.Nats.Timeout)
	defer cancel()
	if _, err := natspkg.EnsureStream(streamCtx, js, messaging.OrdersStream, cfg.Nats.DuplicateWindow, messaging.OrdersPlacedSubject); err != nil {
		nc.Close()
		return nil, err
	}

	breaker := resilience.NewCircuitBreaker[struct{}]("nats-publisher", cfg.Resilience.CircuitBreaker, logger)
	return &Broker{
		Publisher: resilience.NewBreakerPublisher(natspkg.NewNatsPublisher(js), breaker),
		JetStream: js,
		conn:      nc,
	}, nil
}

// Close drains the NATS connection, if any.
func (b *Broker) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Drain()
}
