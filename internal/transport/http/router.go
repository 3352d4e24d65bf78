// Package httptransport assembles the portal router: the shared middleware
// chain, operational endpoints, and the page and API handlers.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"dataforall/internal/platform/metrics"
	"dataforall/internal/platform/middleware"
	"dataforall/pkg/platform/httputil"
	"dataforall/pkg/platform/middleware/metadata"
	"dataforall/pkg/platform/middleware/requesttime"
)

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config carries what the router needs besides the handlers.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	// RateLimit throttles page and API routes per client.
	RateLimit func(http.Handler) http.Handler
	// Session resolves the viewer and visitor for page and API routes.
	Session func(http.Handler) http.Handler
	// Redis is checked by /health when set.
	Redis HealthChecker
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// NewRouter wires all public endpoints behind the middleware chain.
func NewRouter(cfg Config, handlers ...Registrar) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 20 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(cfg.TracerProvider))
	r.Use(metadata.ClientMetadata(cfg.TrustedProxies))
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))

	r.Get("/health", healthHandler(cfg.Redis))
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}
		if cfg.Session != nil {
			r.Use(cfg.Session)
		}
		for _, h := range handlers {
			h.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
}

func healthHandler(redis HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if redis == nil {
			httputil.WriteJSON(w, http.StatusOK, resp)
			return
		}
		if err := redis.Health(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Redis = err.Error()
			httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Redis = "ok"
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
