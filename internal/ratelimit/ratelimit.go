// Package ratelimit throttles page and API requests per client IP.
package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"dataforall/internal/platform/metrics"
	"dataforall/pkg/platform/httputil"
	"dataforall/pkg/requestcontext"
)

// ExceededMessage is shown when a client is throttled.
const ExceededMessage = "Demasiadas solicitudes. Intenta de nuevo en unos momentos."

// idleTTL drops limiters of clients that stopped sending requests.
const idleTTL = 10 * time.Minute

// Middleware holds one token bucket per client IP.
type Middleware struct {
	limit    rate.Limit
	burst    int
	buckets  *cache.Cache
	mu       sync.Mutex
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) { m.disabled = disabled }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) { m.metrics = mt }
}

// New allows perSecond sustained requests with bursts of burst per client.
// A non-positive perSecond disables limiting.
func New(perSecond float64, burst int, opts ...Option) *Middleware {
	if burst <= 0 {
		burst = 1
	}
	m := &Middleware{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		buckets: cache.New(idleTTL, 2*idleTTL),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if perSecond <= 0 {
		m.disabled = true
	}
	return m
}

func (m *Middleware) bucket(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.buckets.Get(ip); ok {
		m.buckets.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(m.limit, m.burst)
	m.buckets.SetDefault(ip, l)
	return l
}

// Handler rejects requests over the client's budget with 429.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		l := m.bucket(ip)

		res := l.Reserve()
		delay := res.Delay()
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.burst))
		if delay > 0 {
			res.Cancel()
			if m.metrics != nil {
				m.metrics.RateLimited.Inc()
			}
			m.logger.WarnContext(ctx, "client rate limited",
				"request_id", requestcontext.RequestID(ctx),
				"path", r.URL.Path,
			)
			writeExceeded(w, r, delay)
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, int(l.Tokens()))))
		next.ServeHTTP(w, r)
	})
}

func writeExceeded(w http.ResponseWriter, r *http.Request, delay time.Duration) {
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
	if strings.HasPrefix(r.URL.Path, "/api/") {
		httputil.WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", ExceededMessage)
		return
	}
	http.Error(w, ExceededMessage, http.StatusTooManyRequests)
}
