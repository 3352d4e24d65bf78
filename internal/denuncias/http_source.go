package denuncias

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"dataforall/internal/platform/metrics"
	"dataforall/pkg/platform/sentinel"
	"dataforall/pkg/requestcontext"
)

const (
	defaultMaxBodyBytes = 32 << 20
	tracerName          = "dataforall/internal/denuncias"
)

// HTTPSource fetches the dataset from an upstream REST endpoint on every call.
type HTTPSource struct {
	url      string
	client   *http.Client
	limiter  *rate.Limiter
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	maxBytes int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client (tests point it at httptest servers).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRateLimit paces outbound calls to perSecond with the given burst.
// A non-positive rate disables pacing.
func WithRateLimit(perSecond float64, burst int) HTTPOption {
	return func(s *HTTPSource) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithMetrics records fetch outcome and latency.
func WithMetrics(m *metrics.Metrics) HTTPOption {
	return func(s *HTTPSource) { s.metrics = m }
}

// WithLogger sets the logger used for upstream diagnostics.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracerProvider traces fetches with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) HTTPOption {
	return func(s *HTTPSource) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithMaxBodyBytes caps how much of the upstream body is read.
func WithMaxBodyBytes(n int64) HTTPOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// NewHTTPSource builds a source for url with a per-call timeout.
func NewHTTPSource(url string, timeout time.Duration, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
		maxBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Fetch performs one GET. Transport failures and non-2xx answers wrap
// sentinel.ErrUnavailable; undecodable bodies wrap sentinel.ErrBadData.
func (s *HTTPSource) Fetch(ctx context.Context) (ds *Dataset, err error) {
	ctx, span := s.tracer.Start(ctx, "denuncias.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", s.url)),
	)
	start := time.Now()
	defer func() {
		s.metrics.ObserveFetch(SourceAPI, err == nil, time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for upstream slot: %w", sentinel.ErrUnavailable, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if rid := requestcontext.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		s.logger.WarnContext(ctx, "denuncias upstream returned non-OK status",
			"request_id", requestcontext.RequestID(ctx),
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("%w: upstream status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}

	var out Dataset
	if err := json.NewDecoder(io.LimitReader(resp.Body, s.maxBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode denuncias: %w", sentinel.ErrBadData, err)
	}
	out.Source = NormalizeSource(out.Source, SourceAPI)
	span.SetAttributes(attribute.Int("denuncias.base_records", len(out.Base)))
	return &out, nil
}
