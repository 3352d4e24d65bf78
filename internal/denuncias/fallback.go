package denuncias

import (
	"context"
	"errors"
	"log/slog"

	"dataforall/internal/platform/metrics"
	"dataforall/pkg/platform/circuit"
	"dataforall/pkg/requestcontext"
)

// FallbackSource serves a secondary dataset when the primary fails. The
// fallback result is always marked SourceMock.
type FallbackSource struct {
	primary  Source
	fallback Source
	logger   *slog.Logger
	breaker  *circuit.Breaker
	metrics  *metrics.Metrics
}

// FallbackOption configures a FallbackSource.
type FallbackOption func(*FallbackSource)

// WithBreaker skips the primary while b is open, so a dead upstream does not
// cost every search a timeout.
func WithBreaker(b *circuit.Breaker) FallbackOption {
	return func(s *FallbackSource) { s.breaker = b }
}

// WithFallbackMetrics exports the breaker state.
func WithFallbackMetrics(m *metrics.Metrics) FallbackOption {
	return func(s *FallbackSource) { s.metrics = m }
}

// NewFallbackSource builds a FallbackSource. A nil logger discards output.
func NewFallbackSource(primary, fallback Source, logger *slog.Logger, opts ...FallbackOption) *FallbackSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &FallbackSource{primary: primary, fallback: fallback, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FallbackSource) Fetch(ctx context.Context) (*Dataset, error) {
	if s.breaker != nil && !s.breaker.Allow() {
		return s.serveFallback(ctx, nil)
	}

	ds, err := s.primary.Fetch(ctx)
	if err == nil {
		if s.breaker == nil {
			return ds, nil
		}
		usePrimary, change := s.breaker.RecordSuccess()
		if change.Closed {
			s.metrics.SetCircuitOpen(false)
			s.logger.InfoContext(ctx, "denuncias upstream recovered",
				"request_id", requestcontext.RequestID(ctx),
				"breaker", s.breaker.Name(),
			)
		}
		if usePrimary {
			return ds, nil
		}
		return s.serveFallback(ctx, nil)
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if s.breaker != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.metrics.SetCircuitOpen(true)
			s.logger.WarnContext(ctx, "denuncias upstream circuit opened",
				"request_id", requestcontext.RequestID(ctx),
				"breaker", s.breaker.Name(),
			)
		}
	}
	s.logger.WarnContext(ctx, "denuncias upstream failed, serving fallback dataset",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return s.serveFallback(ctx, err)
}

func (s *FallbackSource) serveFallback(ctx context.Context, primaryErr error) (*Dataset, error) {
	fb, err := s.fallback.Fetch(ctx)
	if err != nil {
		return nil, errors.Join(primaryErr, err)
	}
	return fb.WithSource(SourceMock), nil
}
