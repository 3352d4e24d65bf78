// Package tracking implements the folio search: validate the folio, fetch the
// complaint dataset, join the related lists and remember the folio for the
// visitor.
package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"dataforall/internal/denuncias"
	"dataforall/internal/platform/metrics"
	"dataforall/pkg/requestcontext"
)

// DatasetSource yields the complaint dataset.
type DatasetSource interface {
	Fetch(ctx context.Context) (*denuncias.Dataset, error)
}

// RecentStore remembers successfully searched folios per visitor.
type RecentStore interface {
	Add(ctx context.Context, visitorID string, folio int64) error
}

// Result is a successful search.
type Result struct {
	Source   string    `json:"source"`
	Petition *Petition `json:"petition"`
}

// Service runs folio searches.
type Service struct {
	source  DatasetSource
	recent  RecentStore
	loc     *time.Location
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecentStore records successful searches.
func WithRecentStore(store RecentStore) Option {
	return func(s *Service) { s.recent = store }
}

// WithLocation sets the display time zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the request time for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

var tracer = otel.Tracer("dataforall/internal/tracking")

// New builds a Service. The dataset source is required.
func New(source DatasetSource, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, errors.New("dataset source is required")
	}
	s := &Service{
		source: source,
		loc:    time.UTC,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search looks up rawFolio. Every failure is a *Error whose Message is safe to
// show to the citizen.
func (s *Service) Search(ctx context.Context, rawFolio string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "tracking.search")
	defer span.End()

	folio, err := ParseFolio(rawFolio)
	if err != nil {
		s.observe(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("tracking.folio", folio))

	ds, err := s.source.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dataset fetch failed")
		s.logger.ErrorContext(ctx, "failed to fetch denuncias dataset",
			"request_id", requestcontext.RequestID(ctx),
			"folio", folio,
			"error", err,
		)
		err = wrap(ErrUpstream, err)
		s.observe(ctx, err)
		return nil, err
	}

	petition, err := BuildPetition(ds, folio, s.clock(ctx), s.loc)
	if err != nil {
		s.observe(ctx, err)
		return nil, err
	}

	s.remember(ctx, folio)
	s.observe(ctx, nil)

	return &Result{
		Source:   denuncias.NormalizeSource(ds.Source, denuncias.SourceMock),
		Petition: petition,
	}, nil
}

// clock is the request time stamped by the requesttime middleware.
func (s *Service) clock(ctx context.Context) time.Time {
	if s.now != nil {
		return s.now()
	}
	return requestcontext.Now(ctx)
}

// remember never fails the search.
func (s *Service) remember(ctx context.Context, folio int64) {
	if s.recent == nil {
		return
	}
	visitor := requestcontext.VisitorID(ctx)
	if visitor == "" {
		return
	}
	if err := s.recent.Add(ctx, visitor, folio); err != nil {
		if s.metrics != nil {
			s.metrics.RecentStoreErrors.Inc()
		}
		s.logger.WarnContext(ctx, "failed to remember searched folio",
			"request_id", requestcontext.RequestID(ctx),
			"folio", folio,
			"error", err,
		)
	}
}

func (s *Service) observe(ctx context.Context, err error) {
	outcome := metrics.OutcomeFound
	switch {
	case err == nil:
	case errors.Is(err, ErrFolioNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, ErrEmptyFolio), errors.Is(err, ErrFolioNotNumeric):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeUpstreamErr
	}
	s.metrics.ObserveSearch(outcome)
	if err != nil && outcome != metrics.OutcomeUpstreamErr {
		s.logger.DebugContext(ctx, "folio search rejected",
			"request_id", requestcontext.RequestID(ctx),
			"outcome", outcome,
		)
	}
}
