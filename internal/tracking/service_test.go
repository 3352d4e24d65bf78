package tracking

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"dataforall/internal/denuncias"
	"dataforall/internal/platform/metrics"
	"dataforall/internal/tracking/mocks"
	"dataforall/pkg/platform/sentinel"
	"dataforall/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks DatasetSource,RecentStore

// =============================================================================
// Search Service Test Suite
// =============================================================================
// Justification for unit tests: the search flow maps every failure onto a
// citizen-facing message and must keep searching when the recent store fails.
// Those branches are hard to force through the rendered pages.

type SearchServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	source  *mocks.MockDatasetSource
	recent  *mocks.MockRecentStore
	metrics *metrics.Metrics
	logs    *bytes.Buffer
	service *Service
	ctx     context.Context
}

func TestSearchServiceSuite(t *testing.T) {
	suite.Run(t, new(SearchServiceSuite))
}

func (s *SearchServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.source = mocks.NewMockDatasetSource(s.ctrl)
	s.recent = mocks.NewMockRecentStore(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.logs = &bytes.Buffer{}

	loc, err := time.LoadLocation("America/Mexico_City")
	s.Require().NoError(err)

	s.service, err = New(s.source,
		WithRecentStore(s.recent),
		WithLocation(loc),
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC) }),
	)
	s.Require().NoError(err)

	s.ctx = requestcontext.WithVisitorID(context.Background(), "visitor-1")
}

func (s *SearchServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SearchServiceSuite) dataset(source string) *denuncias.Dataset {
	ds, err := denuncias.LoadEmbedded()
	s.Require().NoError(err)
	return ds.WithSource(source)
}

func (s *SearchServiceSuite) searches(outcome string) float64 {
	return testutil.ToFloat64(s.metrics.Searches.WithLabelValues(outcome))
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *SearchServiceSuite) TestNew() {
	s.Run("nil source returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "dataset source is required")
	})
}

// =============================================================================
// Search Tests
// =============================================================================

func (s *SearchServiceSuite) TestSearchFound() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(denuncias.SourceAPI), nil)
	s.recent.EXPECT().Add(gomock.Any(), "visitor-1", int64(10001)).Return(nil)

	res, err := s.service.Search(s.ctx, " 10001 ")
	s.Require().NoError(err)
	s.Equal(denuncias.SourceAPI, res.Source)
	s.Equal(int64(10001), res.Petition.Folio)
	s.Equal("1/6/2025, 12:00:00", res.Petition.Timeline[len(res.Petition.Timeline)-1].Date)
	s.Equal(1.0, s.searches(metrics.OutcomeFound))
}

func (s *SearchServiceSuite) TestSearchAcceptsHexFolio() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(denuncias.SourceAPI), nil)
	s.recent.EXPECT().Add(gomock.Any(), "visitor-1", int64(10001)).Return(nil)

	res, err := s.service.Search(s.ctx, "0x2711")
	s.Require().NoError(err)
	s.Equal(int64(10001), res.Petition.Folio)
}

func (s *SearchServiceSuite) TestSearchReportsMockSource() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(""), nil)
	s.recent.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.service.Search(s.ctx, "10002")
	s.Require().NoError(err)
	s.Equal(denuncias.SourceMock, res.Source)
}

func (s *SearchServiceSuite) TestSearchInvalidInputSkipsFetch() {
	s.Run("empty folio", func() {
		_, err := s.service.Search(s.ctx, "   ")
		s.ErrorIs(err, ErrEmptyFolio)
		s.Equal("Ingresa un folio para poder buscar tu denuncia.", MessageFor(err))
	})

	s.Run("non numeric folio", func() {
		_, err := s.service.Search(s.ctx, "ABC-10001")
		s.ErrorIs(err, ErrFolioNotNumeric)
		s.Equal("El folio debe ser numérico, por ejemplo: 10001.", MessageFor(err))
	})

	s.Run("go numeric literal is not a folio", func() {
		_, err := s.service.Search(s.ctx, "10_001")
		s.ErrorIs(err, ErrFolioNotNumeric)
	})

	s.Equal(3.0, s.searches(metrics.OutcomeInvalid))
}

func (s *SearchServiceSuite) TestSearchNotFoundIsNotRemembered() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(denuncias.SourceAPI), nil)

	_, err := s.service.Search(s.ctx, "424242")
	s.ErrorIs(err, ErrFolioNotFound)
	s.Equal(
		"No se encontró ninguna denuncia con ese folio. Verifica que esté bien escrito o que corresponda al sistema.",
		MessageFor(err),
	)
	s.Equal(1.0, s.searches(metrics.OutcomeNotFound))
}

func (s *SearchServiceSuite) TestSearchUpstreamFailure() {
	cause := errors.Join(sentinel.ErrUnavailable, errors.New("status 503"))
	s.source.EXPECT().Fetch(gomock.Any()).Return(nil, cause)

	_, err := s.service.Search(s.ctx, "10001")
	s.Require().Error(err)
	s.ErrorIs(err, ErrUpstream)
	s.ErrorIs(err, sentinel.ErrUnavailable, "cause is kept for logging")
	s.Equal("Ocurrió un problema al consultar la API de denuncias. Intenta de nuevo más tarde.", MessageFor(err))
	s.Equal(1.0, s.searches(metrics.OutcomeUpstreamErr))
	s.Contains(s.logs.String(), "failed to fetch denuncias dataset")
}

func (s *SearchServiceSuite) TestRecentStoreFailureDoesNotFailSearch() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(denuncias.SourceAPI), nil)
	s.recent.EXPECT().Add(gomock.Any(), "visitor-1", int64(10003)).Return(errors.New("redis down"))

	res, err := s.service.Search(s.ctx, "10003")
	s.Require().NoError(err)
	s.NotNil(res.Petition)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RecentStoreErrors))
	s.Contains(s.logs.String(), "failed to remember searched folio")
}

func (s *SearchServiceSuite) TestSearchWithoutVisitorSkipsRecentStore() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(denuncias.SourceAPI), nil)

	_, err := s.service.Search(context.Background(), "10001")
	s.NoError(err)
}

func (s *SearchServiceSuite) TestSearchStampsRequestTime() {
	svc, err := New(s.source, WithLocation(time.UTC))
	s.Require().NoError(err)
	s.source.EXPECT().Fetch(gomock.Any()).Return(s.dataset(denuncias.SourceAPI), nil)

	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC))
	res, err := svc.Search(ctx, "10006")
	s.Require().NoError(err)
	s.Equal("3/2/2025, 04:05:06", res.Petition.Timeline[len(res.Petition.Timeline)-1].Date)
}
