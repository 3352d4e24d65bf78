package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"dataforall/internal/api/mocks"
	"dataforall/internal/denuncias"
	"dataforall/internal/tracking"
	"dataforall/pkg/platform/httputil"
	tu "dataforall/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Tracker,DatasetSource

// Justification for unit tests: status and envelope mapping happens here and
// is not visible through the page handlers.
type APIHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	tracker *mocks.MockTracker
	source  *mocks.MockDatasetSource
	router  chi.Router
}

func TestAPIHandlerSuite(t *testing.T) {
	suite.Run(t, new(APIHandlerSuite))
}

func (s *APIHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tracker = mocks.NewMockTracker(s.ctrl)
	s.source = mocks.NewMockDatasetSource(s.ctrl)
	s.router = chi.NewRouter()
	New(s.tracker, s.source, nil).Register(s.router)
}

func (s *APIHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// =============================================================================
// GET /api/denuncias
// =============================================================================

func (s *APIHandlerSuite) TestDatasetServed() {
	ds, err := denuncias.LoadEmbedded()
	s.Require().NoError(err)
	s.source.EXPECT().Fetch(gomock.Any()).Return(ds, nil)

	rr := tu.DoRequest(s.router, tu.NewRequest(s.T(), http.MethodGet, "/api/denuncias"))

	tu.AssertStatus(s.T(), rr, http.StatusOK)
	got := tu.UnmarshalResponse[denuncias.Dataset](s.T(), rr)
	s.Equal(denuncias.SourceMock, got.Source)
	s.Len(got.Base, len(ds.Base))
	s.Equal("no-store", rr.Header().Get("Cache-Control"))
}

func (s *APIHandlerSuite) TestDatasetWithoutMarkerIsLabelledMock() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(&denuncias.Dataset{}, nil)

	rr := tu.DoRequest(s.router, tu.NewRequest(s.T(), http.MethodGet, "/api/denuncias"))

	got := tu.UnmarshalResponse[denuncias.Dataset](s.T(), rr)
	s.Equal(denuncias.SourceMock, got.Source)
}

func (s *APIHandlerSuite) TestDatasetUpstreamFailure() {
	s.source.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("connection refused"))

	rr := tu.DoRequest(s.router, tu.NewRequest(s.T(), http.MethodGet, "/api/denuncias"))

	tu.AssertStatus(s.T(), rr, http.StatusBadGateway)
	got := tu.UnmarshalResponse[httputil.ErrorResponse](s.T(), rr)
	s.Equal("upstream_error", got.Error)
	s.Equal(tracking.ErrUpstream.Message, got.Message)
}

// =============================================================================
// GET /api/tracking/{folio}
// =============================================================================

func (s *APIHandlerSuite) TestTrackFound() {
	s.tracker.EXPECT().Search(gomock.Any(), "10002").Return(&tracking.Result{
		Source:   denuncias.SourceAPI,
		Petition: &tracking.Petition{Folio: 10002, Timeline: []tracking.TimelineEvent{{Title: "Denuncia registrada"}}},
	}, nil)

	rr := tu.DoRequest(s.router, tu.NewRequest(s.T(), http.MethodGet, "/api/tracking/10002"))

	tu.AssertStatus(s.T(), rr, http.StatusOK)
	got := tu.UnmarshalResponse[TrackingResponse](s.T(), rr)
	s.Equal(denuncias.SourceAPI, got.Source)
	s.Require().NotNil(got.Petition)
	s.Equal(int64(10002), got.Petition.Folio)
	s.Len(got.Petition.Timeline, 1)
}

func (s *APIHandlerSuite) TestTrackErrors() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not numeric", tracking.ErrFolioNotNumeric, http.StatusBadRequest},
		{"not found", tracking.ErrFolioNotFound, http.StatusNotFound},
		{"upstream", tracking.ErrUpstream, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.tracker.EXPECT().Search(gomock.Any(), "abc").Return(nil, tc.err)

			rr := tu.DoRequest(s.router, tu.NewRequest(s.T(), http.MethodGet, "/api/tracking/abc"))

			tu.AssertStatus(s.T(), rr, tc.status)
			got := tu.UnmarshalResponse[httputil.ErrorResponse](s.T(), rr)
			s.Equal(tracking.ErrorCode(tc.err), got.Error)
			s.Equal(tracking.MessageFor(tc.err), got.Message)
		})
	}
}
