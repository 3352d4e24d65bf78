// Package api serves the JSON rendition of the tracking flow.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dataforall/internal/denuncias"
	"dataforall/internal/tracking"
	"dataforall/pkg/platform/httputil"
	"dataforall/pkg/requestcontext"
)

// Tracker defines the search operation the tracking endpoint exposes.
type Tracker interface {
	Search(ctx context.Context, rawFolio string) (*tracking.Result, error)
}

// DatasetSource yields the dataset served on /api/denuncias.
type DatasetSource interface {
	Fetch(ctx context.Context) (*denuncias.Dataset, error)
}

// Handler wires the JSON endpoints.
type Handler struct {
	tracker Tracker
	source  DatasetSource
	logger  *slog.Logger
}

// New constructs the API handler.
func New(tracker Tracker, source DatasetSource, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		tracker: tracker,
		source:  source,
		logger:  logger,
	}
}

// Register mounts the API endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/denuncias", h.HandleDataset)
	r.Get("/api/tracking/{folio}", h.HandleTrack)
}

// HandleDataset handles GET /api/denuncias.
func (h *Handler) HandleDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ds, err := h.source.Fetch(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch denuncias dataset",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, http.StatusBadGateway, string(tracking.CodeUpstream), tracking.ErrUpstream.Message)
		return
	}
	if ds == nil {
		ds = &denuncias.Dataset{}
	}
	httputil.WriteJSON(w, http.StatusOK, ds.WithSource(denuncias.NormalizeSource(ds.Source, denuncias.SourceMock)))
}

// HandleTrack handles GET /api/tracking/{folio}.
func (h *Handler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	folio := chi.URLParam(r, "folio")

	res, err := h.tracker.Search(ctx, folio)
	if err != nil {
		status := tracking.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "tracking search failed",
				"request_id", requestID,
				"folio", folio,
				"error", err,
			)
		}
		httputil.WriteError(w, status, tracking.ErrorCode(err), tracking.MessageFor(err))
		return
	}

	h.logger.InfoContext(ctx, "tracking search served",
		"request_id", requestID,
		"folio", res.Petition.Folio,
		"source", res.Source,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}
