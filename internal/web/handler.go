// Package web serves the portal pages.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"dataforall/internal/platform/metrics"
	"dataforall/internal/recent"
	"dataforall/internal/session"
	"dataforall/internal/tracking"
	"dataforall/internal/web/templates"
	"dataforall/pkg/requestcontext"
)

const loginFailedMessage = "Ocurrió un error al iniciar sesión. Intenta de nuevo."

// Tracker runs folio searches.
type Tracker interface {
	Search(ctx context.Context, rawFolio string) (*tracking.Result, error)
}

// Sessions sets and clears the login cookies.
type Sessions interface {
	Login(w http.ResponseWriter, r *http.Request, email, password string) error
	Logout(w http.ResponseWriter, r *http.Request)
}

// RecentLister lists the visitor's recent folios for the panel.
type RecentLister interface {
	List(ctx context.Context, visitorID string) ([]int64, error)
}

// Handler serves the HTML pages.
type Handler struct {
	tracker  Tracker
	sessions Sessions
	recent   RecentLister
	views    *templates.Renderer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates the page handler.
func New(tracker Tracker, sessions Sessions, recent RecentLister, views *templates.Renderer, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		tracker:  tracker,
		sessions: sessions,
		recent:   recent,
		views:    views,
		logger:   logger,
		metrics:  m,
	}
}

// Register wires the page routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleHome)
	r.Get("/denuncias", h.handleTracking)
	r.Post("/denuncias", h.handleTracking)
	r.Get("/login", h.handleLoginForm)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/admin", h.handleAdmin)

	for path, title := range placeholderPages {
		r.Get(path, h.placeholder(title))
	}
	r.NotFound(h.handleNotFound)
}

var placeholderPages = map[string]string{
	"/orientador":     "page.orientador.title",
	"/guia":           "page.guide.title",
	"/datos-abiertos": "page.open_data.title",
	"/programas":      "page.programs.title",
	"/signup":         "page.signup.title",
}

func chrome(r *http.Request, titleKey string) templates.Chrome {
	return templates.Chrome{
		TitleKey: titleKey,
		Path:     r.URL.Path,
		Viewer:   requestcontext.ViewerFrom(r.Context()),
	}
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	view, status := h.search(r, "/")
	h.render(w, r, status, h.views.Home(templates.HomeView{
		Chrome:   chrome(r, "site.title"),
		Tracking: view,
		Steps:    templates.GuideSteps,
		ScrollPx: templates.CarouselScrollPx,
	}))
}

func (h *Handler) handleTracking(w http.ResponseWriter, r *http.Request) {
	view, status := h.search(r, "/denuncias")
	h.render(w, r, status, h.views.Tracking(templates.TrackingPageView{
		Chrome:   chrome(r, "tracking.title"),
		Tracking: view,
	}))
}

// search runs a lookup when the request carries a folio. A GET without the
// parameter only shows the empty form.
func (h *Handler) search(r *http.Request, action string) (templates.TrackingView, int) {
	view := templates.TrackingView{Action: action}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			view.Error = tracking.ErrFolioNotNumeric.Message
			return view, http.StatusBadRequest
		}
	}
	if r.Method == http.MethodGet && !r.URL.Query().Has("folio") {
		return view, http.StatusOK
	}

	view.Folio = strings.TrimSpace(r.FormValue("folio"))
	res, err := h.tracker.Search(r.Context(), view.Folio)
	if err != nil {
		view.Error = tracking.MessageFor(err)
		return view, tracking.HTTPStatus(err)
	}
	view.Source = res.Source
	view.Petition = res.Petition
	return view, http.StatusOK
}

func (h *Handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.views.Login(templates.LoginView{Chrome: chrome(r, "login.title")}))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	email := strings.TrimSpace(r.PostFormValue("email"))

	if err := h.sessions.Login(w, r, email, r.PostFormValue("password")); err != nil {
		msg := session.MissingCredentialsMessage
		status := http.StatusBadRequest
		if !errors.Is(err, session.ErrMissingCredentials) {
			h.logger.ErrorContext(r.Context(), "login failed",
				"request_id", requestcontext.RequestID(r.Context()),
				"error", err,
			)
			msg = loginFailedMessage
			status = http.StatusInternalServerError
		}
		h.render(w, r, status, h.views.Login(templates.LoginView{
			Chrome: chrome(r, "login.title"),
			Email:  email,
			Error:  msg,
		}))
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	viewer := requestcontext.ViewerFrom(r.Context())
	if !viewer.LoggedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var items []templates.RecentFolio
	folios, err := h.recent.List(r.Context(), requestcontext.VisitorID(r.Context()))
	if err != nil {
		// The panel still renders; the list is a convenience.
		h.logger.WarnContext(r.Context(), "failed to list recent folios",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		if h.metrics != nil {
			h.metrics.RecentStoreErrors.Inc()
		}
	}
	for i, f := range folios {
		if i == recent.MaxEntries {
			break
		}
		items = append(items, templates.RecentFolio{Folio: f})
	}

	h.render(w, r, http.StatusOK, h.views.Admin(templates.AdminView{
		Chrome: chrome(r, "admin.title"),
		Email:  viewer.Email,
		Recent: items,
	}))
}

func (h *Handler) placeholder(titleKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, h.views.Placeholder(templates.PlaceholderView{Chrome: chrome(r, titleKey)}))
	}
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, h.views.NotFound(templates.NotFoundView{Chrome: chrome(r, "notfound.title")}))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			"request_id", requestcontext.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
