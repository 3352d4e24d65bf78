// Package session keeps the portal's login flag and visitor identity in
// cookies. There is no account store: any non-empty email and password sign
// the browser in.
package session

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"dataforall/internal/platform/metrics"
	"dataforall/pkg/requestcontext"
)

// ErrMissingCredentials is returned by Login when email or password is blank.
var ErrMissingCredentials = errors.New("missing email or password")

// MissingCredentialsMessage is the login form error shown to the citizen.
const MissingCredentialsMessage = "Ingresa tu correo y contraseña."

const visitorMaxAge = 365 * 24 * time.Hour

// Config controls cookie lifetime and flags.
type Config struct {
	TTL    time.Duration
	Secure bool
}

// Manager issues and reads session cookies.
type Manager struct {
	tokens  *TokenService
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewManager(tokens *TokenService, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Manager{tokens: tokens, cfg: cfg, logger: logger, metrics: m}
}

// Login marks the browser as signed in. Credentials are only checked for
// presence.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return ErrMissingCredentials
	}

	token, err := m.tokens.Issue(email, m.cfg.TTL)
	if err != nil {
		return err
	}

	writeCookie(w, CookieLoggedIn, "1", m.cfg.TTL, m.cfg.Secure)
	writeCookie(w, CookieUserEmail, email, m.cfg.TTL, m.cfg.Secure)
	writeCookie(w, CookieAuthToken, token, m.cfg.TTL, m.cfg.Secure)

	if m.metrics != nil {
		m.metrics.Logins.Inc()
	}
	m.logger.InfoContext(r.Context(), "login flag set",
		"request_id", requestcontext.RequestID(r.Context()),
		"visitor_id", requestcontext.VisitorID(r.Context()),
	)
	return nil
}

// Logout expires every session cookie. The visitor cookie survives so the
// recent folios stay with the browser.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range logoutCookies {
		clearCookie(w, name, m.cfg.Secure)
	}
	if m.metrics != nil {
		m.metrics.Logouts.Inc()
	}
	m.logger.InfoContext(r.Context(), "logged out",
		"request_id", requestcontext.RequestID(r.Context()),
	)
}

// Resolve reads the viewer from the request cookies. The flag or the mere
// presence of an auth token counts as logged in; the email comes from a valid
// token first and the cached email cookie second.
func (m *Manager) Resolve(r *http.Request) requestcontext.Viewer {
	var v requestcontext.Viewer

	flag, _ := readCookie(r, CookieLoggedIn)
	token, hasToken := readCookie(r, CookieAuthToken)
	v.LoggedIn = flag == "1" || hasToken

	if hasToken {
		if claims, err := m.tokens.Validate(token); err == nil {
			v.Email = claims.Email
		} else {
			m.logger.DebugContext(r.Context(), "ignoring auth token", "error", err)
		}
	}
	if v.Email == "" && v.LoggedIn {
		v.Email, _ = readCookie(r, CookieUserEmail)
	}
	return v
}

// Middleware injects the viewer and the visitor ID into the request context,
// issuing a visitor cookie on the first visit.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitor, ok := readCookie(r, CookieVisitor)
		if !ok || uuid.Validate(visitor) != nil {
			visitor = uuid.NewString()
			writeCookie(w, CookieVisitor, visitor, visitorMaxAge, m.cfg.Secure)
		}

		ctx := requestcontext.WithVisitorID(r.Context(), visitor)
		ctx = requestcontext.WithViewer(ctx, m.Resolve(r.WithContext(ctx)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
