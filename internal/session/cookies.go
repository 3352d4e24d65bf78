package session

import (
	"net/http"
	"strings"
	"time"
)

// Cookie names. The first two mirror the browser storage keys of the login
// flag and cached email; the auth/user ones are cleared on logout.
const (
	CookieLoggedIn  = "dfa_logged_in"
	CookieUserEmail = "dfa_user_email"
	CookieAuthToken = "auth-token"
	CookieEmail     = "user-email"
	CookieName      = "user-name"
	CookieRole      = "user-role"
	CookieVisitor   = "dfa_visitor"
)

// logoutCookies are expired by Logout.
var logoutCookies = []string{
	CookieLoggedIn,
	CookieUserEmail,
	CookieAuthToken,
	CookieEmail,
	CookieName,
	CookieRole,
}

// readCookie returns the trimmed cookie value when present.
func readCookie(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	c, err := r.Cookie(name)
	if err != nil || c == nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	return v, true
}

func writeCookie(w http.ResponseWriter, name, value string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
