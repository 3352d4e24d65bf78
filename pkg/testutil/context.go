package testutil

import (
	"net/http"

	"dataforall/pkg/requestcontext"
)

// WithViewer adds a session viewer to the request context.
// This simulates what the session middleware does for a logged-in browser.
func WithViewer(req *http.Request, email string) *http.Request {
	ctx := requestcontext.WithViewer(req.Context(), requestcontext.Viewer{LoggedIn: true, Email: email})
	return req.WithContext(ctx)
}

// WithVisitor adds a visitor key to the request context.
func WithVisitor(req *http.Request, visitorID string) *http.Request {
	return req.WithContext(requestcontext.WithVisitorID(req.Context(), visitorID))
}

// WithCookies attaches cookies to the request.
func WithCookies(req *http.Request, cookies ...*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}
