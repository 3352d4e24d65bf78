// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services and views read them without pulling in
// net/http.
//
// Usage in services (read values):
//
//	visitorID := requestcontext.VisitorID(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithViewer(ctx, requestcontext.Viewer{LoggedIn: true})
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	viewerKey      struct{}
	visitorIDKey   struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	browserKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	requestPathKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyViewer      = viewerKey{}
	ContextKeyVisitorID   = visitorIDKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyBrowser     = browserKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyRequestPath = requestPathKey{}
)

// -----------------------------------------------------------------------------
// Session context
// -----------------------------------------------------------------------------

// Viewer is the session state of the browser making the request.
type Viewer struct {
	LoggedIn bool
	Email    string
}

// ViewerFrom retrieves the viewer from the context.
// Returns the zero value (logged out) if not set.
func ViewerFrom(ctx context.Context) Viewer {
	if v, ok := ctx.Value(ContextKeyViewer).(Viewer); ok {
		return v
	}
	return Viewer{}
}

// WithViewer injects the viewer into the context.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, ContextKeyViewer, v)
}

// VisitorID retrieves the browser visitor key from the context.
func VisitorID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyVisitorID).(string); ok {
		return id
	}
	return ""
}

// WithVisitorID injects the browser visitor key into the context.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, ContextKeyVisitorID, visitorID)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the raw User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// Browser retrieves the parsed browser name ("Firefox 128.0") from the context.
func Browser(ctx context.Context) string {
	if b, ok := ctx.Value(ContextKeyBrowser).(string); ok {
		return b
	}
	return ""
}

// WithClientMetadata injects client IP, User-Agent and browser name into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent, browser string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	ctx = context.WithValue(ctx, ContextKeyBrowser, browser)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestPath retrieves the URL path of the page being rendered.
func RequestPath(ctx context.Context) string {
	if p, ok := ctx.Value(ContextKeyRequestPath).(string); ok {
		return p
	}
	return ""
}

// WithRequestPath injects the URL path of the page being rendered.
func WithRequestPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestPath, path)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
