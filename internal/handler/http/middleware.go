package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/rosewoodpk/storefront/pkg/httputil"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// profileIDKey is the context key for the browser profile ID.
const profileIDKey contextKey = "profile_id"

// ProfileIDFromHeader is middleware that reads the X-Profile-ID header (the
// storefront client generates one per browser profile and sends it on every
// cart and wishlist call) and stores it in the request context. There is no
// authentication behind it; the profile ID only scopes which persisted
// snapshot a request operates on. Requests without the header are rejected
// with 400.
func ProfileIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pid := r.Header.Get("X-Profile-ID")
		if pid == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID header is required"},
			})
			return
		}
		ctx := context.WithValue(r.Context(), profileIDKey, pid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileIDFromContext extracts the profile ID from the request context.
// Returns the profile ID and true if present, or empty string and false otherwise.
func profileIDFromContext(ctx context.Context) (string, bool) {
	pid, ok := ctx.Value(profileIDKey).(string)
	return pid, ok && pid != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
