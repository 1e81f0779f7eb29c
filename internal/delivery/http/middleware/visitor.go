package middleware

import (
	"net/http"
	"time"

	"boighor-storefront/internal/visitor"

	"github.com/google/uuid"
)

const visitorCookie = "visitor"

// NewVisitorSession assigns every browser an opaque visitor id cookie and
// attaches that visitor's store set to the request context. The id keys both
// the in-memory store registry and anonymous snapshot persistence.
func NewVisitorSession(reg *visitor.Registry, ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if cookie, err := r.Cookie(visitorCookie); err == nil && cookie.Value != "" {
				visitorID = cookie.Value
			}
			if visitorID == "" {
				visitorID = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     visitorCookie,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			stores := reg.Get(visitorID)
			ctx := visitor.WithContext(r.Context(), stores)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
