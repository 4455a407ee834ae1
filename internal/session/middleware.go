package session

import (
	"context"
	"net/http"
)

type contextKey struct{}

// Middleware resolves the request's session once and stashes it in the
// request context. Requests without a valid session pass through with no
// session attached; handlers decide whether that is an error.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, err := m.Get(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FromContext returns the session attached by Middleware, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(contextKey{}).(*Session)
	return session, ok
}
