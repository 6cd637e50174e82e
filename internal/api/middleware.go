package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
)

// traceRequests opens one span per request on the globally registered
// tracer provider. Without a configured provider this is a no-op.
func traceRequests(next http.Handler) http.Handler {
	tracer := otel.Tracer("internal/api")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerAuth rejects requests whose Authorization header does not carry
// the configured token. An empty configured token disables auth, which
// is only sensible behind a trusted gateway.
func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			got, found := strings.CutPrefix(header, "Bearer ")
			if !found || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
