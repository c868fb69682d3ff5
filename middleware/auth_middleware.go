package middleware

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
)

type contextKey string

const callerKey contextKey = "caller"

// Authorizer validates an Authorization header and returns the caller.
type Authorizer interface {
	Authorize(header string) (string, error)
}

// AuthMiddleware rejects requests whose Authorization header is absent or
// fails validation. Preflight requests carry no credentials and are
// answered with 204 without reaching next.
func AuthMiddleware(auth Authorizer, logger arbor.ILogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			caller, err := auth.Authorize(r.Header.Get("Authorization"))
			if err != nil {
				logger.Warn().
					Err(err).
					Str("path", r.URL.Path).
					Str("remote", r.RemoteAddr).
					Msg("Unauthorized request")
				WriteError(w, logger, err)
				return
			}
			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext returns the caller set by AuthMiddleware.
func CallerFromContext(ctx context.Context) string {
	caller, _ := ctx.Value(callerKey).(string)
	return caller
}
