package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"heritage-map/utils/errors"
)

// RecoveryMiddleware turns panics into a 500 JSON response
func RecoveryMiddleware(logger arbor.ILogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("error", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered")
					WriteError(w, logger, errors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError writes err as a {"error": message, "code": code} JSON response
func WriteError(w http.ResponseWriter, logger arbor.ILogger, err error) {
	apiErr := errors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", errors.ErrInternal.Status)
	// Log server errors
	if apiErr.Status >= 500 && logger != nil {
		logger.Error().
			Str("code", apiErr.Code).
			Str("details", apiErr.Details).
			Msg(apiErr.Message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
