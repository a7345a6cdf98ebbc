package handler

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds each request's context. Unlike middleware.Timeout it never
// writes to the response, so the envelope produced by the handler once the
// model call is cancelled is the only reply the caller sees.
func Deadline(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
