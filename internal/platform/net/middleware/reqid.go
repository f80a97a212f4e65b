package middleware

import (
	"net/http"

	"apiwarden/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogContext copies the correlation id set by RequestID into the
// logger context, so logger.C children carry request_id
// Mount after RequestID
func RequestLogContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := chimw.GetReqID(r.Context()); id != "" {
				r = r.WithContext(logger.WithRequest(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
