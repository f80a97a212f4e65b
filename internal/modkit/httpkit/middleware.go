package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"apiwarden/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with rate limit enforcement per module as needed
// corsOrigins empty falls back to the cors package default of any origin
func CommonStack(corsOrigins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RequestLogContext(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,
		middleware.ThrottleBacklog(512, 128, 5*time.Second),
		middleware.AllowContentType("application/json"),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: corsOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
