// Package middleware enforces rate limits on http routes
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	perr "apiwarden/internal/platform/errors"
	phttp "apiwarden/internal/platform/net/http"
	"apiwarden/internal/services/ratelimit/domain"
	"apiwarden/internal/services/ratelimit/service"
)

// Enforce counts every request against the class quota and rejects overflow
// The X-RateLimit headers go out on allowed and denied responses alike
func Enforce(l service.Service, class string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := l.Check(r.Context(), domain.ClientKey(r), class)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				h.Set("Retry-After", strconv.FormatInt(retryAfterSeconds(res.ResetAt), 10))
				phttp.RespondError(w, r, perr.RateLimitedf(
					"rate limit exceeded for %s, try again after %s", class, res.ResetAt.UTC().Format(time.RFC3339)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds rounds up so clients never retry before the reset
// Floor of one second because Retry-After: 0 invites an immediate retry storm
func retryAfterSeconds(resetAt time.Time) int64 {
	secs := int64(math.Ceil(time.Until(resetAt).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
