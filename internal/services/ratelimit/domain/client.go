package domain

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the bucket for requests with no derivable address
// All such requests share one window on purpose
const UnknownClient = "unknown"

// ClientKey derives an opaque client identifier from request metadata
// Precedence: first X-Forwarded-For hop, then X-Real-IP, then the
// RemoteAddr host, then UnknownClient
func ClientKey(r *http.Request) string {
	if r == nil {
		return UnknownClient
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if rip := strings.TrimSpace(r.Header.Get("X-Real-IP")); rip != "" {
		return rip
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			return host
		}
		return r.RemoteAddr
	}
	return UnknownClient
}
