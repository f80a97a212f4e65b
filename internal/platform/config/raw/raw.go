// Package raw reads environment variables during bootstrap. It must stay
// free of logger imports so the logger can configure itself from it.
package raw

import (
	"os"
	"strings"
)

// Conf is a prefixed view over the environment, e.g. "API_" or "RATELIMIT_".
type Conf struct{ prefix string }

// New returns the unprefixed root view.
func New() Conf { return Conf{} }

// Prefix narrows the view. Prefixes compose, so Prefix("API_").Prefix("LOG_")
// reads API_LOG_* variables.
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// Get returns the trimmed value, or def when unset or blank.
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.key(key))); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true, and yes in any case. Anything else set is false.
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(c.key(key))))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetInt parses a non-negative decimal. Signs, spaces inside the number, and
// any other stray character fall back to def.
func (c Conf) GetInt(key string, def int) int {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	n := 0
	for _, ch := range []byte(s) {
		if ch < '0' || ch > '9' {
			return def
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
