package store

import (
	"apiwarden/internal/platform/logger"
)

// Option adjusts the Store before backends open.
type Option func(*Store) error

// WithLogger routes backend logs (slow queries, redis degradation) through
// the given logger instead of the default no-op.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
