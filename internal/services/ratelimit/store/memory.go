// Package store provides counter store implementations for rate limiting
package store

import (
	"context"
	"sync"
	"time"

	"apiwarden/internal/services/ratelimit/domain"
)

// DefaultSweepInterval bounds how long an abandoned window can outlive its reset
const DefaultSweepInterval = 5 * time.Minute

// Memory is the in-process counter store
// It is the fallback when redis is unreachable and the only store in
// single-node deployments; windows die with the process
type Memory struct {
	mu      sync.Mutex
	windows map[string]domain.Window

	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemory constructs a memory store and starts its janitor
// sweep <= 0 disables the janitor; expiry still happens lazily on access
func NewMemory(sweep time.Duration) *Memory {
	m := &Memory{
		windows: make(map[string]domain.Window),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweep > 0 {
		go m.janitor(sweep)
	}
	return m
}

// Increment implements domain.CounterStore
func (m *Memory) Increment(_ context.Context, key string, window time.Duration) (domain.Window, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || w.Expired(now) {
		w = domain.Window{Count: 1, ResetAt: now.Add(window)}
	} else {
		w.Count++
	}
	m.windows[key] = w
	return w, nil
}

// Get implements domain.CounterStore
// Expired entries are dropped on sight rather than waiting for the janitor
func (m *Memory) Get(_ context.Context, key string) (domain.Window, bool, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok {
		return domain.Window{}, false, nil
	}
	if w.Expired(now) {
		delete(m.windows, key)
		return domain.Window{}, false, nil
	}
	return w, true, nil
}

// Ping implements domain.CounterStore
func (m *Memory) Ping(context.Context) error { return nil }

// Close stops the janitor; the store stays usable afterwards
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// Len reports the number of live windows, expired entries included
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func (m *Memory) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, w := range m.windows {
		if w.Expired(now) {
			delete(m.windows, k)
		}
	}
}
