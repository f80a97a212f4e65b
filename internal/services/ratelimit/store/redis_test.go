package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSeam scripts the platform redis seam
type fakeSeam struct {
	count     int64
	remaining time.Duration
	ok        bool
	err       error

	lastKey string
	lastTTL time.Duration
}

func (f *fakeSeam) IncrWindow(_ context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	f.lastKey, f.lastTTL = key, ttl
	return f.count, f.remaining, f.err
}

func (f *fakeSeam) GetWindow(_ context.Context, key string) (int64, time.Duration, bool, error) {
	f.lastKey = key
	return f.count, f.remaining, f.ok, f.err
}

func (f *fakeSeam) Ping(context.Context) error { return f.err }
func (f *fakeSeam) Close() error               { return nil }

func newTestRedis(seam *fakeSeam) (*Redis, time.Time) {
	r := NewRedis(seam)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, now
}

func TestRedis_IncrementMapsCountAndDeadline(t *testing.T) {
	seam := &fakeSeam{count: 4, remaining: 42 * time.Second}
	r, now := newTestRedis(seam)

	w, err := r.Increment(context.Background(), "rate_limit:auth:1.2.3.4", 15*time.Minute)
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if w.Count != 4 || !w.ResetAt.Equal(now.Add(42*time.Second)) {
		t.Fatalf("window = %+v", w)
	}
	if seam.lastKey != "rate_limit:auth:1.2.3.4" || seam.lastTTL != 15*time.Minute {
		t.Fatalf("seam saw key=%q ttl=%v", seam.lastKey, seam.lastTTL)
	}
}

func TestRedis_IncrementSurfacesSeamErrors(t *testing.T) {
	seam := &fakeSeam{err: errors.New("redis down")}
	r, _ := newTestRedis(seam)

	if _, err := r.Increment(context.Background(), "k", time.Minute); err == nil {
		t.Fatalf("seam error swallowed")
	}
}

func TestRedis_GetAbsentKey(t *testing.T) {
	seam := &fakeSeam{ok: false}
	r, _ := newTestRedis(seam)

	_, ok, err := r.Get(context.Background(), "k")
	if err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}
}

func TestRedis_GetPresentKey(t *testing.T) {
	seam := &fakeSeam{count: 7, remaining: 10 * time.Second, ok: true}
	r, now := newTestRedis(seam)

	w, ok, err := r.Get(context.Background(), "k")
	if err != nil || !ok {
		t.Fatalf("present key: ok=%v err=%v", ok, err)
	}
	if w.Count != 7 || !w.ResetAt.Equal(now.Add(10*time.Second)) {
		t.Fatalf("window = %+v", w)
	}
}
