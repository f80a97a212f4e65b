package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// quietTx satisfies TxRunner but deliberately not Pinger.
type quietTx struct{}

func (quietTx) Tx(context.Context, func(q RowQuerier) error) error { return nil }
func (quietTx) Exec(context.Context, string, ...any) (CommandTag, error) {
	return nil, nil
}
func (quietTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (quietTx) QueryRow(context.Context, string, ...any) Row        { return nil }

type pingingTx struct {
	quietTx
	err error
}

func (p *pingingTx) Ping(context.Context) error { return p.err }

type guardRedis struct{ err error }

func (guardRedis) IncrWindow(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, nil
}

func (guardRedis) GetWindow(context.Context, string) (int64, time.Duration, bool, error) {
	return 0, 0, false, nil
}
func (g guardRedis) Ping(context.Context) error { return g.err }
func (guardRedis) Close() error                 { return nil }

func TestGuard_NilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Guard(context.Background()); err == nil {
		t.Fatal("nil store guarded clean")
	}
}

func TestGuard_EmptyStoreIsHealthy(t *testing.T) {
	t.Parallel()

	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("empty store: %v", err)
	}
}

func TestGuard_SkipsBackendsWithoutPing(t *testing.T) {
	t.Parallel()

	s := &Store{PG: quietTx{}}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("non-pinging backend should be skipped, got %v", err)
	}
}

func TestGuard_HealthyPing(t *testing.T) {
	t.Parallel()

	s := &Store{PG: &pingingTx{}, RDS: guardRedis{}}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("healthy pings: %v", err)
	}
}

func TestGuard_NamesFailingBackends(t *testing.T) {
	t.Parallel()

	s := &Store{
		PG:  &pingingTx{err: errors.New("pool exhausted")},
		RDS: guardRedis{err: errors.New("loading dataset")},
	}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatal("guard passed with failing backends")
	}
	msg := err.Error()
	if !strings.Contains(msg, "pg: pool exhausted") {
		t.Fatalf("pg failure not named: %q", msg)
	}
	if !strings.Contains(msg, "redis: loading dataset") {
		t.Fatalf("redis failure not named: %q", msg)
	}
}
