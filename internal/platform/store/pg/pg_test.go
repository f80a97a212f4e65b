package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"apiwarden/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_RejectsUnparsableURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatal("Open accepted an unparsable URL")
	}
}

func TestOpen_SurfacesDialErrors(t *testing.T) {
	// swaps the package-level newPool seam, so no t.Parallel
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("dial refused")
	})

	dsn := "postgres://warden:secret@db:5432/warden?sslmode=disable"
	if _, err := Open(context.Background(), Config{URL: dsn}, nil, nil); err == nil {
		t.Fatal("Open swallowed the pool constructor error")
	}
}

func TestOpen_AppliesConfigAndMutator(t *testing.T) {
	testkit.Serial(t)

	// zero-value pool stands in for a real one; it must never be Closed
	fake := &pgxpool.Pool{}
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return fake, nil
	})

	cfg := Config{
		URL:      "postgres://warden:secret@db:5432/warden?sslmode=disable",
		MaxConns: 7,
		SlowMs:   250,
	}
	mutated := false
	p, err := Open(context.Background(), cfg, nil, func(pc *pgxpool.Config) {
		mutated = true
		if pc.MaxConns != cfg.MaxConns {
			t.Fatalf("MaxConns = %d before mutator, want %d", pc.MaxConns, cfg.MaxConns)
		}
		pc.MaxConnIdleTime = 42 * time.Second
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !mutated {
		t.Fatal("pool config mutator never ran")
	}
	if p.Pool != fake {
		t.Fatal("Open did not keep the pool the constructor returned")
	}
	if p.SlowMs != cfg.SlowMs {
		t.Fatalf("SlowMs = %d, want %d", p.SlowMs, cfg.SlowMs)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()

	p = &PG{}
	p.Close()
	p.Close()
}
