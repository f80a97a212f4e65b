//go:build integration_pg
// +build integration_pg

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"apiwarden/internal/platform/logger"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway Postgres container and returns its DSN.
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		cancel()
		t.Fatalf("start postgres: %v", err)
	}

	cleanup := func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	host, err := c.Host(ctx)
	if err != nil {
		cleanup()
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		cleanup()
		t.Fatalf("mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	return dsn, cleanup
}

func quietLogger() logger.Logger { return zerolog.New(io.Discard) }

func openTestAdapter(t *testing.T, ctx context.Context, dsn string, logSQL bool) *pgAdapter {
	t.Helper()

	s := &Store{Log: quietLogger()}
	cfg := Config{PG: PGConfig{URL: dsn, MaxConns: 2, LogSQL: logSQL}}
	txr, err := openPG(ctx, cfg, s)
	if err != nil {
		t.Fatalf("openPG: %v", err)
	}
	a, ok := txr.(*pgAdapter)
	if !ok {
		t.Fatalf("openPG returned %T, want *pgAdapter", txr)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSQLAdapter_Integration_QuerySurface(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	// LogSQL on so the tracer wiring runs against a real pool
	a := openTestAdapter(t, ctx, dsn, true)

	if _, err := a.Exec(ctx, `
		CREATE TEMP TABLE rate_events_it (
			id    SERIAL PRIMARY KEY,
			class TEXT NOT NULL
		)
	`); err != nil {
		t.Fatalf("create temp table: %v", err)
	}

	if _, err := a.Exec(ctx,
		`INSERT INTO rate_events_it (class) VALUES ($1), ($2)`,
		"mutation", "query",
	); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var class string
	if err := a.QueryRow(ctx, `SELECT class FROM rate_events_it WHERE id=$1`, 1).Scan(&class); err != nil {
		t.Fatalf("queryrow: %v", err)
	}
	if class != "mutation" {
		t.Fatalf("class = %q, want mutation", class)
	}

	rs, err := a.Query(ctx, `SELECT id, class FROM rate_events_it ORDER BY id`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rs.Close()

	if cols := rs.Columns(); len(cols) != 2 || cols[0] != "id" || cols[1] != "class" {
		t.Fatalf("columns = %#v", cols)
	}

	var classes []string
	for rs.Next() {
		var id int
		if err := rs.Scan(&id, &class); err != nil {
			t.Fatalf("scan: %v", err)
		}
		classes = append(classes, class)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("rows err: %v", err)
	}
	if len(classes) != 2 || classes[0] != "mutation" || classes[1] != "query" {
		t.Fatalf("rows = %v", classes)
	}

	// double Close must be safe
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestSQLAdapter_Integration_TxCommitRollback(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	a := openTestAdapter(t, ctx, dsn, false)

	if _, err := a.Exec(ctx, `
		CREATE TEMP TABLE quota_tx_it (
			id  SERIAL PRIMARY KEY,
			max INT NOT NULL
		)
	`); err != nil {
		t.Fatalf("create temp table: %v", err)
	}

	if err := a.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO quota_tx_it (max) VALUES (10)`)
		return err
	}); err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	count := func(val int) int {
		var n int
		if err := a.QueryRow(ctx, `SELECT COUNT(*) FROM quota_tx_it WHERE max=$1`, val).Scan(&n); err != nil {
			t.Fatalf("count %d: %v", val, err)
		}
		return n
	}
	if got := count(10); got != 1 {
		t.Fatalf("committed rows = %d, want 1", got)
	}

	wantErr := errors.New("abort")
	err := a.Tx(ctx, func(q RowQuerier) error {
		if _, e := q.Exec(ctx, `INSERT INTO quota_tx_it (max) VALUES (20)`); e != nil {
			return e
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("tx error = %v, want %v", err, wantErr)
	}
	if got := count(20); got != 0 {
		t.Fatalf("rolled-back rows = %d, want 0", got)
	}
}
