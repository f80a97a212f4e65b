package store

import (
	"context"
	"errors"
	"time"

	"apiwarden/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter narrows pg.PG to the RowQuerier and TxRunner seams repos
// consume, emitting a trace event per statement when a tracer is set
type pgAdapter struct {
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{p: p} }

// queryTrace forwards statement timing to a tracer, flagging slow ones
type queryTrace struct {
	tracer pg.QueryTracer
	slowUS int64
}

func (qt queryTrace) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if qt.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	qt.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      qt.slowUS >= 0 && elapsedUS >= qt.slowUS,
	})
}

func (a *pgAdapter) trace() queryTrace {
	if a == nil || a.p == nil {
		return queryTrace{}
	}
	return queryTrace{tracer: a.p.Tracer, slowUS: int64(a.p.SlowMs) * 1000}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	a.trace().emit(ctx, sql, args, start, err)
	return cmdTag{ct}, err
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	// timing covers statement open, not the scan loop
	a.trace().emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rowSet{r: rs}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	// pgx defers row errors to Scan, so the event is emitted there
	tr := a.trace()
	return scanRow{
		r: r,
		after: func(scanErr error) {
			tr.emit(ctx, sql, args, start, scanErr)
		},
	}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	q := txQuerier{tx: tx, qt: a.trace()}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// pgx results narrowed to the store interfaces

type scanRow struct {
	r     pgx.Row
	after func(error)
}

func (x scanRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rowSet struct{ r pgx.Rows }

func (x rowSet) Next() bool            { return x.r.Next() }
func (x rowSet) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rowSet) Err() error            { return x.r.Err() }
func (x rowSet) Close()                { x.r.Close() }
func (x rowSet) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = string(f[i].Name)
	}
	return out
}

type cmdTag struct{ t pgconn.CommandTag }

func (t cmdTag) String() string      { return t.t.String() }
func (t cmdTag) RowsAffected() int64 { return t.t.RowsAffected() }

// txQuerier satisfies RowQuerier inside a transaction with the same
// tracing as the pool-level adapter
type txQuerier struct {
	tx pgx.Tx
	qt queryTrace
}

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.tx.Exec(ctx, sql, args...)
	t.qt.emit(ctx, sql, args, start, err)
	return cmdTag{ct}, err
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.Query(ctx, sql, args...)
	t.qt.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rowSet{r: rs}, nil
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRow(ctx, sql, args...)
	return scanRow{
		r: r,
		after: func(scanErr error) {
			t.qt.emit(ctx, sql, args, start, scanErr)
		},
	}
}
