package store

import (
	"context"
	"errors"

	"apiwarden/internal/platform/store/ch"
)

// newCHAdapter wraps an opened *ch.CH behind the Clickhouse seam
func newCHAdapter(c *ch.CH) Clickhouse {
	return &chAdapter{inner: c}
}

type chAdapter struct {
	inner *ch.CH
}

var _ Clickhouse = (*chAdapter)(nil)

// Insert expects batched rows; anything else is a programming error at the
// call site rather than something to coerce here
func (a *chAdapter) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return errors.New("store: unsupported CH insert shape (want [][]any)")
	}
	return a.inner.Insert(ctx, table, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRowSet{r: r}, nil
}

func (a *chAdapter) Close() error { return a.inner.Close() }

// Ping runs a trivial SELECT so Guard can verify connectivity
func (a *chAdapter) Ping(ctx context.Context) (err error) {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}

	// CH would type a bare SELECT 1 as UInt8, cast so the scan target is stable
	rows, err := a.inner.Query(ctx, "SELECT toInt32(1)")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if !rows.Next() {
		return errors.New("store: ch ping returned no rows")
	}
	var one int32
	if scanErr := rows.Scan(&one); scanErr != nil {
		return scanErr
	}
	return rows.Err()
}

// chRowSet narrows ch.Rows to the store Rows contract
type chRowSet struct {
	r ch.Rows
}

func (x chRowSet) Next() bool             { return x.r.Next() }
func (x chRowSet) Scan(dest ...any) error { return x.r.Scan(dest...) }
func (x chRowSet) Err() error             { return x.r.Err() }
func (x chRowSet) Close()                 { _ = x.r.Close() }
func (x chRowSet) Columns() []string      { return x.r.Columns() }
