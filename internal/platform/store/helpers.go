package store

import (
	"context"
	"fmt"

	perr "apiwarden/internal/platform/errors"
)

// cursorRow presents the current Rows position through the Row contract,
// so one scan func serves both One and Many.
type cursorRow struct{ rows Rows }

func (c cursorRow) Scan(dest ...any) error { return c.rows.Scan(dest...) }

// One runs sql and maps exactly one row through scan. Zero rows yield
// ErrNotFound; more than one is treated as a broken query.
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}
		return zero, perr.ErrNotFound
	}
	item, err := scan(cursorRow{rows: rows})
	if err != nil {
		return zero, err
	}
	if rows.Next() {
		return zero, fmt.Errorf("expected 1 row, got more")
	}
	return item, rows.Err()
}

// Many runs sql and maps every row through scan.
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(cursorRow{rows: rows})
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
