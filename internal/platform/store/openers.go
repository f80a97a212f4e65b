package store

import (
	"context"
	"fmt"
	"time"

	chx "apiwarden/internal/platform/store/ch"
	"apiwarden/internal/platform/store/pg"
	"apiwarden/internal/platform/store/rds"
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// Ping through the raw pool so boot retries never show up as SQL
	// trace lines. The adapter is published only once the pool answers.
	const maxAttempts = 20

	var lastErr error
	backoff := 150 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		toCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			a := newPGAdapter(p)
			s.PG = a
			return a, nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff = backoff * 2; backoff > 2*time.Second {
			backoff = 2 * time.Second
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:  cfg.CH.URL,
		Role: cfg.CH.ClientName,
		Tag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

// openRDS opens redis and publishes it on the store when healthy
func openRDS(ctx context.Context, cfg Config, _ *Store) (Redis, error) {
	return rds.Open(ctx, rds.Config{
		Addr:         cfg.RDS.Addr,
		DB:           cfg.RDS.DB,
		Password:     cfg.RDS.Password,
		DialTimeout:  cfg.RDS.DialTimeout,
		ReadTimeout:  cfg.RDS.ReadTimeout,
		WriteTimeout: cfg.RDS.WriteTimeout,
	})
}
