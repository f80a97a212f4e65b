// @title         APIWarden API
// @version       0.1.0
// @description   Rate limiting, contract validation, and compliance monitoring

package main

import (
	"context"

	"apiwarden/internal/platform/config"
	"apiwarden/internal/platform/logger"
	phttp "apiwarden/internal/platform/net/http"
	"apiwarden/internal/platform/store"

	"apiwarden/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	rdsCfg := root.Prefix("SERVICE_REDIS_")     // rdsCfg lives under SERVICE_REDIS_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + CH adapter + redis counters)
	// each backend can be switched off; the services degrade in place
	cfg := store.Config{}
	if pgCfg.MayBool("ENABLED", true) {
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		}
	}
	if chCfg.MayBool("ENABLED", true) {
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "apiwarden",
			ClientTag:  "api",
		}
	}
	if rdsCfg.MayBool("ENABLED", true) {
		cfg.RDS = store.RedisConfig{
			Enabled:  true,
			Addr:     rdsCfg.MayString("ADDR", "127.0.0.1:6379"),
			DB:       rdsCfg.MayInt("DB", 0),
			Password: rdsCfg.MayString("PASSWORD", ""),
		}
	}

	st, err := store.Open(context.Background(), cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	if err := st.Guard(context.Background()); err != nil {
		l.Panic().Err(err).Msg("store guard failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
