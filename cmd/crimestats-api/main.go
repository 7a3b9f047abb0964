// @title         Crimestats API
// @version       0.1.0
// @description   Filtered crime report queries for the dashboard

package main

import (
	"context"
	"os/signal"
	"syscall"

	"crimestats/internal/core/version"
	"crimestats/internal/modkit/repokit"
	"crimestats/internal/platform/config"
	"crimestats/internal/platform/logger"
	phttp "crimestats/internal/platform/net/http"
	"crimestats/internal/platform/store"

	"crimestats/internal/services/api"
	reportsmod "crimestats/internal/services/api/reports/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env first so LOG_* and friends apply to the logger
	loaded, dotErr := config.LoadDotenv()
	logger.Init(logger.FromEnv())
	l := logger.Named("main")
	if dotErr != nil {
		l.Warn().Err(dotErr).Msg("dotenv load failed")
	}
	if len(loaded) > 0 {
		l.Info().Strs("files", loaded).Msg("dotenv loaded")
	}

	root := config.New()
	coreCfg := root.Prefix("CORE_")                // CORE_API_PORT and CORE_API_*
	pgCfg := root.Prefix("SERVICE_PGSQL_")         // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")    // chCfg lives under SERVICE_CLICKHOUSE_*
	backend := reportsmod.FromConfig(root).Backend // pg or ch

	// the active executor is required, the other one is optional
	pgURL, chURL := pgCfg.MayString("DBURL", ""), chCfg.MayString("DBURL", "")
	if backend == reportsmod.BackendPG {
		pgURL = pgCfg.MustString("DBURL")
	} else {
		chURL = chCfg.MustString("DBURL")
	}

	st, err := store.Open(ctx,
		store.Config{
			AppName: version.ServiceName,
			PG: store.PGConfig{
				Enabled:        pgURL != "",
				URL:            pgURL,
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", true),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 6),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
				Tag:     version.Info().Version,
			},
		},
		store.WithLogger(*logger.Named("store")),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(coreCfg)
	api.Mount(srv.Router(), api.FromConfig(root, st))

	l.Info().Str("backend", backend).Str("version", version.Info().Version).Msg("crimestats api starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
