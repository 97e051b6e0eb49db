package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"restaurant_refresh/internal/adapters/dashboard"
	"restaurant_refresh/internal/adapters/jsonfile"
	"restaurant_refresh/internal/adapters/linkcheck"
	"restaurant_refresh/internal/adapters/observability"
	"restaurant_refresh/internal/adapters/places"
	redisad "restaurant_refresh/internal/adapters/redis"
	"restaurant_refresh/internal/adapters/sheet"
	"restaurant_refresh/internal/app"
	"restaurant_refresh/internal/domain"
	"restaurant_refresh/internal/shared"
	mysqlrepo "restaurant_refresh/internal/storage/mysql"
)

func main() {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.RegisterDefault()
	observability.Serve(cfg.MetricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("input", cfg.InputPath).
		Str("output", cfg.OutputPath).
		Bool("places", cfg.HasCredential()).
		Int("link_workers", cfg.LinkWorkers).
		Msg("refresh starting")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	var client domain.PlacesClient
	if cfg.HasCredential() {
		var opts []places.Option
		if cache != nil {
			opts = append(opts, places.WithCache(cache, int(cfg.CacheTTL.Seconds())))
		}
		pc, err := places.New(cfg.PlacesBase, cfg.Credential, cfg.PlacesRPS, cfg.RequestTimeout, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize places client")
		}
		client = pc
	}

	var store domain.SnapshotStore
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Msg("db.Ping failed, snapshot history disabled")
		} else {
			store = mysqlrepo.New(db)
		}
	}

	svc := app.NewRefreshService(
		app.RefreshConfig{InputPath: cfg.InputPath, OutputPath: cfg.OutputPath, LinkWorkers: cfg.LinkWorkers},
		sheet.Load,
		jsonfile.Write,
		app.NewEnricher(client, cfg.HasCredential()),
		linkcheck.New(cfg.LinkTimeout),
		dashboard.Renderer{Path: cfg.DashboardPath, DataPath: cfg.OutputPath},
		store,
	)

	rep, err := svc.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("refresh failed")
	}

	log.Info().
		Int("loaded", rep.Loaded).
		Int("enriched", rep.Enriched).
		Int("not_found", rep.NotFound).
		Int("skipped", rep.Skipped).
		Int("failed", rep.Failed).
		Int("menus_valid", rep.LinksValid).
		Int("menus_invalid", rep.LinksInvalid).
		Str("finished", rep.FinishedAt.Format(time.RFC3339)).
		Msg("refresh completed")
}
