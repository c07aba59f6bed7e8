package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/heilocal/feedmap/internal/catalog"
	"github.com/heilocal/feedmap/internal/config"
	"github.com/heilocal/feedmap/internal/database"
	"github.com/heilocal/feedmap/internal/gesture"
	"github.com/heilocal/feedmap/internal/handler/health"
	"github.com/heilocal/feedmap/internal/migrations"
	"github.com/heilocal/feedmap/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating db dir: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	items := catalog.NewStore(db)
	if cfg.SeedDemo {
		seeded, err := items.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		if seeded {
			logger.Info("demo catalog seeded")
		}
	}

	checks := map[string]health.Checker{
		"sqlite": dbChecker{db},
	}
	broker := server.NewBroker()

	// --- Redis (optional) ---
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		checks["redis"] = redisChecker{rdb}
		broker.WithMirror(server.NewRedisMirror(rdb))
	}

	// --- Sessions ---
	policy := gesture.DefaultPolicy()
	policy.WheelIdle = cfg.WheelIdle
	policy.WheelCooldown = cfg.WheelCooldown

	metrics := server.NewMetrics()
	sessions := server.NewSessions(logger, broker, metrics, server.SessionConfig{
		SnapDuration: cfg.SnapDuration,
		Policy:       policy,
		CenterOffset: cfg.CenterLngOffset,
	})
	defer sessions.Close()

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Catalog:  items,
		Sessions: sessions,
		Broker:   broker,
		Metrics:  metrics,
		SPADir:   cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return sessions.RunJanitor(gctx, time.Minute, cfg.SessionIdleTimeout)
	})

	g.Go(func() error {
		return broker.RunMirror(gctx, logger)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// redisChecker adapts *redis.Client to health.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
