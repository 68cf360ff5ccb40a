// Command server runs the Swish stats API.
//
// @title Swish Stats API
// @version 1.0
// @description Season rankings, player history, game logs and projections for fantasy basketball.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/swishlytics/swish-api/docs"
	"github.com/swishlytics/swish-api/internal/config"
	"github.com/swishlytics/swish-api/internal/handlers"
	"github.com/swishlytics/swish-api/internal/logic"
	"github.com/swishlytics/swish-api/internal/ranking"
	"github.com/swishlytics/swish-api/internal/ratelimit"
)

func main() {
	envPath := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	if envPath != "" {
		sugar.Infow("Loaded environment file", "path", envPath)
	}

	ctx := context.Background()

	// PostgreSQL
	pgPool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create postgres pool", "error", err)
	}
	defer pgPool.Close()
	if err := pingWithTimeout(ctx, pgPool.Ping); err != nil {
		sugar.Fatalw("Failed to connect to postgres", "error", err)
	}
	sugar.Info("Connected to PostgreSQL")

	// ClickHouse
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to parse clickhouse url", "error", err)
	}
	chConn, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to open clickhouse", "error", err)
	}
	defer chConn.Close()
	if err := pingWithTimeout(ctx, chConn.Ping); err != nil {
		// Game logs degrade; rankings still work
		sugar.Warnw("ClickHouse unreachable at startup", "error", err)
	} else {
		sugar.Info("Connected to ClickHouse")
	}

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Failed to parse redis url", "error", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := pingWithTimeout(ctx, func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }); err != nil {
		// The limiter fails open without Redis
		sugar.Warnw("Redis unreachable at startup", "error", err)
	} else {
		sugar.Info("Connected to Redis")
	}

	h := handlers.New(handlers.Config{
		Postgres:   pgPool,
		ClickHouse: chConn,
		Redis:      redisClient,
		Logger:     logger,
		Limiter:    ratelimit.NewFixedWindow(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow),
		Palette: ranking.Palette{
			ScoreCap:  cfg.ColorScoreCap,
			ZScoreCap: cfg.ColorZScoreCap,
			MaxAlpha:  cfg.ColorMaxAlpha,
		},
		ProjectionSeason: cfg.ProjectionSeason,
		SeasonStats:      logic.NewSeasonStatsService(pgPool),
		Players:          logic.NewPlayerService(pgPool),
		Projections:      logic.NewProjectionService(pgPool, cfg.ProjectionSeason),
		GameLogs:         logic.NewGameLogService(chConn),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins, cfg.RequestTimeout),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		sugar.Infow("API listening", "addr", srv.Addr, "env", cfg.Env)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server error", "error", err)
			os.Exit(1)
		}

	case sig := <-shutdown:
		sugar.Infow("Shutting down", "signal", sig.String())

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			sugar.Warnw("Graceful shutdown failed", "error", err)
			if err := srv.Close(); err != nil {
				sugar.Errorw("Could not stop server", "error", err)
			}
		}
	}

	sugar.Info("Shutdown complete")
}

func pingWithTimeout(ctx context.Context, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return ping(ctx)
}
