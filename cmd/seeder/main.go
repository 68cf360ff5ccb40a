// Command seeder loads season CSV exports into PostgreSQL and game log CSVs
// into ClickHouse. It is run offline, before or alongside the API server.
//
//	seeder -install
//	seeder -seasons ./data/seasons -projections ./data/projections_2025-26.csv
//	seeder -gamelogs ./data/gamelogs
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/swishlytics/swish-api/internal/config"
)

var (
	install     = flag.Bool("install", false, "Apply the PostgreSQL and ClickHouse schemas before loading")
	seasonsDir  = flag.String("seasons", "", "Directory of season CSVs named <season>.csv (e.g. 2024-25.csv)")
	projections = flag.String("projections", "", "Projections CSV, stored under PROJECTION_SEASON")
	gameLogsDir = flag.String("gamelogs", "", "Directory of game log CSVs named <nba_player_id>_<season>.csv")
	dryRun      = flag.Bool("dry-run", false, "Parse and score files without writing anything")
)

func main() {
	flag.Parse()

	if path := config.LoadDotEnv(); path != "" {
		fmt.Printf("Loaded environment from %s\n", path)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	defer logger.Sync()
	sugar := logger.Sugar()

	if !*install && *seasonsDir == "" && *projections == "" && *gameLogsDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		sugar.Errorw("Seeding failed", "error", explain(err))
		os.Exit(1)
	}
	sugar.Info("Seeding complete")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()

	var db *sql.DB
	if !*dryRun {
		var err error
		if db, err = connectPostgres(ctx, cfg.PostgresURL); err != nil {
			return err
		}
		defer db.Close()
		sugar.Info("Connected to PostgreSQL")
	}

	var ch driver.Conn
	if !*dryRun && (*install || *gameLogsDir != "") {
		var err error
		if ch, err = connectClickHouse(ctx, cfg.ClickHouseURL); err != nil {
			return err
		}
		defer ch.Close()
		sugar.Info("Connected to ClickHouse")
	}

	if *install && !*dryRun {
		if err := installSchemas(ctx, db, ch, sugar); err != nil {
			return err
		}
	}

	loader := &seasonLoader{db: db, logger: sugar, dryRun: *dryRun}
	if *seasonsDir != "" {
		if err := loader.loadSeasonDir(ctx, *seasonsDir, seasonOptions(cfg)); err != nil {
			return err
		}
	}
	if *projections != "" {
		if err := loader.loadProjections(ctx, *projections, cfg.ProjectionSeason); err != nil {
			return err
		}
	}

	if *gameLogsDir != "" {
		gl := &gameLogLoader{db: db, ch: ch, cfg: cfg, logger: logger, dryRun: *dryRun}
		if err := gl.loadDir(ctx, *gameLogsDir); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// connectPostgres opens a database/sql pool over lib/pq and checks it.
func connectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

func connectClickHouse(ctx context.Context, dsn string) (driver.Conn, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clickhouse url: %w", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}
	return conn, nil
}
