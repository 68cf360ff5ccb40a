package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/swishlytics/swish-api/migrations"
)

// undefinedTable is the PostgreSQL SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// explain adds a hint to errors caused by a missing schema.
func explain(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return fmt.Errorf("%w (schema not installed, run the seeder with -install first)", err)
	}
	return err
}

func installSchemas(ctx context.Context, db *sql.DB, ch driver.Conn, logger *zap.SugaredLogger) error {
	pgFiles, err := migrations.Postgres()
	if err != nil {
		return fmt.Errorf("failed to read postgres schema: %w", err)
	}
	for _, f := range pgFiles {
		// lib/pq runs multi-statement text in one simple query
		if _, err := db.ExecContext(ctx, f.SQL); err != nil {
			return fmt.Errorf("failed to apply %s: %w", f.Name, err)
		}
		logger.Infow("Applied schema", "file", f.Name)
	}

	chFiles, err := migrations.ClickHouse()
	if err != nil {
		return fmt.Errorf("failed to read clickhouse schema: %w", err)
	}
	for _, f := range chFiles {
		for _, stmt := range f.Statements() {
			if err := ch.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply %s: %w", f.Name, err)
			}
		}
		logger.Infow("Applied schema", "file", f.Name)
	}
	return nil
}
