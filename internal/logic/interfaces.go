package logic

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/swishlytics/swish-api/internal/models"
)

// ErrPlayerNotFound is returned when a player id has no row in players.
var ErrPlayerNotFound = errors.New("player not found")

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SeasonStatsService reads season aggregates.
type SeasonStatsService interface {
	ListSeasons(ctx context.Context) ([]string, error)
	GetSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error)
}

// PlayerService reads a single player's history.
type PlayerService interface {
	GetPlayerDetails(ctx context.Context, playerID string) (*models.PlayerDetails, error)
}

// ProjectionService reads next-season projections.
type ProjectionService interface {
	GetProjections(ctx context.Context) ([]models.PlayerSeasonRecord, error)
}

// GameLogService reads per-game box scores. An empty season means every
// season; limit <= 0 means no limit.
type GameLogService interface {
	GetGameLogs(ctx context.Context, playerID, season string, limit int) ([]models.GameLog, error)
}
