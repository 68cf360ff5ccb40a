package logic

import (
	"context"
	"fmt"

	"github.com/swishlytics/swish-api/internal/models"
)

type seasonStatsService struct {
	pg PgPool
}

func NewSeasonStatsService(pg PgPool) SeasonStatsService {
	return &seasonStatsService{pg: pg}
}

// ListSeasons returns every season with stored stats, newest first.
func (s *seasonStatsService) ListSeasons(ctx context.Context) ([]string, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT DISTINCT season
		FROM player_stats_by_season
		ORDER BY season DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	seasons := []string{}
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seasons: %w", err)
	}
	return seasons, nil
}

// GetSeasonStats returns every player row for a season. An unknown season
// yields an empty slice, not an error.
func (s *seasonStatsService) GetSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
	query, args, err := BuildSeasonStatsQuery(SeasonStatsQuery{Source: SourceSeasonStats, Season: season})
	if err != nil {
		return nil, err
	}

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query season %s: %w", season, err)
	}
	records, err := collectSeasonRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read season %s: %w", season, err)
	}
	return records, nil
}
