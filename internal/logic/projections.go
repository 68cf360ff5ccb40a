package logic

import (
	"context"
	"fmt"

	"github.com/swishlytics/swish-api/internal/models"
)

type projectionService struct {
	pg     PgPool
	season string
}

// NewProjectionService reads projections for one season, or all stored
// projections when season is empty.
func NewProjectionService(pg PgPool, season string) ProjectionService {
	return &projectionService{pg: pg, season: season}
}

func (s *projectionService) GetProjections(ctx context.Context) ([]models.PlayerSeasonRecord, error) {
	query, args, err := BuildSeasonStatsQuery(SeasonStatsQuery{Source: SourceProjections, Season: s.season})
	if err != nil {
		return nil, err
	}

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projections: %w", err)
	}
	records, err := collectSeasonRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read projections: %w", err)
	}
	return records, nil
}
