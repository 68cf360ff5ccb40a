package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/swishlytics/swish-api/internal/models"
)

type playerService struct {
	pg PgPool
}

func NewPlayerService(pg PgPool) PlayerService {
	return &playerService{pg: pg}
}

// GetPlayerDetails returns a player's name and every stored season, newest
// season first.
func (s *playerService) GetPlayerDetails(ctx context.Context, playerID string) (*models.PlayerDetails, error) {
	details := &models.PlayerDetails{PlayerID: playerID}

	err := s.pg.QueryRow(ctx, `
		SELECT full_name FROM players WHERE player_id = $1
	`, playerID).Scan(&details.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player %s: %w", playerID, err)
	}

	query, args, err := BuildSeasonStatsQuery(SeasonStatsQuery{Source: SourceSeasonStats, PlayerID: playerID})
	if err != nil {
		return nil, err
	}
	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons for %s: %w", playerID, err)
	}
	if details.Seasons, err = collectSeasonRecords(rows); err != nil {
		return nil, fmt.Errorf("failed to read seasons for %s: %w", playerID, err)
	}

	return details, nil
}
