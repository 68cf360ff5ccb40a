package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/swishlytics/swish-api/internal/models"
)

type gameLogService struct {
	ch driver.Conn
}

func NewGameLogService(ch driver.Conn) GameLogService {
	return &gameLogService{ch: ch}
}

// GetGameLogs returns a player's games, most recent first.
func (s *gameLogService) GetGameLogs(ctx context.Context, playerID, season string, limit int) ([]models.GameLog, error) {
	query := `
		SELECT
			player_id, season, game_date, opponent, win_loss, minutes_played,
			points, rebounds, assists, steals, blocks, turnovers,
			field_goals_made, field_goal_attempts,
			three_pointers_made, three_point_attempts,
			free_throws_made, free_throw_attempts,
			plus_minus
		FROM swish.game_logs FINAL
		WHERE player_id = ?`
	args := []interface{}{playerID}

	if season != "" {
		query += " AND season = ?"
		args = append(args, season)
	}
	query += " ORDER BY game_date DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	defer rows.Close()

	logs := []models.GameLog{}
	for rows.Next() {
		var gl models.GameLog
		if err := rows.Scan(
			&gl.PlayerID, &gl.Season, &gl.GameDate, &gl.Opponent, &gl.WinLoss, &gl.MinutesPlayed,
			&gl.Points, &gl.Rebounds, &gl.Assists, &gl.Steals, &gl.Blocks, &gl.Turnovers,
			&gl.FieldGoalsMade, &gl.FieldGoalAttempts,
			&gl.ThreePointersMade, &gl.ThreePointAttempts,
			&gl.FreeThrowsMade, &gl.FreeThrowAttempts,
			&gl.PlusMinus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game log: %w", err)
		}
		logs = append(logs, gl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game logs: %w", err)
	}
	return logs, nil
}
