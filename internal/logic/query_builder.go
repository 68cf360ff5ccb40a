package logic

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/swishlytics/swish-api/internal/models"
)

// StatSource is a table holding per-season player rows.
type StatSource string

const (
	SourceSeasonStats StatSource = "player_stats_by_season"
	SourceProjections StatSource = "player_projections"
)

var allowedSources = map[StatSource]bool{
	SourceSeasonStats: true,
	SourceProjections: true,
}

// UnknownPlayerName fills in rows whose player has no players entry.
const UnknownPlayerName = "Unknown Player"

// SeasonStatsQuery holds parameters for selecting season rows
type SeasonStatsQuery struct {
	Source   StatSource
	Season   string // WHERE s.season = ?
	PlayerID string // WHERE s.player_id = ?
}

// column pairs a SELECT expression with the record field it scans into.
type column struct {
	name string
	expr string
	dest func(r *models.PlayerSeasonRecord) any
}

func counting(name string, dest func(r *models.PlayerSeasonRecord) *float64) column {
	return column{name, "COALESCE(s." + name + ", 0)", func(r *models.PlayerSeasonRecord) any { return dest(r) }}
}

func nullable(name string, dest func(r *models.PlayerSeasonRecord) **float64) column {
	return column{name, "s." + name, func(r *models.PlayerSeasonRecord) any { return dest(r) }}
}

// seasonColumns is the SELECT list in scan order.
var seasonColumns = []column{
	{"player_id", "s.player_id::text", func(r *models.PlayerSeasonRecord) any { return &r.PlayerID }},
	{"player_name", "COALESCE(p.full_name, '" + UnknownPlayerName + "')", func(r *models.PlayerSeasonRecord) any { return &r.PlayerName }},
	{"team", "COALESCE(s.team, '')", func(r *models.PlayerSeasonRecord) any { return &r.Team }},
	{"season", "s.season", func(r *models.PlayerSeasonRecord) any { return &r.Season }},
	{"nba_player_id", "p.nba_player_id", func(r *models.PlayerSeasonRecord) any { return &r.NBAPlayerID }},
	{"player_age", "s.player_age", func(r *models.PlayerSeasonRecord) any { return &r.PlayerAge }},
	{"games_played", "COALESCE(s.games_played, 0)", func(r *models.PlayerSeasonRecord) any { return &r.GamesPlayed }},
	counting("avg_minutes", func(r *models.PlayerSeasonRecord) *float64 { return &r.AvgMinutes }),

	counting("points", func(r *models.PlayerSeasonRecord) *float64 { return &r.Points }),
	counting("rebounds", func(r *models.PlayerSeasonRecord) *float64 { return &r.Rebounds }),
	counting("assists", func(r *models.PlayerSeasonRecord) *float64 { return &r.Assists }),
	counting("steals", func(r *models.PlayerSeasonRecord) *float64 { return &r.Steals }),
	counting("blocks", func(r *models.PlayerSeasonRecord) *float64 { return &r.Blocks }),
	counting("turnovers", func(r *models.PlayerSeasonRecord) *float64 { return &r.Turnovers }),
	counting("field_goals_made", func(r *models.PlayerSeasonRecord) *float64 { return &r.FieldGoalsMade }),
	counting("field_goal_attempts", func(r *models.PlayerSeasonRecord) *float64 { return &r.FieldGoalAttempts }),
	counting("three_pointers_made", func(r *models.PlayerSeasonRecord) *float64 { return &r.ThreePointersMade }),
	counting("three_point_attempts", func(r *models.PlayerSeasonRecord) *float64 { return &r.ThreePointAttempts }),
	counting("free_throws_made", func(r *models.PlayerSeasonRecord) *float64 { return &r.FreeThrowsMade }),
	counting("free_throw_attempts", func(r *models.PlayerSeasonRecord) *float64 { return &r.FreeThrowAttempts }),

	nullable("field_goal_pct", func(r *models.PlayerSeasonRecord) **float64 { return &r.FieldGoalPct }),
	nullable("free_throw_pct", func(r *models.PlayerSeasonRecord) **float64 { return &r.FreeThrowPct }),
	nullable("three_point_pct", func(r *models.PlayerSeasonRecord) **float64 { return &r.ThreePointPct }),
	nullable("true_shooting_pct", func(r *models.PlayerSeasonRecord) **float64 { return &r.TrueShootingPct }),
	nullable("usage_rate", func(r *models.PlayerSeasonRecord) **float64 { return &r.UsageRate }),
	nullable("swish_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.SwishScore }),

	nullable("points_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.PointsZScore }),
	nullable("rebounds_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.ReboundsZScore }),
	nullable("assists_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.AssistsZScore }),
	nullable("steals_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.StealsZScore }),
	nullable("blocks_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.BlocksZScore }),
	nullable("turnovers_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.TurnoversZScore }),
	nullable("field_goal_pct_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.FieldGoalPctZScore }),
	nullable("free_throw_pct_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.FreeThrowPctZScore }),
	nullable("three_pointers_made_z_score", func(r *models.PlayerSeasonRecord) **float64 { return &r.ThreePointersMadeZScore }),
}

// BuildSeasonStatsQuery constructs a safe PostgreSQL query over one of the
// season tables. Only the table name is interpolated and it must be allowlisted.
func BuildSeasonStatsQuery(q SeasonStatsQuery) (string, []any, error) {
	if !allowedSources[q.Source] {
		return "", nil, fmt.Errorf("invalid source: %s", q.Source)
	}

	exprs := make([]string, len(seasonColumns))
	for i, c := range seasonColumns {
		exprs[i] = c.expr
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s s LEFT JOIN players p ON p.player_id = s.player_id WHERE 1=1",
		strings.Join(exprs, ", "), q.Source)

	var args []any
	if q.Season != "" {
		args = append(args, q.Season)
		fmt.Fprintf(&sb, " AND s.season = $%d", len(args))
	}
	if q.PlayerID != "" {
		args = append(args, q.PlayerID)
		fmt.Fprintf(&sb, " AND s.player_id = $%d", len(args))
	}

	if q.PlayerID != "" {
		sb.WriteString(" ORDER BY s.season DESC")
	} else {
		// player_id breaks score ties so upstream order is repeatable
		sb.WriteString(" ORDER BY s.swish_score DESC NULLS LAST, s.player_id")
	}

	return sb.String(), args, nil
}

// scanSeasonRecord scans one row produced by BuildSeasonStatsQuery.
func scanSeasonRecord(row pgx.Row) (models.PlayerSeasonRecord, error) {
	var r models.PlayerSeasonRecord
	dest := make([]any, len(seasonColumns))
	for i, c := range seasonColumns {
		dest[i] = c.dest(&r)
	}
	if err := row.Scan(dest...); err != nil {
		return models.PlayerSeasonRecord{}, err
	}
	return r, nil
}

// collectSeasonRecords drains rows into a non-nil slice.
func collectSeasonRecords(rows pgx.Rows) ([]models.PlayerSeasonRecord, error) {
	defer rows.Close()

	records := []models.PlayerSeasonRecord{}
	for rows.Next() {
		r, err := scanSeasonRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
