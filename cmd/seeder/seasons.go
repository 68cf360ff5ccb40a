package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/swishlytics/swish-api/internal/config"
	"github.com/swishlytics/swish-api/internal/logic"
	"github.com/swishlytics/swish-api/internal/models"
	"github.com/swishlytics/swish-api/internal/pipeline"
)

var seasonFilePattern = regexp.MustCompile(`^(\d{4}-\d{2})\.csv$`)

// statColumns lists the stored columns after player_id and season, in the
// order seasonValues returns them.
var statColumns = []string{
	"team", "player_age", "games_played", "avg_minutes",
	"points", "rebounds", "assists", "steals", "blocks", "turnovers",
	"field_goals_made", "field_goal_attempts",
	"three_pointers_made", "three_point_attempts",
	"free_throws_made", "free_throw_attempts",
	"field_goal_pct", "free_throw_pct", "three_point_pct", "true_shooting_pct", "usage_rate",
	"points_z_score", "rebounds_z_score", "assists_z_score", "steals_z_score", "blocks_z_score",
	"turnovers_z_score", "field_goal_pct_z_score", "free_throw_pct_z_score", "three_pointers_made_z_score",
	"swish_score",
}

func seasonValues(r *models.PlayerSeasonRecord) []any {
	return []any{
		r.Team, r.PlayerAge, r.GamesPlayed, r.AvgMinutes,
		r.Points, r.Rebounds, r.Assists, r.Steals, r.Blocks, r.Turnovers,
		r.FieldGoalsMade, r.FieldGoalAttempts,
		r.ThreePointersMade, r.ThreePointAttempts,
		r.FreeThrowsMade, r.FreeThrowAttempts,
		r.FieldGoalPct, r.FreeThrowPct, r.ThreePointPct, r.TrueShootingPct, r.UsageRate,
		r.PointsZScore, r.ReboundsZScore, r.AssistsZScore, r.StealsZScore, r.BlocksZScore,
		r.TurnoversZScore, r.FieldGoalPctZScore, r.FreeThrowPctZScore, r.ThreePointersMadeZScore,
		r.SwishScore,
	}
}

// upsertStatsSQL builds the (player_id, season) upsert for one of the season tables.
func upsertStatsSQL(table logic.StatSource) string {
	cols := append([]string{"player_id", "season"}, statColumns...)
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	updates := make([]string, 0, len(statColumns)+1)
	for _, c := range statColumns {
		updates = append(updates, c+" = EXCLUDED."+c)
	}
	updates = append(updates, "updated_at = NOW()")

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (player_id, season) DO UPDATE SET %s",
		table, strings.Join(cols, ", "), strings.Join(params, ", "), strings.Join(updates, ", "))
}

const upsertPlayerSQL = `
	INSERT INTO players (player_id, full_name, nba_player_id)
	VALUES ($1, $2, $3)
	ON CONFLICT (full_name) DO UPDATE
	SET nba_player_id = COALESCE(EXCLUDED.nba_player_id, players.nba_player_id)
	RETURNING player_id::text`

func seasonOptions(cfg *config.Config) pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.MinGamesPlayed = cfg.MinGamesPlayed
	opts.MinAvgMinutes = cfg.MinAvgMinutes
	return opts
}

type seasonLoader struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	dryRun bool
}

// seasonFiles returns the <season>.csv files in dir, oldest season first.
func seasonFiles(dir string) (map[string]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	paths := make(map[string]string)
	var seasons []string
	for _, e := range entries {
		m := seasonFilePattern.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		paths[m[1]] = filepath.Join(dir, e.Name())
		seasons = append(seasons, m[1])
	}
	sort.Strings(seasons)
	return paths, seasons, nil
}

func (l *seasonLoader) loadSeasonDir(ctx context.Context, dir string, opts pipeline.Options) error {
	paths, seasons, err := seasonFiles(dir)
	if err != nil {
		return err
	}
	if len(seasons) == 0 {
		l.logger.Warnw("No season files found", "dir", dir)
		return nil
	}

	for _, season := range seasons {
		raw, err := readSeasonFile(paths[season], season)
		if err != nil {
			return err
		}
		scored := pipeline.Process(raw, opts)
		l.logger.Infow("Scored season", "season", season, "rows", len(raw), "eligible", len(scored))

		if err := l.store(ctx, logic.SourceSeasonStats, scored); err != nil {
			return fmt.Errorf("season %s: %w", season, err)
		}
	}
	return nil
}

// loadProjections scores a projections file without the eligibility filter;
// projected lines are already limited to rotation players.
func (l *seasonLoader) loadProjections(ctx context.Context, path, season string) error {
	raw, err := readSeasonFile(path, season)
	if err != nil {
		return err
	}
	for i := range raw {
		raw[i].Season = season
	}
	scored := pipeline.Process(raw, pipeline.Options{Weights: pipeline.DefaultWeights()})
	l.logger.Infow("Scored projections", "season", season, "rows", len(scored))

	if err := l.store(ctx, logic.SourceProjections, scored); err != nil {
		return fmt.Errorf("projections: %w", err)
	}
	return nil
}

func readSeasonFile(path, season string) ([]models.PlayerSeasonRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := pipeline.LoadSeasonCSV(f, season)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// store upserts players and their rows in one transaction.
func (l *seasonLoader) store(ctx context.Context, table logic.StatSource, records []models.PlayerSeasonRecord) error {
	if l.dryRun {
		l.logger.Infow("Dry run, skipping write", "table", table, "rows", len(records))
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	playerStmt, err := tx.PrepareContext(ctx, upsertPlayerSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare player upsert: %w", err)
	}
	defer playerStmt.Close()

	statsStmt, err := tx.PrepareContext(ctx, upsertStatsSQL(table))
	if err != nil {
		return fmt.Errorf("failed to prepare %s upsert: %w", table, err)
	}
	defer statsStmt.Close()

	for i := range records {
		rec := &records[i]
		id := pipeline.PlayerUUID(rec.PlayerID, rec.PlayerName)

		var playerID string
		if err := playerStmt.QueryRowContext(ctx, id.String(), rec.PlayerName, rec.NBAPlayerID).Scan(&playerID); err != nil {
			return fmt.Errorf("failed to upsert player %q: %w", rec.PlayerName, err)
		}

		args := append([]any{playerID, rec.Season}, seasonValues(rec)...)
		if _, err := statsStmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to upsert %s row for %q: %w", table, rec.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	l.logger.Infow("Stored rows", "table", table, "rows", len(records))
	return nil
}
