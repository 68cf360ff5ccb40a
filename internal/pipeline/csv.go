// Package pipeline turns raw season and game-log exports into the records the
// API serves: CSV decoding, eligibility filtering, per-season z-scores and the
// weighted swish score.
package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/swishlytics/swish-api/internal/models"
)

// seasonHeaders maps the exporter's PascalCase headers to wire field names.
// Headers already in wire form pass through unchanged.
var seasonHeaders = map[string]string{
	"PlayerName":         "player_name",
	"PlayerID":           "nba_player_id",
	"PlayerAge":          "player_age",
	"Team":               "team",
	"Season":             "season",
	"GamesPlayed":        "games_played",
	"AvgMinutes":         "avg_minutes",
	"Points":             "points",
	"Rebounds":           "rebounds",
	"Assists":            "assists",
	"Steals":             "steals",
	"Blocks":             "blocks",
	"Turnovers":          "turnovers",
	"FieldGoalPct":       "field_goal_pct",
	"FreeThrowPct":       "free_throw_pct",
	"ThreePointPct":      "three_point_pct",
	"ThreePointersMade":  "three_pointers_made",
	"ThreePointAttempts": "three_point_attempts",
	"FieldGoalsMade":     "field_goals_made",
	"FieldGoalAttempts":  "field_goal_attempts",
	"FreeThrowsMade":     "free_throws_made",
	"FreeThrowAttempts":  "free_throw_attempts",
	"TrueShootingPct":    "true_shooting_pct",
	"UsageRate":          "usage_rate",

	"Points_ZScore":            "points_z_score",
	"Rebounds_ZScore":          "rebounds_z_score",
	"Assists_ZScore":           "assists_z_score",
	"Steals_ZScore":            "steals_z_score",
	"Blocks_ZScore":            "blocks_z_score",
	"Turnovers_ZScore":         "turnovers_z_score",
	"FieldGoalPct_ZScore":      "field_goal_pct_z_score",
	"FreeThrowPct_ZScore":      "free_throw_pct_z_score",
	"ThreePointersMade_ZScore": "three_pointers_made_z_score",

	"Swish_Score":          "swish_score",
	"Total_Fantasy_ZScore": "swish_score",
}

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

func wireName(header string) string {
	header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	if name, ok := seasonHeaders[header]; ok {
		return name
	}
	return header
}

// LoadSeasonCSV reads one season export. Values are decoded leniently: empty
// cells and spellings like "nan" leave the field absent. Rows without a
// Season column take the given season.
func LoadSeasonCSV(r io.Reader, season string) ([]models.PlayerSeasonRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []models.PlayerSeasonRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]string, len(header))
	hasName := false
	for i, h := range header {
		cols[i] = wireName(h)
		if cols[i] == "player_name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("%w: PlayerName", ErrMissingColumn)
	}

	var records []models.PlayerSeasonRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		fields := make(map[string]string, len(row))
		for i, v := range row {
			if i < len(cols) {
				fields[cols[i]] = v
			}
		}
		rec := models.DecodeStringFields(fields)
		if rec.PlayerName == "" {
			continue
		}
		if rec.Season == "" {
			rec.Season = season
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []models.PlayerSeasonRecord{}
	}
	return records, nil
}

// gameDateLayouts are tried in order. The first is the stats site format
// ("APR 14, 2024").
var gameDateLayouts = []string{"Jan 02, 2006", "2006-01-02", time.RFC3339}

func parseGameDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// The stats site upper-cases month names.
	if len(s) > 3 {
		s = s[:1] + strings.ToLower(s[1:3]) + s[3:]
	}
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized game date %q", s)
}

// parseMinutes accepts plain numbers and "mm:ss".
func parseMinutes(s string) (float64, error) {
	if m, sec, ok := strings.Cut(s, ":"); ok {
		mins, err := strconv.Atoi(m)
		if err != nil {
			return 0, err
		}
		secs, err := strconv.Atoi(sec)
		if err != nil {
			return 0, err
		}
		return float64(mins) + float64(secs)/60, nil
	}
	return parseFloat(s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseCount(s string) (uint32, error) {
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative count %v", f)
	}
	return uint32(math.Round(f)), nil
}

// LoadGameLogCSV reads a player's game log export (GAME_DATE, MATCHUP, WL,
// MIN, PTS, ...) and tags every row with playerID and season. Unlike season
// exports the box score is strict: a malformed number fails the whole file.
func LoadGameLogCSV(r io.Reader, playerID, season string) ([]models.GameLog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []models.GameLog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range []string{"GAME_DATE", "MATCHUP"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	logs := []models.GameLog{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		gl := models.GameLog{
			PlayerID: playerID,
			Season:   season,
			Opponent: get("MATCHUP"),
			WinLoss:  get("WL"),
		}
		if gl.GameDate, err = parseGameDate(get("GAME_DATE")); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if gl.MinutesPlayed, err = parseMinutes(get("MIN")); err != nil {
			return nil, fmt.Errorf("line %d: MIN: %w", line, err)
		}

		counts := []struct {
			col string
			dst *uint32
		}{
			{"PTS", &gl.Points},
			{"REB", &gl.Rebounds},
			{"AST", &gl.Assists},
			{"STL", &gl.Steals},
			{"BLK", &gl.Blocks},
			{"TOV", &gl.Turnovers},
			{"FGM", &gl.FieldGoalsMade},
			{"FGA", &gl.FieldGoalAttempts},
			{"FG3M", &gl.ThreePointersMade},
			{"FG3A", &gl.ThreePointAttempts},
			{"FTM", &gl.FreeThrowsMade},
			{"FTA", &gl.FreeThrowAttempts},
		}
		for _, c := range counts {
			if *c.dst, err = parseCount(get(c.col)); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, c.col, err)
			}
		}

		pm, err := parseFloat(get("PLUS_MINUS"))
		if err != nil {
			return nil, fmt.Errorf("line %d: PLUS_MINUS: %w", line, err)
		}
		gl.PlusMinus = int32(math.Round(pm))

		logs = append(logs, gl)
	}
	return logs, nil
}
