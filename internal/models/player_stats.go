package models

import "encoding/json"

// PlayerSeasonRecord is one player's aggregated per-game statistics for one season.
// Optional values are pointers; nil means the upstream row had no value.
type PlayerSeasonRecord struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Team        string `json:"team"`
	Season      string `json:"season"`
	NBAPlayerID *int64 `json:"nba_player_id,omitempty"`
	PlayerAge   *int   `json:"player_age,omitempty"`

	GamesPlayed int     `json:"games_played"`
	AvgMinutes  float64 `json:"avg_minutes"`

	// Counting stats (per game)
	Points             float64 `json:"points"`
	Rebounds           float64 `json:"rebounds"`
	Assists            float64 `json:"assists"`
	Steals             float64 `json:"steals"`
	Blocks             float64 `json:"blocks"`
	Turnovers          float64 `json:"turnovers"`
	FieldGoalsMade     float64 `json:"field_goals_made"`
	FieldGoalAttempts  float64 `json:"field_goal_attempts"`
	ThreePointersMade  float64 `json:"three_pointers_made"`
	ThreePointAttempts float64 `json:"three_point_attempts"`
	FreeThrowsMade     float64 `json:"free_throws_made"`
	FreeThrowAttempts  float64 `json:"free_throw_attempts"`

	// Rate stats, absent when there were no attempts
	FieldGoalPct    *float64 `json:"field_goal_pct"`
	FreeThrowPct    *float64 `json:"free_throw_pct"`
	ThreePointPct   *float64 `json:"three_point_pct"`
	TrueShootingPct *float64 `json:"true_shooting_pct"`
	UsageRate       *float64 `json:"usage_rate"`

	SwishScore *float64 `json:"swish_score"`

	// Season-relative z-scores. The X_z_score names are part of the wire contract.
	PointsZScore            *float64 `json:"points_z_score,omitempty"`
	ReboundsZScore          *float64 `json:"rebounds_z_score,omitempty"`
	AssistsZScore           *float64 `json:"assists_z_score,omitempty"`
	StealsZScore            *float64 `json:"steals_z_score,omitempty"`
	BlocksZScore            *float64 `json:"blocks_z_score,omitempty"`
	TurnoversZScore         *float64 `json:"turnovers_z_score,omitempty"`
	FieldGoalPctZScore      *float64 `json:"field_goal_pct_z_score,omitempty"`
	FreeThrowPctZScore      *float64 `json:"free_throw_pct_z_score,omitempty"`
	ThreePointersMadeZScore *float64 `json:"three_pointers_made_z_score,omitempty"`
}

// RankedRecord is a PlayerSeasonRecord tagged with its composite-score rank.
type RankedRecord struct {
	PlayerSeasonRecord
	Rank int `json:"rank"`
}

// UnmarshalJSON keeps the rank when decoding; without it the embedded
// record's lenient decoder would be promoted and swallow the whole object.
func (r *RankedRecord) UnmarshalJSON(data []byte) error {
	if err := r.PlayerSeasonRecord.UnmarshalJSON(data); err != nil {
		return err
	}
	var rank struct {
		Rank int `json:"rank"`
	}
	if err := json.Unmarshal(data, &rank); err != nil {
		return err
	}
	r.Rank = rank.Rank
	return nil
}

// PlayerDetails is the player page payload: identity plus every stored season.
type PlayerDetails struct {
	PlayerID string               `json:"player_id"`
	FullName string               `json:"full_name"`
	Seasons  []PlayerSeasonRecord `json:"player_stats_by_season"`
}

// PlayerProfile combines season history and recent games.
type PlayerProfile struct {
	PlayerDetails
	GameLogs []GameLog `json:"game_logs"`
}

// Float returns a pointer to v. Handy for building optional stat values.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
