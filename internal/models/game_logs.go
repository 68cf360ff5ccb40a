package models

import "time"

// GameLog is a single game box-score line for one player.
type GameLog struct {
	PlayerID           string    `json:"player_id"`
	Season             string    `json:"season"`
	GameDate           time.Time `json:"game_date"`
	Opponent           string    `json:"opponent"` // matchup string, e.g. "LAL @ BOS"
	WinLoss            string    `json:"win_loss"`
	MinutesPlayed      float64   `json:"minutes_played"`
	Points             uint32    `json:"points"`
	Rebounds           uint32    `json:"rebounds"`
	Assists            uint32    `json:"assists"`
	Steals             uint32    `json:"steals"`
	Blocks             uint32    `json:"blocks"`
	Turnovers          uint32    `json:"turnovers"`
	FieldGoalsMade     uint32    `json:"field_goals_made"`
	FieldGoalAttempts  uint32    `json:"field_goal_attempts"`
	ThreePointersMade  uint32    `json:"three_pointers_made"`
	ThreePointAttempts uint32    `json:"three_point_attempts"`
	FreeThrowsMade     uint32    `json:"free_throws_made"`
	FreeThrowAttempts  uint32    `json:"free_throw_attempts"`
	PlusMinus          int32     `json:"plus_minus"`
}
