package models

import (
	"encoding/json"
	"testing"
)

func TestFlexUnmarshal_AllStrings(t *testing.T) {
	input := `[{"player_id": "a1", "player_name": "Nikola Jokic", "team": "DEN", "season": "2024-25", "games_played": "70.0", "avg_minutes": "36.7", "points": "29.6", "turnovers": "3.1", "field_goal_pct": "0.576", "three_point_pct": "nan", "usage_rate": "", "swish_score": "14.812", "points_z_score": "2.41"}]`

	var records []PlayerSeasonRecord
	if err := json.Unmarshal([]byte(input), &records); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.PlayerName != "Nikola Jokic" {
		t.Errorf("PlayerName = %q, want Nikola Jokic", r.PlayerName)
	}
	if r.GamesPlayed != 70 {
		t.Errorf("GamesPlayed = %d, want 70", r.GamesPlayed)
	}
	if r.Points != 29.6 {
		t.Errorf("Points = %f, want 29.6", r.Points)
	}
	if r.FieldGoalPct == nil || *r.FieldGoalPct != 0.576 {
		t.Errorf("FieldGoalPct = %v, want 0.576", r.FieldGoalPct)
	}
	if r.ThreePointPct != nil {
		t.Errorf("ThreePointPct = %v, want nil for nan", *r.ThreePointPct)
	}
	if r.UsageRate != nil {
		t.Errorf("UsageRate = %v, want nil for empty string", *r.UsageRate)
	}
	if r.SwishScore == nil || *r.SwishScore != 14.812 {
		t.Errorf("SwishScore = %v, want 14.812", r.SwishScore)
	}
	if r.PointsZScore == nil || *r.PointsZScore != 2.41 {
		t.Errorf("PointsZScore = %v, want 2.41", r.PointsZScore)
	}
}

func TestFlexUnmarshal_NativeTypes(t *testing.T) {
	input := `{"player_id": "b2", "games_played": 12, "points": 18.25, "swish_score": null, "rebounds_z_score": -0.4}`

	var r PlayerSeasonRecord
	if err := json.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if r.Points != 18.25 {
		t.Errorf("Points = %f, want 18.25", r.Points)
	}
	if r.SwishScore != nil {
		t.Errorf("SwishScore = %v, want nil", *r.SwishScore)
	}
	if r.ReboundsZScore == nil || *r.ReboundsZScore != -0.4 {
		t.Errorf("ReboundsZScore = %v, want -0.4", r.ReboundsZScore)
	}
}

func TestRankedRecordUnmarshalKeepsRank(t *testing.T) {
	input := `{"player_id": "c3", "points": "10.5", "rank": 4}`

	var r RankedRecord
	if err := json.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if r.Rank != 4 {
		t.Errorf("Rank = %d, want 4", r.Rank)
	}
	if r.Points != 10.5 {
		t.Errorf("Points = %f, want 10.5", r.Points)
	}
}

func TestDecodeStringFields(t *testing.T) {
	rec := DecodeStringFields(map[string]string{
		"player_name":       "Tyrese Haliburton",
		"player_age":        "24",
		"assists":           "9.2",
		"free_throw_pct":    "0.851",
		"true_shooting_pct": "None",
		"unknown_column":    "ignored",
	})

	if rec.PlayerName != "Tyrese Haliburton" {
		t.Errorf("PlayerName = %q", rec.PlayerName)
	}
	if rec.PlayerAge == nil || *rec.PlayerAge != 24 {
		t.Errorf("PlayerAge = %v, want 24", rec.PlayerAge)
	}
	if rec.Assists != 9.2 {
		t.Errorf("Assists = %f, want 9.2", rec.Assists)
	}
	if rec.FreeThrowPct == nil || *rec.FreeThrowPct != 0.851 {
		t.Errorf("FreeThrowPct = %v, want 0.851", rec.FreeThrowPct)
	}
	if rec.TrueShootingPct != nil {
		t.Errorf("TrueShootingPct = %v, want nil", *rec.TrueShootingPct)
	}
}

func TestFlexUnmarshal_MissingStringsStayAbsent(t *testing.T) {
	// A single string-encoded number sends decoding down the coercion path
	input := `{"player_id": "d4", "points": "21.0", "field_goal_pct": "nan", "swish_score": "", "free_throw_pct": "inf"}`

	var r PlayerSeasonRecord
	if err := json.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if r.Points != 21 {
		t.Errorf("Points = %f, want 21", r.Points)
	}
	for name, v := range map[string]*float64{
		"FieldGoalPct": r.FieldGoalPct,
		"SwishScore":   r.SwishScore,
		"FreeThrowPct": r.FreeThrowPct,
	} {
		if v != nil {
			t.Errorf("%s = %v, want nil", name, *v)
		}
	}
}

func TestDecodeStringFields_RejectsInfinity(t *testing.T) {
	rec := DecodeStringFields(map[string]string{
		"points":      "Infinity",
		"usage_rate":  "-inf",
		"player_age":  "+Inf",
		"swish_score": "3.5",
	})

	if rec.Points != 0 {
		t.Errorf("Points = %f, want 0", rec.Points)
	}
	if rec.UsageRate != nil {
		t.Errorf("UsageRate = %v, want nil", *rec.UsageRate)
	}
	if rec.PlayerAge != nil {
		t.Errorf("PlayerAge = %v, want nil", *rec.PlayerAge)
	}
	if rec.SwishScore == nil || *rec.SwishScore != 3.5 {
		t.Errorf("SwishScore = %v, want 3.5", rec.SwishScore)
	}
}
