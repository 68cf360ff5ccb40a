// Package ranking turns per-player season records into ranked, sorted and
// heat-colored table rows. Everything here is a pure function over an
// in-memory snapshot; nothing blocks and inputs are never mutated.
package ranking

import (
	"math"

	"github.com/swishlytics/swish-api/internal/models"
)

// StatKey identifies a record attribute. Its string form is the wire field name.
type StatKey string

const (
	Rank        StatKey = "rank"
	PlayerName  StatKey = "player_name"
	Team        StatKey = "team"
	Season      StatKey = "season"
	PlayerAge   StatKey = "player_age"
	GamesPlayed StatKey = "games_played"
	AvgMinutes  StatKey = "avg_minutes"

	Points             StatKey = "points"
	Rebounds           StatKey = "rebounds"
	Assists            StatKey = "assists"
	Steals             StatKey = "steals"
	Blocks             StatKey = "blocks"
	Turnovers          StatKey = "turnovers"
	FieldGoalsMade     StatKey = "field_goals_made"
	FieldGoalAttempts  StatKey = "field_goal_attempts"
	ThreePointersMade  StatKey = "three_pointers_made"
	ThreePointAttempts StatKey = "three_point_attempts"
	FreeThrowsMade     StatKey = "free_throws_made"
	FreeThrowAttempts  StatKey = "free_throw_attempts"

	FieldGoalPct    StatKey = "field_goal_pct"
	FreeThrowPct    StatKey = "free_throw_pct"
	ThreePointPct   StatKey = "three_point_pct"
	TrueShootingPct StatKey = "true_shooting_pct"
	UsageRate       StatKey = "usage_rate"

	SwishScore StatKey = "swish_score"
)

// Kind decides how a stat is compared, formatted and colored.
type Kind string

const (
	KindText      Kind = "text"
	KindInteger   Kind = "integer"
	KindCounting  Kind = "counting"
	KindRate      Kind = "rate"
	KindComposite Kind = "composite"
)

// Value is a single attribute read off a record. Absent values (nil
// pointers, NaN, ±Inf) have Present == false.
type Value struct {
	Num     float64
	Str     string
	IsText  bool
	Present bool
}

func num(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{Num: v, Present: true}
}

func optNum(v *float64) Value {
	if v == nil {
		return Value{}
	}
	return num(*v)
}

func text(s string) Value {
	return Value{Str: s, IsText: true, Present: true}
}

// Interface returns the value in a form suitable for JSON: nil, float64 or string.
func (v Value) Interface() interface{} {
	switch {
	case !v.Present:
		return nil
	case v.IsText:
		return v.Str
	default:
		return v.Num
	}
}

// Stat is a catalog entry: everything the engine knows about one attribute.
type Stat struct {
	Key           StatKey
	Label         string
	Kind          Kind
	LowerIsBetter bool

	value  func(r *models.RankedRecord) Value
	zScore func(r *models.PlayerSeasonRecord) *float64
}

// Value reads the stat off a ranked record.
func (s Stat) Value(r *models.RankedRecord) Value {
	return s.value(r)
}

// ZScore returns the precomputed z-score for the stat, or nil when the stat
// has no z-score companion or the record does not carry one.
func (s Stat) ZScore(r *models.PlayerSeasonRecord) *float64 {
	if s.zScore == nil {
		return nil
	}
	return s.zScore(r)
}

// HasZScore reports whether the stat has an X_z_score companion on the wire.
func (s Stat) HasZScore() bool {
	return s.zScore != nil
}

var catalog = []Stat{
	{Key: Rank, Label: "Rank", Kind: KindInteger, LowerIsBetter: true,
		value: func(r *models.RankedRecord) Value { return num(float64(r.Rank)) }},
	{Key: PlayerName, Label: "Player", Kind: KindText,
		value: func(r *models.RankedRecord) Value { return text(r.PlayerName) }},
	{Key: Team, Label: "Team", Kind: KindText,
		value: func(r *models.RankedRecord) Value { return text(r.Team) }},
	{Key: Season, Label: "Season", Kind: KindText,
		value: func(r *models.RankedRecord) Value { return text(r.Season) }},
	{Key: PlayerAge, Label: "Age", Kind: KindInteger,
		value: func(r *models.RankedRecord) Value {
			if r.PlayerAge == nil {
				return Value{}
			}
			return num(float64(*r.PlayerAge))
		}},
	{Key: GamesPlayed, Label: "GP", Kind: KindInteger,
		value: func(r *models.RankedRecord) Value { return num(float64(r.GamesPlayed)) }},
	{Key: AvgMinutes, Label: "MIN", Kind: KindCounting,
		value: func(r *models.RankedRecord) Value { return num(r.AvgMinutes) }},

	{Key: Points, Label: "PTS", Kind: KindCounting,
		value:  func(r *models.RankedRecord) Value { return num(r.Points) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.PointsZScore }},
	{Key: Rebounds, Label: "REB", Kind: KindCounting,
		value:  func(r *models.RankedRecord) Value { return num(r.Rebounds) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.ReboundsZScore }},
	{Key: Assists, Label: "AST", Kind: KindCounting,
		value:  func(r *models.RankedRecord) Value { return num(r.Assists) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.AssistsZScore }},
	{Key: Steals, Label: "STL", Kind: KindCounting,
		value:  func(r *models.RankedRecord) Value { return num(r.Steals) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.StealsZScore }},
	{Key: Blocks, Label: "BLK", Kind: KindCounting,
		value:  func(r *models.RankedRecord) Value { return num(r.Blocks) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.BlocksZScore }},
	{Key: Turnovers, Label: "TOV", Kind: KindCounting, LowerIsBetter: true,
		value:  func(r *models.RankedRecord) Value { return num(r.Turnovers) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.TurnoversZScore }},
	{Key: FieldGoalsMade, Label: "FGM", Kind: KindCounting,
		value: func(r *models.RankedRecord) Value { return num(r.FieldGoalsMade) }},
	{Key: FieldGoalAttempts, Label: "FGA", Kind: KindCounting,
		value: func(r *models.RankedRecord) Value { return num(r.FieldGoalAttempts) }},
	{Key: ThreePointersMade, Label: "3PM", Kind: KindCounting,
		value:  func(r *models.RankedRecord) Value { return num(r.ThreePointersMade) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.ThreePointersMadeZScore }},
	{Key: ThreePointAttempts, Label: "3PA", Kind: KindCounting,
		value: func(r *models.RankedRecord) Value { return num(r.ThreePointAttempts) }},
	{Key: FreeThrowsMade, Label: "FTM", Kind: KindCounting,
		value: func(r *models.RankedRecord) Value { return num(r.FreeThrowsMade) }},
	{Key: FreeThrowAttempts, Label: "FTA", Kind: KindCounting,
		value: func(r *models.RankedRecord) Value { return num(r.FreeThrowAttempts) }},

	{Key: FieldGoalPct, Label: "FG%", Kind: KindRate,
		value:  func(r *models.RankedRecord) Value { return optNum(r.FieldGoalPct) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.FieldGoalPctZScore }},
	{Key: FreeThrowPct, Label: "FT%", Kind: KindRate,
		value:  func(r *models.RankedRecord) Value { return optNum(r.FreeThrowPct) },
		zScore: func(r *models.PlayerSeasonRecord) *float64 { return r.FreeThrowPctZScore }},
	{Key: ThreePointPct, Label: "3P%", Kind: KindRate,
		value: func(r *models.RankedRecord) Value { return optNum(r.ThreePointPct) }},
	{Key: TrueShootingPct, Label: "TS%", Kind: KindRate,
		value: func(r *models.RankedRecord) Value { return optNum(r.TrueShootingPct) }},
	{Key: UsageRate, Label: "Usage", Kind: KindRate,
		value: func(r *models.RankedRecord) Value { return optNum(r.UsageRate) }},

	{Key: SwishScore, Label: "Swish Score", Kind: KindComposite,
		value: func(r *models.RankedRecord) Value { return optNum(r.SwishScore) }},
}

var catalogIndex = func() map[StatKey]int {
	idx := make(map[StatKey]int, len(catalog))
	for i, s := range catalog {
		idx[s.Key] = i
	}
	return idx
}()

// Lookup returns the catalog entry for key.
func Lookup(key StatKey) (Stat, bool) {
	i, ok := catalogIndex[key]
	if !ok {
		return Stat{}, false
	}
	return catalog[i], true
}

// ParseStatKey validates a wire field name. The legacy "full_name" alias is
// accepted for player_name.
func ParseStatKey(s string) (StatKey, bool) {
	if s == "full_name" {
		return PlayerName, true
	}
	key := StatKey(s)
	_, ok := catalogIndex[key]
	return key, ok
}

// Catalog returns every known stat in display order.
func Catalog() []Stat {
	out := make([]Stat, len(catalog))
	copy(out, catalog)
	return out
}

// ZScoreKeys returns the stats that carry an X_z_score companion.
func ZScoreKeys() []StatKey {
	var keys []StatKey
	for _, s := range catalog {
		if s.HasZScore() {
			keys = append(keys, s.Key)
		}
	}
	return keys
}
