package pipeline

import (
	"math"

	"github.com/swishlytics/swish-api/internal/models"
)

// category binds a raw stat to its z-score field.
type category struct {
	name  string
	value func(r *models.PlayerSeasonRecord) (float64, bool)
	z     func(r *models.PlayerSeasonRecord) **float64
}

func plain(f func(r *models.PlayerSeasonRecord) float64) func(r *models.PlayerSeasonRecord) (float64, bool) {
	return func(r *models.PlayerSeasonRecord) (float64, bool) { return f(r), true }
}

func optional(f func(r *models.PlayerSeasonRecord) *float64) func(r *models.PlayerSeasonRecord) (float64, bool) {
	return func(r *models.PlayerSeasonRecord) (float64, bool) {
		p := f(r)
		if p == nil || math.IsNaN(*p) {
			return 0, false
		}
		return *p, true
	}
}

var categories = []category{
	{"points",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.Points }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.PointsZScore }},
	{"rebounds",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.Rebounds }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.ReboundsZScore }},
	{"assists",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.Assists }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.AssistsZScore }},
	{"steals",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.Steals }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.StealsZScore }},
	{"blocks",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.Blocks }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.BlocksZScore }},
	{"field_goal_pct",
		optional(func(r *models.PlayerSeasonRecord) *float64 { return r.FieldGoalPct }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.FieldGoalPctZScore }},
	{"three_pointers_made",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.ThreePointersMade }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.ThreePointersMadeZScore }},
	{"free_throw_pct",
		optional(func(r *models.PlayerSeasonRecord) *float64 { return r.FreeThrowPct }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.FreeThrowPctZScore }},
	{"turnovers",
		plain(func(r *models.PlayerSeasonRecord) float64 { return r.Turnovers }),
		func(r *models.PlayerSeasonRecord) **float64 { return &r.TurnoversZScore }},
}

// meanStd returns the mean and sample standard deviation (n-1 denominator).
// With fewer than two values the deviation is 0.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}

// ComputeZScores standardizes the nine scoring categories across the given
// records, which should all belong to one season. A category with no spread
// gets z = 0 for everyone; a record missing a rate stat gets no z-score for
// it. The input is not modified.
func ComputeZScores(records []models.PlayerSeasonRecord) []models.PlayerSeasonRecord {
	out := make([]models.PlayerSeasonRecord, len(records))
	copy(out, records)

	for _, c := range categories {
		values := make([]float64, 0, len(out))
		for i := range out {
			if v, ok := c.value(&out[i]); ok {
				values = append(values, v)
			}
		}
		mean, std := meanStd(values)

		for i := range out {
			v, ok := c.value(&out[i])
			if !ok {
				*c.z(&out[i]) = nil
				continue
			}
			z := 0.0
			if std > 0 {
				z = (v - mean) / std
			}
			*c.z(&out[i]) = models.Float(z)
		}
	}
	return out
}
