package pipeline

import (
	"math"

	"github.com/swishlytics/swish-api/internal/models"
)

// Weights are the per-category multipliers applied to z-scores. Turnovers
// carry a negative weight.
type Weights struct {
	Points            float64
	Rebounds          float64
	Assists           float64
	Steals            float64
	Blocks            float64
	FieldGoalPct      float64
	ThreePointersMade float64
	FreeThrowPct      float64
	Turnovers         float64
}

// DefaultWeights returns the production swish weights.
func DefaultWeights() Weights {
	return Weights{
		Points:            1.195,
		Rebounds:          1.267,
		Assists:           1.239,
		Steals:            1.322,
		Blocks:            1.426,
		FieldGoalPct:      1.380,
		ThreePointersMade: 1.286,
		FreeThrowPct:      1.256,
		Turnovers:         -1.217,
	}
}

// ComputeSwishScores sets swish_score to the weighted sum of each record's
// available z-scores. Records without any z-score keep an absent score.
func ComputeSwishScores(records []models.PlayerSeasonRecord, w Weights) []models.PlayerSeasonRecord {
	out := make([]models.PlayerSeasonRecord, len(records))
	copy(out, records)

	for i := range out {
		r := &out[i]
		terms := []struct {
			z *float64
			w float64
		}{
			{r.PointsZScore, w.Points},
			{r.ReboundsZScore, w.Rebounds},
			{r.AssistsZScore, w.Assists},
			{r.StealsZScore, w.Steals},
			{r.BlocksZScore, w.Blocks},
			{r.FieldGoalPctZScore, w.FieldGoalPct},
			{r.ThreePointersMadeZScore, w.ThreePointersMade},
			{r.FreeThrowPctZScore, w.FreeThrowPct},
			{r.TurnoversZScore, w.Turnovers},
		}

		var sum float64
		seen := false
		for _, t := range terms {
			if t.z == nil || math.IsNaN(*t.z) {
				continue
			}
			sum += *t.z * t.w
			seen = true
		}
		if seen {
			r.SwishScore = models.Float(sum)
		} else {
			r.SwishScore = nil
		}
	}
	return out
}

// Options controls Process.
type Options struct {
	MinGamesPlayed int
	MinAvgMinutes  float64
	Weights        Weights
}

// DefaultOptions mirrors the exporter's thresholds and weights.
func DefaultOptions() Options {
	return Options{
		MinGamesPlayed: DefaultMinGamesPlayed,
		MinAvgMinutes:  DefaultMinAvgMinutes,
		Weights:        DefaultWeights(),
	}
}

// Process runs one season through filtering, z-scores and scoring.
func Process(records []models.PlayerSeasonRecord, opts Options) []models.PlayerSeasonRecord {
	eligible := Filter(records, opts.MinGamesPlayed, opts.MinAvgMinutes)
	return ComputeSwishScores(ComputeZScores(eligible), opts.Weights)
}
