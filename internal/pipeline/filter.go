package pipeline

import "github.com/swishlytics/swish-api/internal/models"

// Eligibility thresholds used by the season exporter.
const (
	DefaultMinGamesPlayed = 20
	DefaultMinAvgMinutes  = 25.0
)

// Filter keeps records that meet both thresholds. It returns a new slice.
func Filter(records []models.PlayerSeasonRecord, minGames int, minMinutes float64) []models.PlayerSeasonRecord {
	out := make([]models.PlayerSeasonRecord, 0, len(records))
	for _, r := range records {
		if r.GamesPlayed >= minGames && r.AvgMinutes >= minMinutes {
			out = append(out, r)
		}
	}
	return out
}
