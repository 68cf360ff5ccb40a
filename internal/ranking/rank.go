package ranking

import (
	"cmp"
	"math"
	"slices"

	"github.com/swishlytics/swish-api/internal/models"
)

// rankScore is the composite score used for ordering. Missing or NaN scores
// compare as zero; the record itself keeps its original value.
func rankScore(r *models.PlayerSeasonRecord) float64 {
	if r.SwishScore == nil || math.IsNaN(*r.SwishScore) {
		return 0
	}
	return *r.SwishScore
}

// AssignRanks orders records by descending swish score and tags each with a
// 1-based rank. Equal scores keep their input order and still receive
// consecutive ranks. The result is a new slice in rank order.
func AssignRanks(records []models.PlayerSeasonRecord) []models.RankedRecord {
	ranked := make([]models.RankedRecord, len(records))
	for i := range records {
		ranked[i] = models.RankedRecord{PlayerSeasonRecord: records[i]}
	}

	slices.SortStableFunc(ranked, func(a, b models.RankedRecord) int {
		return cmp.Compare(rankScore(&b.PlayerSeasonRecord), rankScore(&a.PlayerSeasonRecord))
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
