package ranking

import (
	"fmt"
	"math"
	"strconv"

	"github.com/swishlytics/swish-api/internal/models"
)

const (
	ChannelGreen = "green"
	ChannelRed   = "red"
)

// Palette holds the heat-coloring constants. Values at or beyond a cap get
// the full MaxAlpha.
type Palette struct {
	ScoreCap  float64 // composite score magnitude that saturates
	ZScoreCap float64 // z-score magnitude that saturates
	MaxAlpha  float64
}

// DefaultPalette returns the dashboard's standard scale.
func DefaultPalette() Palette {
	return Palette{
		ScoreCap:  15,
		ZScoreCap: 2.5,
		MaxAlpha:  0.6,
	}
}

func (p Palette) alpha(magnitude, cap float64) float64 {
	if cap <= 0 {
		return p.MaxAlpha
	}
	return math.Min(math.Abs(magnitude)/cap, 1) * p.MaxAlpha
}

// CellStyle maps a stat on a record to a background style. The composite
// score is scaled by its own magnitude; every other stat by its z-score,
// with the channel inverted for stats where lower is better. It reports
// false when there is nothing to show: no score or z-score, a non-finite value, a stat
// without a z-score companion, or a z-score of exactly zero.
func (p Palette) CellStyle(r *models.PlayerSeasonRecord, key StatKey) (models.CellStyle, bool) {
	if key == SwishScore {
		if r.SwishScore == nil || !finite(*r.SwishScore) {
			return models.CellStyle{}, false
		}
		score := *r.SwishScore
		channel := ChannelRed
		if score > 0 {
			channel = ChannelGreen
		}
		return newStyle(channel, p.alpha(score, p.ScoreCap)), true
	}

	stat, ok := Lookup(key)
	if !ok {
		return models.CellStyle{}, false
	}
	z := stat.ZScore(r)
	if z == nil || !finite(*z) || *z == 0 {
		return models.CellStyle{}, false
	}

	good := (*z > 0) != stat.LowerIsBetter
	channel := ChannelRed
	if good {
		channel = ChannelGreen
	}
	return newStyle(channel, p.alpha(*z, p.ZScoreCap)), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func newStyle(channel string, alpha float64) models.CellStyle {
	rgb := "255, 0, 0"
	if channel == ChannelGreen {
		rgb = "0, 255, 0"
	}
	return models.CellStyle{
		Channel:    channel,
		Alpha:      alpha,
		Background: fmt.Sprintf("rgba(%s, %s)", rgb, strconv.FormatFloat(alpha, 'f', -1, 64)),
	}
}
