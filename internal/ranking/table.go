package ranking

import "github.com/swishlytics/swish-api/internal/models"

// DefaultColumns is the standard rankings table layout.
var DefaultColumns = []StatKey{
	Rank, PlayerName, Team, GamesPlayed, AvgMinutes,
	Points, Rebounds, Assists, Steals, Blocks, Turnovers,
	FieldGoalPct, FreeThrowPct, ThreePointersMade, ThreePointAttempts,
	FieldGoalsMade, FieldGoalAttempts, FreeThrowsMade, FreeThrowAttempts,
	UsageRate, TrueShootingPct, SwishScore,
}

// Columns describes the given keys for a table header. Unknown keys are skipped.
func Columns(keys []StatKey) []models.TableColumn {
	cols := make([]models.TableColumn, 0, len(keys))
	for _, key := range keys {
		stat, ok := Lookup(key)
		if !ok {
			continue
		}
		cols = append(cols, models.TableColumn{
			Key:              string(stat.Key),
			Label:            stat.Label,
			Kind:             string(stat.Kind),
			Sortable:         true,
			DefaultDirection: string(DefaultDirection(stat.Key)),
		})
	}
	return cols
}

// BuildTable sorts ranked records for display and renders every cell:
// raw value, formatted text and heat style.
func BuildTable(season string, records []models.RankedRecord, d *SortDirective, keys []StatKey, palette Palette) models.RankingTable {
	if len(keys) == 0 {
		keys = DefaultColumns
	}
	cols := Columns(keys)
	sorted := SortRecords(records, d)

	rows := make([]models.TableRow, 0, len(sorted))
	for i := range sorted {
		rec := &sorted[i]
		cells := make([]models.TableCell, 0, len(cols))
		for _, col := range cols {
			key := StatKey(col.Key)
			stat, _ := Lookup(key)
			v := stat.Value(rec)
			cell := models.TableCell{
				Key:     col.Key,
				Value:   v.Interface(),
				Display: FormatStat(v, key),
			}
			if style, ok := palette.CellStyle(&rec.PlayerSeasonRecord, key); ok {
				cell.Style = &style
			}
			cells = append(cells, cell)
		}
		rows = append(rows, models.TableRow{
			PlayerID: rec.PlayerID,
			Rank:     rec.Rank,
			Cells:    cells,
		})
	}

	return models.RankingTable{
		Season:  season,
		Sort:    d.Model(),
		Columns: cols,
		Rows:    rows,
		Total:   len(rows),
	}
}
