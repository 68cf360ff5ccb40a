package models

// RankingTable is the rendered form of a season's rankings: one row per
// player in display order, one cell per column.
type RankingTable struct {
	Season  string         `json:"season"`
	Sort    *SortDirective `json:"sort,omitempty"`
	Columns []TableColumn  `json:"columns"`
	Rows    []TableRow     `json:"rows"`
	Total   int            `json:"total"`
}

// SortDirective names the field the rows are ordered by.
type SortDirective struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // "asc" or "desc"
}

type TableColumn struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	Kind             string `json:"kind"`
	Sortable         bool   `json:"sortable"`
	DefaultDirection string `json:"default_direction"`
}

type TableRow struct {
	PlayerID string      `json:"player_id"`
	Rank     int         `json:"rank"`
	Cells    []TableCell `json:"cells"`
}

// TableCell carries the raw value (nil when absent), its display string and
// an optional heat style.
type TableCell struct {
	Key     string      `json:"key"`
	Value   interface{} `json:"value"`
	Display string      `json:"display"`
	Style   *CellStyle  `json:"style,omitempty"`
}

// CellStyle is a red/green background with an alpha proportional to how far
// the value sits from the league norm.
type CellStyle struct {
	Channel    string  `json:"channel"` // "green" or "red"
	Alpha      float64 `json:"alpha"`
	Background string  `json:"background"`
}
