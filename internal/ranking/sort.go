package ranking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/swishlytics/swish-api/internal/models"
)

// Direction is a sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(s)) {
	case Ascending:
		return Ascending, true
	case Descending:
		return Descending, true
	}
	return "", false
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortDirective is the single active display sort.
type SortDirective struct {
	Field     StatKey
	Direction Direction
}

// Model converts the directive to its wire form.
func (d *SortDirective) Model() *models.SortDirective {
	if d == nil {
		return nil
	}
	return &models.SortDirective{Field: string(d.Field), Direction: string(d.Direction)}
}

// DefaultDirection is the direction a column starts in when first clicked:
// ascending where lower is better (turnovers, rank) and for text columns,
// descending for every other numeric stat.
func DefaultDirection(key StatKey) Direction {
	stat, ok := Lookup(key)
	if !ok {
		return Descending
	}
	if stat.LowerIsBetter || stat.Kind == KindText {
		return Ascending
	}
	return Descending
}

// NextDirective applies the header-click policy: clicking the active field
// flips its direction, clicking another field resets to its default.
func NextDirective(current *SortDirective, key StatKey) SortDirective {
	if current != nil && current.Field == key {
		return SortDirective{Field: key, Direction: current.Direction.Flip()}
	}
	return SortDirective{Field: key, Direction: DefaultDirection(key)}
}

// compareValues orders two present values. Text compares lexicographically,
// numbers naturally; a text value never compares against a number in
// practice because each stat has a single kind.
func compareValues(a, b Value) int {
	if a.IsText || b.IsText {
		return strings.Compare(a.Str, b.Str)
	}
	return cmp.Compare(a.Num, b.Num)
}

// SortRecords returns records reordered for display. A nil directive (or an
// unknown field) leaves the input order. Absent values go last in either
// direction. The sort is stable and neither the input slice nor any rank is
// modified.
func SortRecords(records []models.RankedRecord, d *SortDirective) []models.RankedRecord {
	out := slices.Clone(records)
	if d == nil {
		return out
	}
	stat, ok := Lookup(d.Field)
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b models.RankedRecord) int {
		av, bv := stat.Value(&a), stat.Value(&b)
		switch {
		case !av.Present && !bv.Present:
			return 0
		case !av.Present:
			return 1
		case !bv.Present:
			return -1
		}
		c := compareValues(av, bv)
		if d.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}
