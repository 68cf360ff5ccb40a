package ranking

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Placeholder is shown for absent values.
const Placeholder = "-"

// isRateKey matches percentage fields by name, plus usage rate.
func isRateKey(key StatKey) bool {
	return strings.HasSuffix(string(key), "_pct") || key == UsageRate
}

func isIntegerKey(key StatKey) bool {
	switch key {
	case Rank, GamesPlayed, PlayerAge:
		return true
	}
	return false
}

// FormatStat renders a value for display. It accepts whatever a record or
// decoded JSON can hold (numbers of any width, pointers to them, strings,
// nil, a catalog Value) and never fails: absent or non-finite numbers become
// Placeholder, non-numeric values print as themselves.
func FormatStat(value interface{}, key StatKey) string {
	value = unwrap(value)
	if value == nil {
		return Placeholder
	}
	n, ok := toFloat(value)
	if !ok {
		return fmt.Sprint(value)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Placeholder
	}

	switch {
	case isIntegerKey(key):
		return strconv.FormatFloat(math.Round(n), 'f', 0, 64)
	case isRateKey(key):
		return strconv.FormatFloat(n*100, 'f', 1, 64) + "%"
	case key == SwishScore:
		return strconv.FormatFloat(n, 'f', 2, 64)
	default:
		return strconv.FormatFloat(n, 'f', 1, 64)
	}
}

// unwrap dereferences pointers and catalog Values. nil pointers become nil.
func unwrap(value interface{}) interface{} {
	if v, ok := value.(Value); ok {
		return v.Interface()
	}
	rv := reflect.ValueOf(value)
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func toFloat(value interface{}) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
