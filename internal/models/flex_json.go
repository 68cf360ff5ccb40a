package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// seasonRecordFieldMap caches JSON tag -> struct field index mappings
var (
	seasonRecordFieldMap     map[string]int
	seasonRecordFieldMapOnce sync.Once
)

func getSeasonRecordFieldMap() map[string]int {
	seasonRecordFieldMapOnce.Do(func() {
		t := reflect.TypeOf(PlayerSeasonRecord{})
		seasonRecordFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			seasonRecordFieldMap[name] = i
		}
	})
	return seasonRecordFieldMap
}

// UnmarshalJSON implements flexible JSON unmarshaling that accepts both
// string-encoded and native JSON types. The CSV-backed season exports
// serialized every value as a quoted string ("12.4", "nan", ""); this
// coerces them to the correct Go types and leaves unparseable values absent.
func (r *PlayerSeasonRecord) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias PlayerSeasonRecord
	a := (*Alias)(r)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	// Slow path: field-by-field with string-to-native coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	// The failed fast path may have left fields half-set (pointers to 0)
	*r = PlayerSeasonRecord{}

	fieldMap := getSeasonRecordFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Value is a JSON string but target is numeric, coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			coerceStringToField(fv, s)
		}
	}

	return nil
}

// DecodeStringFields fills a record from wire-named string values, as read
// from a CSV row. Unknown keys are ignored.
func DecodeStringFields(fields map[string]string) PlayerSeasonRecord {
	var rec PlayerSeasonRecord
	fieldMap := getSeasonRecordFieldMap()
	v := reflect.ValueOf(&rec).Elem()
	for key, s := range fields {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}
		coerceStringToField(v.Field(idx), s)
	}
	return rec
}

// isMissing reports whether s is one of the spellings upstream tools use for "no value".
func isMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "null", "none", "n/a", "-":
		return true
	}
	return false
}

// coerceStringToField converts a string value to the field's native type.
// Pointer fields are allocated only when the value parses.
func coerceStringToField(fv reflect.Value, s string) {
	s = strings.TrimSpace(s)
	if fv.Kind() == reflect.Ptr {
		if isMissing(s) {
			return
		}
		elem := reflect.New(fv.Type().Elem())
		if coerceScalar(elem.Elem(), s) {
			fv.Set(elem)
		}
		return
	}
	if fv.Kind() != reflect.String && isMissing(s) {
		return
	}
	coerceScalar(fv, s)
}

func coerceScalar(fv reflect.Value, s string) bool {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil && isFinite(n) {
			fv.SetFloat(n)
			return true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "28.0" → 28
		if n, err := strconv.ParseFloat(s, 64); err == nil && isFinite(n) {
			fv.SetInt(int64(n))
			return true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseFloat(s, 64); err == nil && isFinite(n) && n >= 0 {
			fv.SetUint(uint64(n))
			return true
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			fv.SetBool(b)
			return true
		}
	case reflect.String:
		fv.SetString(s)
		return true
	}
	return false
}

// isFinite rejects the "inf" and "nan" spellings ParseFloat accepts.
func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
