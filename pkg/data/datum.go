package data

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Datum is a single tabular record.
type Datum map[string]any

// Clone returns a shallow copy of the record.
func (d Datum) Clone() Datum {
	if d == nil {
		return nil
	}
	out := make(Datum, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Clone copies a slice of records so that neither the slice nor the records
// are shared with the input.
func Clone(rows []Datum) []Datum {
	if rows == nil {
		return nil
	}
	out := make([]Datum, len(rows))
	for i, d := range rows {
		out[i] = d.Clone()
	}
	return out
}

// ToFloat converts a numeric value to float64. Strings are not parsed.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// IsNumeric reports whether v is a number.
func IsNumeric(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

// String formats a value for display. Whole floats print without decimals.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = String(e)
		}
		return strings.Join(parts, "-")
	}
	if f, ok := ToFloat(v); ok {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Equal compares two values, treating numbers of different Go types as equal
// when their float64 values are.
func Equal(a, b any) bool {
	if fa, ok := ToFloat(a); ok {
		fb, ok := ToFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// IndexOf returns the position of v in values, or -1.
func IndexOf(values []any, v any) int {
	for i, x := range values {
		if Equal(x, v) {
			return i
		}
	}
	return -1
}

// Values returns the unique non-nil values of field in first-appearance
// order. Array values are flattened.
func Values(rows []Datum, field string) []any {
	var out []any
	add := func(v any) {
		if v == nil || IndexOf(out, v) >= 0 {
			return
		}
		out = append(out, v)
	}
	for _, d := range rows {
		v := d[field]
		if arr, ok := v.([]any); ok {
			for _, e := range arr {
				add(e)
			}
			continue
		}
		add(v)
	}
	return out
}

// Fields returns the sorted union of the field names of rows.
func Fields(rows []Datum) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range rows {
		for k := range d {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

// FirstValue returns the first non-nil value of field.
func FirstValue(rows []Datum, field string) any {
	for _, d := range rows {
		if v, ok := d[field]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Extent returns the numeric min and max of field. ok is false when no
// numeric value exists.
func Extent(rows []Datum, field string) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	visit := func(v any) {
		if f, isNum := ToFloat(v); isNum && !math.IsNaN(f) {
			lo = math.Min(lo, f)
			hi = math.Max(hi, f)
			ok = true
		}
	}
	for _, d := range rows {
		v := d[field]
		if arr, isArr := v.([]any); isArr {
			for _, e := range arr {
				visit(e)
			}
			continue
		}
		visit(v)
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// GroupBy splits rows by the combined values of fields, preserving the
// order in which each group first appears. No fields yields one group.
func GroupBy(rows []Datum, fields ...string) [][]Datum {
	if len(fields) == 0 {
		return [][]Datum{rows}
	}
	var keys []string
	groups := make(map[string][]Datum)
	for _, d := range rows {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = String(d[f])
		}
		key := strings.Join(parts, "\x1f")
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], d)
	}
	out := make([][]Datum, len(keys))
	for i, k := range keys {
		out[i] = groups[k]
	}
	return out
}
