package scale

import (
	"strconv"
	"time"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/data"
)

// Infer returns def with its type filled in from the field's data when
// unset. Numbers give a nice linear scale, dates a timeCat scale and
// anything else a cat scale. A numeric field name, or a field with no data
// and no configuration, gives an identity scale over the field name itself.
func Infer(field string, rows []data.Datum, def Def) Def {
	if def.Type != "" {
		return def
	}
	first := data.FirstValue(rows, field)
	if _, err := strconv.ParseFloat(field, 64); err == nil || (first == nil && def.IsEmpty()) {
		def.Type = TypeIdentity
		if def.Values == nil {
			def.Values = []any{field}
		}
		return def
	}
	if first == nil && len(def.Values) > 0 {
		first = def.Values[0]
	}
	switch {
	case isTime(first):
		def.Type = TypeTimeCat
	case data.IsNumeric(first):
		def.Type = TypeLinear
		if def.Min == nil && def.Max == nil {
			def.Nice = true
		}
	default:
		def.Type = TypeCat
	}
	return def
}

func isTime(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

// DefaultCategoryRange returns the unit range a category or identity scale
// should use under c when the user set none. Each category gets a band of
// width 1/n centered on its tick. Full circles drop the last band so the
// first and last categories do not meet at the seam; transposed full
// circles (pies and donuts) instead center a band of widthRatio/n.
func DefaultCategoryRange(s *Scale, c coord.Coordinate, widthRatio float64) []float64 {
	n := len(s.Values)
	if n == 1 {
		return []float64{0.5, 1}
	}
	if n == 0 {
		return []float64{0, 1}
	}
	if c != nil && coord.IsFullCircle(c) {
		if !c.IsTransposed() {
			return []float64{0, 1 - 1/float64(n)}
		}
		if widthRatio <= 0 {
			widthRatio = 1 / 1.3
		}
		offset := (1 / float64(n)) * widthRatio
		return []float64{offset / 2, 1 - offset/2}
	}
	offset := 1 / float64(n) / 2
	return []float64{offset, 1 - offset}
}
