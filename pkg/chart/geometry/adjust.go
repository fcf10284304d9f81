package geometry

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/data"
)

// stack accumulates y values of records sharing an x value across groups.
// Positive and negative values stack separately, away from zero.
func stack(groups [][]*Record, xField string) {
	pos := map[string]float64{}
	neg := map[string]float64{}
	for _, g := range groups {
		for _, r := range g {
			if math.IsNaN(r.YEnd) {
				continue
			}
			k := data.String(r.Origin[xField])
			acc := pos
			if r.YEnd < 0 {
				acc = neg
			}
			r.YStart = acc[k]
			r.YEnd += acc[k]
			acc[k] = r.YEnd
		}
	}
}

// stackedExtent returns the y extent of stacked records, always including
// zero.
func stackedExtent(groups [][]*Record) (lo, hi float64, ok bool) {
	for _, g := range groups {
		for _, r := range g {
			if math.IsNaN(r.YStart) {
				continue
			}
			lo = math.Min(lo, math.Min(r.YStart, r.YEnd))
			hi = math.Max(hi, math.Max(r.YStart, r.YEnd))
			ok = true
		}
	}
	return lo, hi, ok
}
