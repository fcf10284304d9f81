package geometry

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/data"
)

// FindRecords returns the records of g at the x position of the pixel
// point p.
//
// The point is inverted into unit space first. Under a non-transposed polar
// coordinate an inverted x past (1+rangeMax)/2 wraps to rangeMin, since the
// space after the last category belongs to the first one. Category x
// scales then match every record of the category at x, so a shared tooltip
// sees all color groups; continuous x scales match the records at the
// nearest x. Geometries with an identity x (pies) match the slice whose
// stacked y interval contains the inverted y.
func FindRecords(g Geometry, p coord.Point) []*Record {
	c := g.Coordinate()
	xs := g.XScale()
	if c == nil || xs == nil {
		return nil
	}
	var all []*Record
	for _, group := range g.DataArray() {
		all = append(all, group...)
	}
	if len(all) == 0 {
		return nil
	}
	u := c.Invert(p)
	x := u.X
	if c.IsPolar() && !c.IsTransposed() && x > (1+xs.RangeMax())/2 {
		x = xs.RangeMin()
	}

	switch {
	case xs.IsIdentity():
		ys := g.YScale()
		if ys == nil {
			return nil
		}
		f, ok := data.ToFloat(ys.Invert(u.Y))
		if !ok {
			return nil
		}
		for _, r := range all {
			lo, hi := r.YStart, r.YEnd
			if math.IsNaN(lo) {
				lo = 0
			}
			if f >= math.Min(lo, hi) && f <= math.Max(lo, hi) {
				return []*Record{r}
			}
		}
		return nil

	case xs.IsCategory():
		idx := xs.Translate(xs.Invert(x))
		var out []*Record
		for _, r := range all {
			if xs.Translate(r.Origin[g.XField()]) == idx {
				out = append(out, r)
			}
		}
		return out
	}

	best := math.Inf(1)
	var out []*Record
	for _, r := range all {
		if math.IsNaN(r.X) {
			continue
		}
		d := math.Abs(r.X - x)
		switch {
		case d < best-1e-12:
			best = d
			out = []*Record{r}
		case math.Abs(d-best) <= 1e-12:
			out = append(out, r)
		}
	}
	return out
}

// NearestRecord returns the record among recs closest to the unit point u,
// measured on both axes.
func NearestRecord(recs []*Record, u coord.Point) *Record {
	var best *Record
	bestD := math.Inf(1)
	for _, r := range recs {
		if math.IsNaN(r.X) || math.IsNaN(r.Y) {
			continue
		}
		if d := math.Hypot(r.X-u.X, r.Y-u.Y); d < bestD {
			best, bestD = r, d
		}
	}
	return best
}
