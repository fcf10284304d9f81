package geometry

import (
	"math"
	"sort"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// Line connects the records of each group in x order. Under polar
// coordinates the path is closed, which draws radar lines.
type Line struct {
	Base
}

func NewLine(opts Options) *Line {
	return &Line{Base: newBase(KindLine, opts, drawLine)}
}

// Area fills between each group's line and its base.
type Area struct {
	Base
}

func NewArea(opts Options) *Area {
	return &Area{Base: newBase(KindArea, opts, drawArea)}
}

// visible returns the mappable records of group sorted by x.
func visible(group []*Record) []*Record {
	out := make([]*Record, 0, len(group))
	for _, r := range group {
		if math.IsNaN(r.X) || math.IsNaN(r.Y) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

func drawLine(b *Base, group []*Record) []*Element {
	recs := visible(group)
	if len(recs) == 0 {
		return nil
	}
	pts := make([]coord.Point, 0, len(recs)+1)
	for _, r := range recs {
		pts = append(pts, r.Point)
	}
	if b.coord.IsPolar() && len(pts) > 2 {
		pts = append(pts, pts[0])
	}
	width := b.opts.Size
	if width <= 0 {
		width = b.theme().Geometry.LineWidth
	}
	a := b.attrs(surface.Attrs{Stroke: recs[0].Color, LineWidth: width})
	return []*Element{b.addElement(surface.NewPolyline(pts, a), recs...)}
}

func drawArea(b *Base, group []*Record) []*Element {
	recs := visible(group)
	if len(recs) == 0 {
		return nil
	}
	polar := b.coord.IsPolar() && len(recs) > 2
	top := make([]coord.Point, 0, len(recs)+1)
	bottom := make([]coord.Point, 0, len(recs)+1)
	for _, r := range recs {
		top = append(top, r.Point)
		y0 := r.Y0
		if math.IsNaN(y0) {
			y0 = 0
		}
		bottom = append(bottom, b.coord.Convert(coord.Point{X: r.X, Y: y0}))
	}
	if polar {
		top = append(top, top[0])
		bottom = append(bottom, bottom[0])
	}
	pts := top
	for i := len(bottom) - 1; i >= 0; i-- {
		pts = append(pts, bottom[i])
	}
	a := b.attrs(surface.Attrs{
		Fill:        recs[0].Color,
		FillOpacity: b.theme().Geometry.AreaOpacity,
	})
	return []*Element{b.addElement(surface.NewPolygon(pts, a), recs...)}
}
