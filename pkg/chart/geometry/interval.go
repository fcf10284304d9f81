package geometry

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// Interval draws bars, columns, rose petals and pie slices: one shape per
// record spanning from the y base (or its stack start) to its value.
type Interval struct {
	Base
}

func NewInterval(opts Options) *Interval {
	return &Interval{Base: newBase(KindInterval, opts, drawInterval)}
}

func drawInterval(b *Base, group []*Record) []*Element {
	els := make([]*Element, 0, len(group))
	for _, r := range group {
		if math.IsNaN(r.X) || math.IsNaN(r.Y) || math.IsNaN(r.Y0) {
			continue
		}
		x0, x1 := r.X-r.Size/2, r.X+r.Size/2
		pts := b.project([]coord.Point{
			{X: x0, Y: r.Y0},
			{X: x0, Y: r.Y},
			{X: x1, Y: r.Y},
			{X: x1, Y: r.Y0},
		}, true)
		a := b.attrs(surface.Attrs{Fill: r.Color})
		els = append(els, b.addElement(surface.NewPolygon(pts, a), r))
	}
	return els
}
