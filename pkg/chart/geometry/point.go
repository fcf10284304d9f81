package geometry

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// Point draws one circle per record.
type Point struct {
	Base
}

func NewPoint(opts Options) *Point {
	return &Point{Base: newBase(KindPoint, opts, drawPoint)}
}

func drawPoint(b *Base, group []*Record) []*Element {
	t := b.theme()
	r0 := b.opts.Size
	if r0 <= 0 {
		r0 = t.Geometry.PointRadius
	}
	els := make([]*Element, 0, len(group))
	for _, r := range group {
		if math.IsNaN(r.Point.X) || math.IsNaN(r.Point.Y) {
			continue
		}
		a := b.attrs(surface.Attrs{Fill: r.Color, Stroke: t.Geometry.Stroke, LineWidth: 1})
		els = append(els, b.addElement(surface.NewCircle(r.Point.X, r.Point.Y, r0, a), r))
	}
	return els
}
