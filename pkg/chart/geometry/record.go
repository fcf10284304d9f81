package geometry

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/data"
)

// Record is one datum after grouping, adjustment and mapping.
//
// YStart and YEnd are data-space values: the stacked interval for stacked
// geometries, NaN and the raw value otherwise. X, Y and Y0 are unit-space
// positions filled in by Paint; Point is the pixel anchor used by tooltips
// and markers.
type Record struct {
	Origin data.Datum
	Group  int
	Color  string

	YStart float64
	YEnd   float64

	X, Y, Y0 float64
	Size     float64
	Point    coord.Point
}

// Element is a painted shape and the record(s) it represents.
type Element struct {
	Shape   *surface.Shape
	Records []*Record

	kind   string
	base   surface.Attrs
	states map[string]bool
	theme  themeColors
}

type themeColors struct {
	activeStroke string
}

// Element states.
const (
	StateActive   = "active"
	StateInactive = "inactive"
	StateSelected = "selected"
)

// Data returns the origin datum of the element's first record.
func (e *Element) Data() data.Datum {
	if len(e.Records) == 0 {
		return nil
	}
	return e.Records[0].Origin
}

// HasState reports whether state is on.
func (e *Element) HasState(state string) bool { return e.states[state] }

// SetState turns state on or off and restyles the shape.
func (e *Element) SetState(state string, on bool) {
	if e.states == nil {
		e.states = map[string]bool{}
	}
	e.states[state] = on
	a := e.base
	if e.states[StateActive] || e.states[StateSelected] {
		if e.kind == KindLine {
			a.LineWidth = math.Max(a.LineWidth, 1) + 1
		} else {
			a.Stroke = e.theme.activeStroke
			a.LineWidth = math.Max(a.LineWidth, 1)
		}
	}
	if e.states[StateInactive] {
		a.Opacity = 0.3
	}
	e.Shape.Attrs = a
}
