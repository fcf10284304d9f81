package view

import (
	"maps"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// FilterFunc keeps a row when it returns true for the row's field value.
type FilterFunc func(value any, row data.Datum) bool

// Region is a fractional box within the parent's coordinate box, both
// corners in [0,1] from the top left.
type Region struct {
	Start coord.Point
	End   coord.Point
}

// FullRegion covers the whole parent box.
var FullRegion = Region{Start: coord.Point{X: 0, Y: 0}, End: coord.Point{X: 1, Y: 1}}

// Axis positions.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
	PositionLeft   = "left"
	PositionRight  = "right"
)

// AxisOption configures the axis of one field.
type AxisOption struct {
	Disabled bool
	// Position defaults to bottom for x and left for y.
	Position string
	Title    string
	// Grid draws grid lines; nil draws them for y axes only.
	Grid      *bool
	HideLabel bool
}

// LegendOption configures the legend of one field.
type LegendOption struct {
	Disabled bool
	// Position defaults to bottom.
	Position string
	Title    string
}

// TooltipOption configures the tooltip of a view.
type TooltipOption struct {
	Disabled bool
	// Shared lists every geometry's record at the pointer's x; otherwise
	// only the item nearest in y is shown.
	Shared bool
	// Crosshairs is "", "x", "y" or "xy".
	Crosshairs  string
	HideMarkers bool
}

// Annotation kinds.
const (
	AnnotationText   = "text"
	AnnotationLine   = "line"
	AnnotationRegion = "region"
)

// Annotation is a guide anchored in data space. Positions are [x, y] data
// values; "min", "max" and "median" resolve against the view's scales.
type Annotation struct {
	Type    string
	Start   []any
	End     []any
	Content string
	Style   surface.Attrs
	// Top draws the annotation in the foreground layer.
	Top bool
}

// Options is the configuration of a view.
type Options struct {
	Data        []data.Datum
	Filters     map[string]FilterFunc
	Scales      map[string]scale.Def
	Axes        map[string]AxisOption
	Legends     map[string]LegendOption
	Tooltip     TooltipOption
	Coordinate  coord.Option
	Annotations []Annotation
	Theme       *theme.Theme
	Animate     bool
	// Padding is [top, right, bottom, left]; nil computes it from the
	// components.
	Padding       []float64
	AppendPadding []float64
	Region        Region
	LimitInPlot   bool
	DisableAxes   bool
	DisableLegend bool
	// Custom holds values set with [View.Option].
	Custom map[string]any
}

// ViewConfig configures a child view.
type ViewConfig struct {
	ID            string
	Region        Region
	Padding       []float64
	AppendPadding []float64
	Theme         *theme.Theme
	Visible       *bool
}

func (o Options) clone() Options {
	c := o
	c.Data = data.Clone(o.Data)
	c.Filters = maps.Clone(o.Filters)
	c.Scales = make(map[string]scale.Def, len(o.Scales))
	for k, d := range o.Scales {
		c.Scales[k] = d.Clone()
	}
	c.Axes = maps.Clone(o.Axes)
	c.Legends = maps.Clone(o.Legends)
	c.Coordinate = o.Coordinate.Clone()
	c.Annotations = append([]Annotation(nil), o.Annotations...)
	c.Padding = append([]float64(nil), o.Padding...)
	c.AppendPadding = append([]float64(nil), o.AppendPadding...)
	c.Custom = maps.Clone(o.Custom)
	return c
}

// expandPadding turns 1, 2 or 4 values into [top, right, bottom, left].
func expandPadding(p []float64) [4]float64 {
	switch len(p) {
	case 0:
		return [4]float64{}
	case 1:
		return [4]float64{p[0], p[0], p[0], p[0]}
	case 2, 3:
		return [4]float64{p[0], p[1], p[0], p[1]}
	}
	return [4]float64{p[0], p[1], p[2], p[3]}
}
