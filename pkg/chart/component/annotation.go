package component

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// Annotation draws the guides configured with [view.View.Annotation].
type Annotation struct {
	base
	back, front *surface.Group
}

// NewAnnotation returns the annotation controller of v.
func NewAnnotation(v *view.View) *Annotation {
	return &Annotation{base: base{view: v}}
}

func (a *Annotation) Name() string { return NameAnnotation }

func (a *Annotation) Init() {
	a.Clear()
	if len(a.view.Options().Annotations) == 0 {
		return
	}
	a.back = a.view.BackgroundGroup().AddGroup("annotation")
	a.front = a.view.ForegroundGroup().AddGroup("annotation")
	a.add(view.Component{ID: a.view.ID() + "-annotation", Type: NameAnnotation, Group: a.back})
	a.add(view.Component{ID: a.view.ID() + "-annotation-top", Type: NameAnnotation, Group: a.front})
}

func (a *Annotation) Update() { a.Init() }

func (a *Annotation) Clear() {
	a.base.Clear()
	a.back, a.front = nil, nil
}

func (a *Annotation) Destroy() { a.Clear() }

func (a *Annotation) Layout() {
	for i := range a.components {
		a.components[i].BBox = a.view.CoordinateBBox()
	}
}

func (a *Annotation) Render() {
	if a.back == nil {
		return
	}
	a.back.Clear()
	a.front.Clear()
	t := a.view.Theme()
	for i := range a.view.Options().Annotations {
		ann := a.view.Options().Annotations[i]
		g := a.back
		if ann.Top {
			g = a.front
		}
		if s := a.shape(ann, t); s != nil {
			g.AddShape(s.Named("annotation-"+ann.Type, "annotation").WithOrigin(ann))
		}
	}
}

func (a *Annotation) shape(ann view.Annotation, t *theme.Theme) *surface.Shape {
	start, ok := a.position(ann.Start)
	if !ok {
		return nil
	}
	switch ann.Type {
	case view.AnnotationText:
		def := surface.Attrs{
			Fill:         t.Axis.LabelColor,
			FontSize:     t.FontSize,
			FontFamily:   t.FontFamily,
			TextAnchor:   "middle",
			TextBaseline: "middle",
		}
		return surface.NewText(start.X, start.Y, ann.Content, def.Merge(ann.Style))
	case view.AnnotationLine:
		end, ok := a.position(ann.End)
		if !ok {
			return nil
		}
		def := surface.Attrs{Stroke: t.Axis.LineColor, LineWidth: 1, Dash: []float64{4, 4}}
		return surface.NewLine(start, end, def.Merge(ann.Style))
	case view.AnnotationRegion:
		end, ok := a.position(ann.End)
		if !ok {
			return nil
		}
		b := coord.NewBBox(start, end)
		def := surface.Attrs{Fill: "#000000", FillOpacity: 0.06}
		return surface.NewRect(b.X, b.Y, b.Width, b.Height, def.Merge(ann.Style))
	}
	return nil
}

// position resolves an [x, y] data position to pixels through the view's
// x scale, its first y scale and its coordinate.
func (a *Annotation) position(vals []any) (coord.Point, bool) {
	v := a.view
	c := v.GetCoordinate()
	xs, ys := v.GetXScale(), v.GetYScales()
	if len(vals) < 2 || c == nil || xs == nil || len(ys) == 0 {
		return coord.Point{}, false
	}
	u := coord.Point{X: ResolvePosition(xs, vals[0]), Y: ResolvePosition(ys[0], vals[1])}
	if math.IsNaN(u.X) || math.IsNaN(u.Y) {
		return coord.Point{}, false
	}
	return c.Convert(u), true
}

// ResolvePosition maps an annotation position value through s. The
// keywords "min", "max" and "median" select the domain minimum, maximum
// and midpoint; for category scales the first, last and middle value.
// Percentages such as "50%" are unit positions in the coordinate and
// bypass s.
func ResolvePosition(s *scale.Scale, v any) float64 {
	key, _ := v.(string)
	if pct, ok := strings.CutSuffix(key, "%"); ok {
		if f, err := strconv.ParseFloat(pct, 64); err == nil {
			return f / 100
		}
	}
	if key != "min" && key != "max" && key != "median" {
		return s.Map(v)
	}
	if s.IsCategory() {
		n := len(s.Values)
		if n == 0 {
			return math.NaN()
		}
		switch key {
		case "min":
			return s.Map(s.Values[0])
		case "max":
			return s.Map(s.Values[n-1])
		}
		return s.Map(s.Values[n/2])
	}
	switch key {
	case "min":
		return s.Map(s.Min)
	case "max":
		return s.Map(s.Max)
	}
	return s.Map((s.Min + s.Max) / 2)
}
