package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

const fadeInCSS = `
    @keyframes fade-in { from { opacity: 0; } to { opacity: 1; } }
    .animate-in { animation: fade-in 0.6s ease-out both; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title     string
	noAnimate bool
	clips     int
}

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithoutAnimation drops the fade-in of animated groups.
func WithoutAnimation() SVGOption { return func(r *svgRenderer) { r.noAnimate = true } }

// SVG renders the scene as a standalone SVG document.
func SVG(c *surface.Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := int(math.Ceil(c.Width)), int(math.Ceil(c.Height))
	var buf bytes.Buffer
	s := svg.New(&buf)
	s.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.title != "" {
		s.Title(r.title)
	}
	if !r.noAnimate && hasAnimated(c.Root()) {
		s.Style("text/css", fadeInCSS)
	}
	if c.Background != "" {
		s.Rect(0, 0, w, h, attr("fill", c.Background), `class="background"`)
	}
	r.children(s, c.Root())
	s.End()
	return buf.Bytes()
}

func (r *svgRenderer) children(s *svg.SVG, g *surface.Group) {
	for _, e := range g.Children() {
		if !e.IsVisible() {
			continue
		}
		switch e := e.(type) {
		case *surface.Group:
			r.group(s, e)
		case *surface.Shape:
			r.shape(s, e)
		}
	}
}

func (r *svgRenderer) group(s *svg.SVG, g *surface.Group) {
	var attrs []string
	if g.Name != "" {
		attrs = append(attrs, attr("data-name", g.Name))
	}
	if g.Animate && !r.noAnimate {
		attrs = append(attrs, `class="animate-in"`)
	}
	if g.Clip != nil {
		id := fmt.Sprintf("clip%d", r.clips)
		r.clips++
		s.ClipPath(attr("id", id))
		x, y, w, h := rect(*g.Clip)
		s.Rect(x, y, w, h)
		s.ClipEnd()
		attrs = append(attrs, fmt.Sprintf(`clip-path="url(#%s)"`, id))
	}
	s.Group(attrs...)
	r.children(s, g)
	s.Gend()
}

func (r *svgRenderer) shape(s *svg.SVG, sh *surface.Shape) {
	attrs := paintAttrs(sh)
	switch sh.Kind {
	case surface.KindRect:
		x, y, w, h := rect(sh.BBox())
		s.Rect(x, y, w, h, attrs...)
	case surface.KindCircle:
		s.Circle(round(sh.X), round(sh.Y), round(sh.R), attrs...)
	case surface.KindLine:
		if len(sh.Points) < 2 {
			return
		}
		a, b := sh.Points[0], sh.Points[1]
		s.Line(round(a.X), round(a.Y), round(b.X), round(b.Y), attrs...)
	case surface.KindPolyline:
		xs, ys := points(sh.Points)
		s.Polyline(xs, ys, attrs...)
	case surface.KindPolygon:
		xs, ys := points(sh.Points)
		s.Polygon(xs, ys, attrs...)
	case surface.KindText:
		s.Text(round(sh.X), round(sh.Y), sh.Text, attrs...)
	}
}

// paintAttrs returns the SVG presentation attributes of sh.
func paintAttrs(sh *surface.Shape) []string {
	a := sh.Attrs
	var out []string
	if sh.Name != "" {
		out = append(out, attr("class", sh.Name))
	}

	fill := a.Fill
	if fill == "" {
		fill = "none"
		if sh.Kind == surface.KindText {
			fill = "#000000"
		}
	}
	out = append(out, attr("fill", fill))
	if a.Stroke != "" {
		out = append(out, attr("stroke", a.Stroke))
		lw := a.LineWidth
		if lw <= 0 {
			lw = 1
		}
		out = append(out, attr("stroke-width", num(lw)))
		if len(a.Dash) > 0 {
			dash := make([]string, len(a.Dash))
			for i, d := range a.Dash {
				dash[i] = num(d)
			}
			out = append(out, attr("stroke-dasharray", strings.Join(dash, ",")))
		}
	}
	if a.Opacity > 0 && a.Opacity < 1 {
		out = append(out, attr("opacity", num(a.Opacity)))
	}
	if a.FillOpacity > 0 && a.FillOpacity < 1 {
		out = append(out, attr("fill-opacity", num(a.FillOpacity)))
	}

	if sh.Kind == surface.KindText {
		size := a.FontSize
		if size <= 0 {
			size = 12
		}
		out = append(out, attr("font-size", num(size)))
		if a.FontFamily != "" {
			out = append(out, attr("font-family", a.FontFamily))
		}
		if a.FontWeight != "" {
			out = append(out, attr("font-weight", a.FontWeight))
		}
		if a.TextAnchor != "" {
			out = append(out, attr("text-anchor", a.TextAnchor))
		}
		switch a.TextBaseline {
		case "top":
			out = append(out, `dominant-baseline="hanging"`)
		case "middle":
			out = append(out, `dominant-baseline="middle"`)
		}
	}
	return out
}

func hasAnimated(g *surface.Group) bool {
	found := false
	g.Walk(func(e surface.Element, _ int) bool {
		if cg, ok := e.(*surface.Group); ok && cg.Animate && cg.IsVisible() {
			found = true
		}
		return !found
	})
	return found
}

func attr(name, value string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(value))
	return name + `="` + b.String() + `"`
}

func num(f float64) string { return fmt.Sprintf("%.4g", f) }

func round(f float64) int { return int(math.Round(f)) }

func rect(b coord.BBox) (x, y, w, h int) {
	return round(b.MinX()), round(b.MinY()), round(b.Width), round(b.Height)
}

func points(pts []coord.Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = round(p.X), round(p.Y)
	}
	return xs, ys
}
