package sink

import (
	"bytes"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/stackchart/pkg/chart/surface"
)

// basicFontSize is the pixel height of the built-in bitmap face; text is
// scaled from it to the requested font size.
const basicFontSize = 13.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the pixel density (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// PNG rasterizes the scene. Text uses a fixed bitmap face scaled to each
// shape's font size, so font families and weights are not honored; convert
// the SVG with rsvg-convert when they matter.
func PNG(c *surface.Canvas, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	dc := gg.NewContext(int(c.Width*r.scale+0.5), int(c.Height*r.scale+0.5))
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(basicfont.Face7x13)
	if col, ok := parseColor(c.Background, 1); ok {
		dc.SetColor(col)
		dc.Clear()
	}
	r.children(dc, c.Root())

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) children(dc *gg.Context, g *surface.Group) {
	for _, e := range g.Children() {
		if !e.IsVisible() {
			continue
		}
		switch e := e.(type) {
		case *surface.Group:
			dc.Push()
			if e.Clip != nil {
				dc.DrawRectangle(e.Clip.X, e.Clip.Y, e.Clip.Width, e.Clip.Height)
				dc.Clip()
			}
			r.children(dc, e)
			dc.Pop()
		case *surface.Shape:
			r.shape(dc, e)
		}
	}
}

func (r *pngRenderer) shape(dc *gg.Context, sh *surface.Shape) {
	a := sh.Attrs
	if sh.Kind == surface.KindText {
		r.text(dc, sh)
		return
	}

	switch sh.Kind {
	case surface.KindRect:
		b := sh.BBox()
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	case surface.KindCircle:
		dc.DrawCircle(sh.X, sh.Y, sh.R)
	case surface.KindLine, surface.KindPolyline, surface.KindPolygon:
		if len(sh.Points) == 0 {
			return
		}
		dc.MoveTo(sh.Points[0].X, sh.Points[0].Y)
		for _, p := range sh.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if sh.Kind == surface.KindPolygon {
			dc.ClosePath()
		}
	}

	fill, hasFill := parseColor(a.Fill, opacity(a.Opacity, a.FillOpacity))
	stroke, hasStroke := parseColor(a.Stroke, opacity(a.Opacity, 1))
	if sh.Kind == surface.KindLine || sh.Kind == surface.KindPolyline {
		hasFill = false
	}
	if hasFill {
		dc.SetColor(fill)
		if hasStroke {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if hasStroke {
		lw := a.LineWidth
		if lw <= 0 {
			lw = 1
		}
		dc.SetLineWidth(lw)
		dc.SetDash(a.Dash...)
		dc.SetColor(stroke)
		dc.Stroke()
		dc.SetDash()
	}
	if !hasFill && !hasStroke {
		dc.ClearPath()
	}
}

func (r *pngRenderer) text(dc *gg.Context, sh *surface.Shape) {
	a := sh.Attrs
	col, ok := parseColor(a.Fill, opacity(a.Opacity, 1))
	if !ok {
		col, _ = parseColor("black", opacity(a.Opacity, 1))
	}
	ax := 0.0
	switch a.TextAnchor {
	case "middle":
		ax = 0.5
	case "end":
		ax = 1
	}
	ay := 0.0
	switch a.TextBaseline {
	case "top":
		ay = 1
	case "middle":
		ay = 0.5
	}
	size := a.FontSize
	if size <= 0 {
		size = 12
	}
	k := size / basicFontSize

	dc.Push()
	dc.ScaleAbout(k, k, sh.X, sh.Y)
	dc.SetColor(col)
	dc.DrawStringAnchored(sh.Text, sh.X, sh.Y, ax, ay)
	dc.Pop()
}

// opacity combines the shape opacity with a channel opacity; zero means
// unset.
func opacity(shape, channel float64) float64 {
	if shape <= 0 {
		shape = 1
	}
	if channel <= 0 {
		channel = 1
	}
	return shape * channel
}
