package viewtree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/render"
)

// Options configures the diagram.
type Options struct {
	// Detailed adds state, coordinate and element counts to the labels.
	// When false, views show only their ID.
	Detailed bool
}

// ToDOT converts the view tree rooted at c to Graphviz DOT.
func ToDOT(c *view.Chart, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(v *view.View)
	walk = func(v *view.View) {
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID(), strings.Join(viewAttrs(v, opts.Detailed), ", "))
		for i, g := range v.Geometries() {
			id := fmt.Sprintf("%s/%s#%d", v.ID(), g.Type(), i)
			label := g.Type()
			if opts.Detailed {
				label += fmt.Sprintf("\nelements: %d", len(g.Elements()))
			}
			fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=filled, fillcolor=\"#e8f0fe\"];\n", id, label)
			edges = append(edges, fmt.Sprintf("  %q -> %q [arrowhead=none];\n", v.ID(), id))
		}
		for _, child := range v.Views() {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", v.ID(), child.ID()))
			walk(child)
		}
	}
	walk(c.View)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func viewAttrs(v *view.View, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", viewLabel(v, detailed))}
	if !v.Visible() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func viewLabel(v *view.View, detailed bool) string {
	if !detailed {
		return v.ID()
	}
	parts := []string{"state: " + string(v.State())}
	if co := v.GetCoordinate(); co != nil {
		kind := string(co.Type())
		if co.IsTransposed() {
			kind += " (transposed)"
		}
		parts = append(parts, "coord: "+kind)
	}
	if b := v.CoordinateBBox(); b.Width > 0 || b.Height > 0 {
		parts = append(parts, fmt.Sprintf("plot: %.0fx%.0f@%.0f,%.0f", b.Width, b.Height, b.X, b.Y))
	}
	if n := len(v.GetData()); n > 0 {
		parts = append(parts, fmt.Sprintf("rows: %d", n))
	}
	return v.ID() + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// sized in user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
