package sink

import (
	"context"

	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/render"
)

// PDF renders the scene as PDF via SVG conversion. Animation is dropped.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func PDF(ctx context.Context, c *surface.Canvas, opts ...SVGOption) ([]byte, error) {
	svg := SVG(c, append(opts, WithoutAnimation())...)
	return render.ToPDF(ctx, svg)
}
