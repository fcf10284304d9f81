package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/render/sink"
	"github.com/matzehuels/stackchart/pkg/render/viewtree"
)

// Render exports a built chart in every format of opts.Formats.
func Render(ctx context.Context, c *view.Chart, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var b []byte
		var err error

		switch format {
		case FormatSVG:
			b = sink.SVG(c.Canvas(), svgOpts...)
		case FormatPNG:
			b, err = sink.PNG(c.Canvas(), sink.WithScale(opts.Scale))
		case FormatPDF:
			b, err = sink.PDF(ctx, c.Canvas(), svgOpts...)
		case FormatJSON:
			b, err = sink.JSON(c.Canvas())
		case FormatDOT:
			b = []byte(viewtree.ToDOT(c, viewtree.Options{Detailed: true}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = b
	}
	return artifacts, nil
}
