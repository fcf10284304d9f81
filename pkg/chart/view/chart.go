package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// Default chart size.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// DefaultInteractions are attached to every chart unless
// ChartOptions.Interactions says otherwise.
var DefaultInteractions = []string{"tooltip", "legend-filter", "element-active"}

// ChartOptions configures a chart.
type ChartOptions struct {
	Width         float64
	Height        float64
	Padding       []float64
	AppendPadding []float64
	Theme         *theme.Theme
	LimitInPlot   bool
	// Animate fades geometries in on first paint.
	Animate bool
	// Interactions attached to the root view; nil means DefaultInteractions.
	// Unregistered names are skipped.
	Interactions []string
	Logger       *log.Logger
}

// Chart is the root view of a tree. It owns the canvas and the scale pool.
type Chart struct {
	*View

	canvas *surface.Canvas
	logger *log.Logger
	ids    int
}

// NewChart creates an empty chart.
func NewChart(opts ChartOptions) *Chart {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	c := &Chart{
		canvas: surface.NewCanvas(opts.Width, opts.Height),
		logger: opts.Logger,
	}
	root := newView(c, nil, Options{
		Theme:         opts.Theme,
		Animate:       opts.Animate,
		LimitInPlot:   opts.LimitInPlot,
		Padding:       opts.Padding,
		AppendPadding: opts.AppendPadding,
	}, ViewConfig{})
	root.pool = scale.NewPool()
	c.View = root
	c.canvas.Background = root.Theme().Background

	names := opts.Interactions
	if names == nil {
		names = DefaultInteractions
	}
	for _, name := range names {
		if err := root.Interaction(name); err != nil {
			c.logger.Debug("skipping interaction", "name", name, "err", err)
		}
	}
	return c
}

func (c *Chart) nextID() string {
	id := fmt.Sprintf("view%d", c.ids)
	c.ids++
	return id
}

// Canvas returns the scene the chart draws on.
func (c *Chart) Canvas() *surface.Canvas { return c.canvas }

// Pool returns the chart's scale pool.
func (c *Chart) Pool() *scale.Pool { return c.View.pool }

// SetTheme sets the chart theme and canvas background.
func (c *Chart) SetTheme(t *theme.Theme) *Chart {
	c.View.SetTheme(t)
	c.canvas.Background = c.Theme().Background
	return c
}

// ChangeSize resizes the canvas and re-renders when the chart has been
// rendered before.
func (c *Chart) ChangeSize(width, height float64) {
	c.canvas.Width, c.canvas.Height = width, height
	c.calculateViewBBox()
	if c.state == StateRendered {
		c.Render(true)
	}
}

// Destroy destroys the view tree and the canvas.
func (c *Chart) Destroy() {
	c.View.Destroy()
	c.canvas.Destroy()
}
