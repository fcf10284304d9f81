package pipeline

import (
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/recipe"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// Build configures a chart from rows through the recipe named in opts and
// renders its scene. The caller owns the returned chart.
func Build(rows []data.Datum, opts Options) (*view.Chart, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	rc, err := recipe.Get(opts.Recipe)
	if err != nil {
		return nil, err
	}
	th, err := theme.Resolve(opts.Theme)
	if err != nil {
		return nil, err
	}

	c := chart.New(chart.Options{
		Width:   opts.Width,
		Height:  opts.Height,
		Theme:   th,
		Animate: opts.Animate,
		Logger:  opts.Logger,
	})
	if err := rc.Build(c, rows, opts.Fields); err != nil {
		c.Destroy()
		return nil, err
	}
	c.Render(false)
	return c, nil
}
