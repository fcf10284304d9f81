package recipe

import (
	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/facet"
	"github.com/matzehuels/stackchart/pkg/chart/geometry"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/view"
)

func init() {
	xy := []string{ChannelX, ChannelY}
	Register("column", "vertical bars, one per x value", xy, column)
	Register("bar", "horizontal bars, one per x value", xy, bar)
	Register("line", "lines over x with a point per row, one line per color", xy, line)
	Register("area", "filled areas over x, one per color", xy, area)
	Register("scatter", "a point per row", xy, scatter)
	Register("pie", "slices sized by y, one per x value", xy, pie)
	Register("rose", "polar bars, one per x value", xy, rose)
	Register("radar-line", "closed lines around a polar x axis, one per color", xy, radarLine)
	Register("facet-column", "a column chart per value of the facet field", []string{ChannelX, ChannelY, ChannelFacet}, facetColumn)
}

func position(f Fields) string { return f.X + "*" + f.Y }

func column(c *view.Chart, f Fields) error {
	_, err := c.AddGeometry(geometry.KindInterval, geometry.Options{
		Position: position(f),
		Color:    f.Color,
		Adjust:   f.adjust(),
	})
	return err
}

func bar(c *view.Chart, f Fields) error {
	c.Coordinate().Transpose()
	return column(c, f)
}

func line(c *view.Chart, f Fields) error {
	if _, err := c.AddGeometry(geometry.KindLine, geometry.Options{Position: position(f), Color: f.Color}); err != nil {
		return err
	}
	if _, err := c.AddGeometry(geometry.KindPoint, geometry.Options{Position: position(f), Color: f.Color, HideTooltip: true}); err != nil {
		return err
	}
	c.Tooltip(view.TooltipOption{Shared: true, Crosshairs: "x"})
	return nil
}

func area(c *view.Chart, f Fields) error {
	if _, err := c.AddGeometry(geometry.KindArea, geometry.Options{Position: position(f), Color: f.Color, Adjust: f.adjust()}); err != nil {
		return err
	}
	c.Tooltip(view.TooltipOption{Shared: true, Crosshairs: "x"})
	return nil
}

func scatter(c *view.Chart, f Fields) error {
	_, err := c.AddGeometry(geometry.KindPoint, geometry.Options{Position: position(f), Color: f.Color})
	c.Tooltip(view.TooltipOption{Crosshairs: "xy"})
	return err
}

func pie(c *view.Chart, f Fields) error {
	c.Coordinate(coord.Option{Type: coord.TypeTheta, Polar: coord.PolarConfig{Radius: 0.8}})
	c.DisableAxes()
	_, err := c.AddGeometry(geometry.KindInterval, geometry.Options{
		Position: "1*" + f.Y,
		Color:    f.X,
		Adjust:   []string{geometry.AdjustStack},
	})
	return err
}

func rose(c *view.Chart, f Fields) error {
	c.Coordinate(coord.Option{Type: coord.TypePolar, Polar: coord.PolarConfig{InnerRadius: 0.1}})
	c.Scale(f.Y, scale.Def{Min: scale.Float(0)})
	color := f.Color
	if color == "" {
		color = f.X
	}
	_, err := c.AddGeometry(geometry.KindInterval, geometry.Options{Position: position(f), Color: color, Adjust: f.adjust()})
	return err
}

func radarLine(c *view.Chart, f Fields) error {
	c.Coordinate(coord.Option{Type: coord.TypePolar, Polar: coord.PolarConfig{Radius: 0.8}})
	c.Scale(f.Y, scale.Def{Min: scale.Float(0)})
	if err := line(c, f); err != nil {
		return err
	}
	c.Axis(f.X, view.AxisOption{Grid: boolPtr(true)})
	return nil
}

func facetColumn(c *view.Chart, f Fields) error {
	var err error
	facetErr := c.Facet(facet.KindRect, facet.Config{
		Fields:  []string{f.Facet},
		Spacing: 0.04,
		EachView: func(v *view.View, _ *facet.Data) {
			if _, e := v.AddGeometry(geometry.KindInterval, geometry.Options{Position: position(f), Color: f.Color, Adjust: f.adjust()}); e != nil && err == nil {
				err = e
			}
		},
	})
	if facetErr != nil {
		return facetErr
	}
	return err
}

func boolPtr(b bool) *bool { return &b }
