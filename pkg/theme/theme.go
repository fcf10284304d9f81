// Package theme holds the visual defaults shared by views, geometries and
// components: the categorical palette, column width ratios, axis, legend and
// tooltip styling.
//
// Two built-in themes are registered, "light" and "dark". Additional themes
// are loaded from YAML files with [Load]; any field left out of the file keeps
// the value of the theme named in its "base" key (light by default).
//
//	t, err := theme.Load("brand.yaml")
//	if err != nil {
//	    return err
//	}
//	v.Theme(t)
package theme

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Theme is a complete set of visual defaults.
type Theme struct {
	Name             string   `yaml:"name"`
	Background       string   `yaml:"background"`
	Colors           []string `yaml:"colors"`
	DefaultColor     string   `yaml:"defaultColor"`
	FontFamily       string   `yaml:"fontFamily"`
	FontSize         float64  `yaml:"fontSize"`
	Padding          float64  `yaml:"padding"`
	MaxColumnWidth   float64  `yaml:"maxColumnWidth"`
	MinColumnWidth   float64  `yaml:"minColumnWidth"`
	ColumnWidth      float64  `yaml:"columnWidthRatio"`
	RoseWidth        float64  `yaml:"roseWidthRatio"`
	MultiplePieWidth float64  `yaml:"multiplePieWidthRatio"`

	Axis     AxisStyle     `yaml:"axis"`
	Legend   LegendStyle   `yaml:"legend"`
	Tooltip  TooltipStyle  `yaml:"tooltip"`
	Geometry GeometryStyle `yaml:"geometry"`
}

// AxisStyle styles axis lines, ticks, labels and grid lines.
type AxisStyle struct {
	LineColor  string  `yaml:"lineColor"`
	TickLength float64 `yaml:"tickLength"`
	LabelColor string  `yaml:"labelColor"`
	LabelSize  float64 `yaml:"labelSize"`
	LabelGap   float64 `yaml:"labelGap"`
	GridColor  string  `yaml:"gridColor"`
	TitleColor string  `yaml:"titleColor"`
	TitleSize  float64 `yaml:"titleSize"`
}

// LegendStyle styles category legends.
type LegendStyle struct {
	MarkerRadius float64 `yaml:"markerRadius"`
	ItemSpacing  float64 `yaml:"itemSpacing"`
	TextColor    string  `yaml:"textColor"`
	TextSize     float64 `yaml:"textSize"`
	Margin       float64 `yaml:"margin"`
	// UncheckedColor fills markers of items filtered out by legend-filter.
	UncheckedColor string `yaml:"uncheckedColor"`
}

// TooltipStyle styles the tooltip box, crosshairs and markers.
type TooltipStyle struct {
	Background     string  `yaml:"background"`
	BorderColor    string  `yaml:"borderColor"`
	TextColor      string  `yaml:"textColor"`
	TextSize       float64 `yaml:"textSize"`
	Padding        float64 `yaml:"padding"`
	Offset         float64 `yaml:"offset"`
	CrosshairColor string  `yaml:"crosshairColor"`
	MarkerRadius   float64 `yaml:"markerRadius"`
}

// GeometryStyle styles geometry shapes.
type GeometryStyle struct {
	LineWidth    float64 `yaml:"lineWidth"`
	PointRadius  float64 `yaml:"pointRadius"`
	AreaOpacity  float64 `yaml:"areaOpacity"`
	Stroke       string  `yaml:"stroke"`
	ActiveStroke string  `yaml:"activeStroke"`
}

// Color returns the palette color for the i-th category, cycling.
func (t *Theme) Color(i int) string {
	if len(t.Colors) == 0 {
		return t.DefaultColor
	}
	if i < 0 {
		i = -i
	}
	return t.Colors[i%len(t.Colors)]
}

// Clone returns a deep copy of t.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Colors = append([]string(nil), t.Colors...)
	return &c
}

var builtin = map[string]*Theme{
	"light": Light(),
	"dark":  Dark(),
}

// Light returns the default theme.
func Light() *Theme {
	return &Theme{
		Name:             "light",
		Background:       "#ffffff",
		Colors:           []string{"#5B8FF9", "#5AD8A6", "#5D7092", "#F6BD16", "#E8684A", "#6DC8EC", "#9270CA", "#FF9D4D", "#269A99", "#FF99C3"},
		DefaultColor:     "#5B8FF9",
		FontFamily:       "Helvetica, Arial, sans-serif",
		FontSize:         12,
		Padding:          8,
		MaxColumnWidth:   0,
		MinColumnWidth:   0,
		ColumnWidth:      1.0 / 2,
		RoseWidth:        0.9999999,
		MultiplePieWidth: 1 / 1.3,
		Axis: AxisStyle{
			LineColor:  "#BFBFBF",
			TickLength: 4,
			LabelColor: "#595959",
			LabelSize:  12,
			LabelGap:   8,
			GridColor:  "#E9E9E9",
			TitleColor: "#595959",
			TitleSize:  12,
		},
		Legend: LegendStyle{
			MarkerRadius:   4,
			ItemSpacing:    16,
			TextColor:      "#595959",
			TextSize:       12,
			Margin:         8,
			UncheckedColor: "#D8D8D8",
		},
		Tooltip: TooltipStyle{
			Background:     "#ffffff",
			BorderColor:    "#D9D9D9",
			TextColor:      "#595959",
			TextSize:       12,
			Padding:        8,
			Offset:         10,
			CrosshairColor: "#BFBFBF",
			MarkerRadius:   4,
		},
		Geometry: GeometryStyle{
			LineWidth:    2,
			PointRadius:  3,
			AreaOpacity:  0.25,
			Stroke:       "#ffffff",
			ActiveStroke: "#000000",
		},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	t := Light()
	t.Name = "dark"
	t.Background = "#141414"
	t.Axis.LineColor = "#595959"
	t.Axis.LabelColor = "#A6A6A6"
	t.Axis.GridColor = "#262626"
	t.Axis.TitleColor = "#A6A6A6"
	t.Legend.TextColor = "#A6A6A6"
	t.Legend.UncheckedColor = "#434343"
	t.Tooltip.Background = "#1f1f1f"
	t.Tooltip.BorderColor = "#434343"
	t.Tooltip.TextColor = "#D9D9D9"
	t.Tooltip.CrosshairColor = "#595959"
	t.Geometry.Stroke = "#141414"
	t.Geometry.ActiveStroke = "#ffffff"
	return t
}

// Get returns a copy of the named built-in theme.
func Get(name string) (*Theme, error) {
	if name == "" {
		return Light(), nil
	}
	t, ok := builtin[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", name, Names())
	}
	return t.Clone(), nil
}

// Names lists the built-in themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the built-in theme with the given name, or loads it from a
// YAML file when name is a path to an existing file.
func Resolve(name string) (*Theme, error) {
	if _, ok := builtin[name]; ok || name == "" {
		return Get(name)
	}
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}
	return Get(name)
}

// Load reads a YAML theme file.
func Load(path string) (*Theme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read theme %s", path)
	}
	return Parse(b)
}

// Parse decodes a YAML theme. Unset fields inherit from the base theme.
func Parse(b []byte) (*Theme, error) {
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(b, &head); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme")
	}
	t, err := Get(head.Base)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme")
	}
	if len(t.Colors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "theme %q has an empty color palette", t.Name)
	}
	return t, nil
}
