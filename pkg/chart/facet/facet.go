// Package facet splits a view's data into panels, one child view per value
// (or pair of values) of the facet fields.
//
// Two kinds are registered with the view package on import:
//
//   - "rect" lays panels out in a grid, columns by Fields[0] and rows by
//     Fields[1]. Either field may be empty.
//   - "list" wraps the values of Fields[0] into Cols columns.
//
// Every panel is created with [view.View.CreateView] and receives its slice
// of the data. [Config.EachView] then adds geometries to it. Afterwards every
// scale field of the panel's geometries joins its sync group, so all panels
// share domains, and axes are kept only on the outer panels.
//
//	err := chart.Facet(facet.KindRect, facet.Config{
//	    Fields: []string{"genre", "year"},
//	    EachView: func(v *view.View, d *facet.Data) {
//	        v.AddGeometry(geometry.KindInterval, geometry.Options{Position: "platform*sold"})
//	    },
//	})
package facet

import (
	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
	"github.com/matzehuels/stackchart/pkg/chart/surface"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

const (
	KindRect = "rect"
	KindList = "list"
)

// titleGap is the room reserved beside a panel for its title, on top of
// the title's font size.
const titleGap = 4

func init() {
	view.RegisterFacet(KindRect, factory(KindRect))
	view.RegisterFacet(KindList, factory(KindList))
}

func factory(kind string) view.FacetFactory {
	return func(v *view.View, cfg any) (view.Facet, error) {
		f, err := New(kind, v, cfg)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// Config configures a facet.
type Config struct {
	// Fields are [column, row] for rect and [field] for list.
	Fields []string
	// Cols is the column count of a list facet; 0 keeps every panel in
	// one row.
	Cols int
	// Spacing is the gap between panels as a fraction of the view.
	Spacing float64
	// Padding applies to every panel; nil sizes it from the axes.
	Padding   []float64
	HideTitle bool
	// EachView configures a freshly created panel.
	EachView func(v *view.View, d *Data)
}

// Data describes one panel.
type Data struct {
	Type     string
	ColField string
	RowField string
	ColValue any
	RowValue any
	ColIndex int
	RowIndex int
	ColCount int
	RowCount int
	// Rows is the panel's slice of the facet view's filtered data.
	Rows   []data.Datum
	Region view.Region
	View   *view.View
}

// Facet creates and owns the panels of a view.
type Facet struct {
	kind   string
	view   *view.View
	cfg    Config
	panels []*Data
}

// New returns a facet of kind over v. cfg must be a [Config] or *Config.
func New(kind string, v *view.View, cfg any) (*Facet, error) {
	var c Config
	switch x := cfg.(type) {
	case Config:
		c = x
	case *Config:
		if x == nil {
			return nil, errors.New(errors.ErrCodeInvalidFacet, "facet '%s' needs a configuration", kind)
		}
		c = *x
	default:
		return nil, errors.New(errors.ErrCodeInvalidFacet, "facet '%s' expects facet.Config, got %T", kind, cfg)
	}
	if err := validate(kind, c); err != nil {
		return nil, err
	}
	return &Facet{kind: kind, view: v, cfg: c}, nil
}

func validate(kind string, c Config) error {
	if field(c.Fields, 0) == "" && field(c.Fields, 1) == "" {
		return errors.New(errors.ErrCodeInvalidFacet, "facet '%s' needs at least one field", kind)
	}
	if kind == KindList && field(c.Fields, 0) == "" {
		return errors.New(errors.ErrCodeInvalidFacet, "facet 'list' needs Fields[0]")
	}
	if c.Spacing < 0 || c.Spacing >= 1 {
		return errors.New(errors.ErrCodeInvalidFacet, "facet spacing %v is outside [0, 1)", c.Spacing)
	}
	if c.Cols < 0 {
		return errors.New(errors.ErrCodeInvalidFacet, "facet cols %d is negative", c.Cols)
	}
	return nil
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// Panels returns the panels of the last render.
func (f *Facet) Panels() []*Data { return f.panels }

func (f *Facet) Init() {}

// Render splits the view's filtered data and creates one child view per
// panel.
func (f *Facet) Render() {
	rows := f.view.GetData()
	if f.kind == KindList {
		f.panels = listPanels(rows, f.cfg)
	} else {
		f.panels = rectPanels(rows, f.cfg)
	}
	for _, d := range f.panels {
		f.createPanel(d)
	}
	f.view.Logger().Debug("facet rendered", "view", f.view.ID(), "kind", f.kind, "panels", len(f.panels))
}

// Update recreates the panels from the current data.
func (f *Facet) Update() {
	f.Clear()
	f.Render()
}

// Clear removes every panel view.
func (f *Facet) Clear() {
	for _, d := range f.panels {
		if d.View != nil {
			f.view.RemoveView(d.View)
		}
	}
	f.panels = nil
}

func (f *Facet) Destroy() { f.Clear() }

func (f *Facet) createPanel(d *Data) {
	cfg := view.ViewConfig{Region: d.Region, Padding: f.cfg.Padding}
	titles := f.titles(d)
	if len(titles) > 0 {
		cfg.AppendPadding = titlePadding(titles, f.view)
	}
	child := f.view.CreateView(cfg)
	child.Data(d.Rows)
	d.View = child
	if f.cfg.EachView != nil {
		f.cfg.EachView(child, d)
	}
	for _, g := range child.Geometries() {
		for _, fd := range g.ScaleFields() {
			child.Scale(fd, scale.Def{Sync: true})
		}
	}
	for _, g := range child.Geometries() {
		if !f.showXAxis(d) {
			hideAxis(child, g.XField())
		}
		if d.ColIndex > 0 {
			hideAxis(child, g.YField())
		}
	}
	for _, t := range titles {
		child.Annotation(t)
	}
}

// showXAxis reports whether no panel sits below d.
func (f *Facet) showXAxis(d *Data) bool {
	if f.kind == KindList {
		return (d.RowIndex+1)*d.ColCount+d.ColIndex >= len(f.panels)
	}
	return d.RowIndex == d.RowCount-1
}

func hideAxis(v *view.View, field string) {
	if field == "" {
		return
	}
	opt := v.Options().Axes[field]
	opt.Disabled = true
	v.Axis(field, opt)
}

// titles are drawn as text annotations on the panel edge: column values
// above the top row (every panel for list facets), row values right of
// the last column.
func (f *Facet) titles(d *Data) []view.Annotation {
	if f.cfg.HideTitle {
		return nil
	}
	var out []view.Annotation
	if d.ColField != "" && (f.kind == KindList || d.RowIndex == 0) {
		out = append(out, view.Annotation{
			Type:    view.AnnotationText,
			Start:   []any{"50%", "100%"},
			Content: data.String(d.ColValue),
			Style:   surface.Attrs{TextBaseline: "bottom", FontWeight: "bold"},
		})
	}
	if d.RowField != "" && d.ColIndex == d.ColCount-1 {
		out = append(out, view.Annotation{
			Type:    view.AnnotationText,
			Start:   []any{"100%", "50%"},
			Content: data.String(d.RowValue),
			Style:   surface.Attrs{TextAnchor: "start", FontWeight: "bold"},
		})
	}
	return out
}

// titlePadding reserves room for titles: the font height on top, the
// title width on the right.
func titlePadding(titles []view.Annotation, v *view.View) []float64 {
	size := v.Theme().FontSize
	p := []float64{0, 0, 0, 0}
	for _, t := range titles {
		if t.Style.TextAnchor == "start" {
			w, _ := surface.TextSize(t.Content, size)
			p[1] = w + titleGap
			continue
		}
		p[0] = size + titleGap
	}
	return p
}

// values lists the distinct values of field in order of appearance; an
// empty field yields a single nil value.
func values(rows []data.Datum, field string) []any {
	if field == "" {
		return []any{nil}
	}
	var out []any
	for _, row := range rows {
		if v := row[field]; data.IndexOf(out, v) < 0 {
			out = append(out, v)
		}
	}
	return out
}

func matching(rows []data.Datum, colField string, col any, rowField string, row any) []data.Datum {
	var out []data.Datum
	for _, r := range rows {
		if colField != "" && !data.Equal(r[colField], col) {
			continue
		}
		if rowField != "" && !data.Equal(r[rowField], row) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// region is the cell (col, row) of a cols x rows grid with spacing
// between cells.
func region(col, row, cols, rows int, spacing float64) view.Region {
	w := (1 - spacing*float64(cols-1)) / float64(cols)
	h := (1 - spacing*float64(rows-1)) / float64(rows)
	x, y := float64(col)*(w+spacing), float64(row)*(h+spacing)
	return view.Region{Start: coord.Point{X: x, Y: y}, End: coord.Point{X: x + w, Y: y + h}}
}
