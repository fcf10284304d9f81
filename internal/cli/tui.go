package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/chart/interaction"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
)

// =============================================================================
// Styles
// =============================================================================

var (
	listSelectedStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	mapBorderStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

const (
	mapCols = 48
	mapRows = 14
)

// =============================================================================
// ExploreModel - Interactive pointer over a rendered chart
// =============================================================================

// ExploreModel is the bubbletea model of the explore command. It moves a
// pointer over the plot, dispatches it to the chart canvas as mouse events
// and shows the tooltip items under it.
type ExploreModel struct {
	Chart *view.Chart

	// Pointer is the current position in chart pixels.
	Pointer coord.Point
	// Target is the index into targets of the last jump, -1 when moved freely.
	Target int

	plot    coord.BBox
	step    float64
	targets []coord.Point
	items   []view.TooltipItem
	inPlot  bool
}

// NewExploreModel creates a model with the pointer in the plot center.
func NewExploreModel(c *view.Chart) ExploreModel {
	plot := c.CoordinateBBox()
	m := ExploreModel{
		Chart:   c,
		Target:  -1,
		plot:    plot,
		step:    max(plot.Width, plot.Height) / 40,
		targets: dataPoints(c.View),
	}
	if m.step <= 0 {
		m.step = 1
	}
	m = m.moveTo(plot.Center())
	return m
}

// dataPoints returns the pixel anchors of every record below v, left to
// right.
func dataPoints(v *view.View) []coord.Point {
	var pts []coord.Point
	for _, g := range v.Geometries() {
		if !g.Visible() {
			continue
		}
		for _, el := range g.Elements() {
			for _, r := range el.Records {
				pts = append(pts, r.Point)
			}
		}
	}
	for _, c := range v.Views() {
		pts = append(pts, dataPoints(c)...)
	}
	slices.SortStableFunc(pts, func(a, b coord.Point) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})
	return pts
}

// moveTo places the pointer at p, clamped to the chart frame, and
// refreshes the tooltip items.
func (m ExploreModel) moveTo(p coord.Point) ExploreModel {
	w, h := m.Chart.Canvas().Width, m.Chart.Canvas().Height
	p.X = min(max(p.X, 0), w)
	p.Y = min(max(p.Y, 0), h)

	m.Pointer = p
	m.Chart.Canvas().Dispatch("mousemove", p)
	m.inPlot = m.Chart.IsPointInPlot(p)
	m.items = nil
	if m.inPlot {
		m.items = m.Chart.GetTooltipItems(p)
	}
	return m
}

func (m ExploreModel) jump(delta int) ExploreModel {
	if len(m.targets) == 0 {
		return m
	}
	i := m.Target + delta
	if m.Target < 0 && delta < 0 {
		i = len(m.targets) - 1
	}
	i = (i%len(m.targets) + len(m.targets)) % len(m.targets)
	m = m.moveTo(m.targets[i])
	m.Target = i
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	p := m.Pointer
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Chart.Canvas().Dispatch("mouseleave", p)
		return m, tea.Quit
	case "left", "h":
		p.X -= m.step
	case "right", "l":
		p.X += m.step
	case "up", "k":
		p.Y -= m.step
	case "down", "j":
		p.Y += m.step
	case "tab", "n":
		return m.jump(1), nil
	case "shift+tab", "p":
		return m.jump(-1), nil
	case "c":
		p = m.plot.Center()
	default:
		return m, nil
	}
	m = m.moveTo(p)
	m.Target = -1
	return m, nil
}

// Active returns the datum highlighted by the element-active interaction.
func (m ExploreModel) Active() data.Datum {
	ea, ok := m.Chart.GetInteraction(interaction.NameElementActive).(*interaction.ElementActive)
	if !ok || ea.Active() == nil {
		return nil
	}
	return ea.Active().Data()
}

// Items returns the tooltip items under the pointer.
func (m ExploreModel) Items() []view.TooltipItem { return m.items }

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→/↑/↓ move  tab next point  c center  q quit"))
	b.WriteString("\n\n")

	b.WriteString(mapBorderStyle.Render(m.minimap()))
	b.WriteString("\n")

	pos := fmt.Sprintf("pointer %.0f,%.0f", m.Pointer.X, m.Pointer.Y)
	if !m.inPlot {
		pos += "  " + StyleWarning.Render("outside plot")
	}
	b.WriteString(listDimStyle.Render(pos))
	b.WriteString("\n")
	if d := m.Active(); d != nil {
		b.WriteString(listSelectedStyle.Render("active " + formatDatum(d)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(listDimStyle.Render("  no data under the pointer"))
		return b.String()
	}

	rows := make([][]string, len(m.items))
	for i, it := range m.items {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render("■")
		rows[i] = []string{swatch, it.Title, it.Name, it.Value}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Title", "Name", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	b.WriteString(t.Render())
	return b.String()
}

// minimap draws the plot as a character grid: data points as dots and the
// pointer as a cross.
func (m ExploreModel) minimap() string {
	grid := make([][]rune, mapRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", mapCols))
	}
	cell := func(p coord.Point) (int, int, bool) {
		if m.plot.IsEmpty() || !m.plot.Contains(p) {
			return 0, 0, false
		}
		c := int((p.X - m.plot.X) / m.plot.Width * mapCols)
		r := int((p.Y - m.plot.Y) / m.plot.Height * mapRows)
		return min(c, mapCols-1), min(r, mapRows-1), true
	}
	for _, p := range m.targets {
		if c, r, ok := cell(p); ok {
			grid[r][c] = '•'
		}
	}
	if c, r, ok := cell(m.Pointer); ok {
		grid[r][c] = '+'
	}
	lines := make([]string, mapRows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// formatDatum renders d as sorted key=value pairs.
func formatDatum(d data.Datum) string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + data.String(d[k])
	}
	return strings.Join(parts, " ")
}
