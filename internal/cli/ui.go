package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// stdout receives all status output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// statusKind selects the icon and colors of a status line.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

var statusStyles = map[statusKind]struct {
	icon      string
	iconStyle lipgloss.Style
	text      lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorGreen), lipgloss.NewStyle()},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorRed), lipgloss.NewStyle()},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorYellow), StyleWarning},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray), lipgloss.NewStyle()},
}

func printStatus(kind statusKind, format string, args ...any) {
	st := statusStyles[kind]
	fmt.Fprintln(stdout, st.iconStyle.Render(st.icon)+" "+st.text.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the counts of a pipeline run on one line, followed by
// "cached" or "fresh". Zero counts are left out; an artifact cache hit
// skips the build, so only rows are known then.
//
//	42 rows · 3 views · 12 elements · 57 shapes · fresh
func printStats(stats pipeline.Stats, cached bool) {
	var parts []string
	for _, c := range []struct {
		n    int
		unit string
	}{
		{stats.Rows, "rows"},
		{stats.Views, "views"},
		{stats.Elements, "elements"},
		{stats.Shapes, "shapes"},
	} {
		if c.n > 0 {
			parts = append(parts, StyleDim.Render(fmt.Sprintf("%d %s", c.n, c.unit)))
		}
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
