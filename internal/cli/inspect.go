package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/render/viewtree"
)

// inspectCommand creates the inspect command that prints the view tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags chartFlags
		dot   bool
		graph string
	)

	cmd := &cobra.Command{
		Use:   "inspect [data]",
		Short: "Show the view tree of a chart",
		Long: `Build a chart and print its view tree: every view with its state and
coordinate, and the geometries it draws.

  stackchart inspect sales.csv -r facet-column -x genre -y sold --facet region
  stackchart inspect sales.csv -r column -x genre -y sold --dot
  stackchart inspect sales.csv -r column -x genre -y sold --graph tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(c, cmd, args[0], nil, nil)
			return c.runInspect(cmd.Context(), opts, dot, graph)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dot, "dot", false, "print the view tree as Graphviz DOT")
	cmd.Flags().StringVar(&graph, "graph", "", "write the view tree diagram to a .svg, .png or .pdf file")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, dot bool, graph string) error {
	ch, rows, err := c.buildChart(ctx, opts)
	if err != nil {
		return err
	}
	defer ch.Destroy()

	if dot {
		fmt.Fprint(stdout, viewtree.ToDOT(ch, viewtree.Options{Detailed: true}))
		return nil
	}

	fmt.Fprintln(stdout, viewTree(ch.View).String())
	printNewline()
	stats := chart.Inspect(ch)
	printKeyValue("Rows", fmt.Sprint(len(rows)))
	printKeyValue("Views", fmt.Sprint(stats.Views))
	printKeyValue("Geometries", fmt.Sprint(stats.Geometries))
	printKeyValue("Elements", fmt.Sprint(stats.Elements))
	printKeyValue("Shapes", fmt.Sprint(stats.Shapes))

	if graph != "" {
		if err := writeViewTree(ctx, ch, graph); err != nil {
			return err
		}
		printNewline()
		printFile(graph)
	}
	return nil
}

var (
	treeRootStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeEnumStyle = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
)

// viewTree returns the lipgloss tree of v and its descendants.
func viewTree(v *view.View) *tree.Tree {
	t := tree.Root(viewLine(v)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle).
		RootStyle(treeRootStyle)
	for _, g := range v.Geometries() {
		line := fmt.Sprintf("%s %s", g.Type(), StyleDim.Render(fmt.Sprintf("(%d elements)", len(g.Elements()))))
		if !g.Visible() {
			line += " " + StyleWarning.Render("hidden")
		}
		t.Child(line)
	}
	for _, child := range v.Views() {
		t.Child(viewTree(child))
	}
	return t
}

func viewLine(v *view.View) string {
	parts := []string{v.ID(), string(v.State())}
	if co := v.GetCoordinate(); co != nil {
		kind := string(co.Type())
		if co.IsTransposed() {
			kind += "/transposed"
		}
		parts = append(parts, kind)
	}
	parts = append(parts, fmt.Sprintf("%d rows", len(v.GetData())))
	if !v.Visible() {
		parts = append(parts, "hidden")
	}
	return parts[0] + " " + StyleDim.Render(strings.Join(parts[1:], " · "))
}

// writeViewTree renders the Graphviz diagram of ch to path, choosing the
// format from its extension.
func writeViewTree(ctx context.Context, ch *view.Chart, path string) error {
	dot := viewtree.ToDOT(ch, viewtree.Options{Detailed: true})
	var (
		out []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		out, err = viewtree.RenderSVG(ctx, dot)
	case ".png":
		out, err = viewtree.RenderPNG(ctx, dot, pipeline.DefaultScale)
	case ".pdf":
		out, err = viewtree.RenderPDF(ctx, dot)
	case ".dot", ".gv":
		out = []byte(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph extension %q (use .svg, .png, .pdf or .dot)", ext)
	}
	if err != nil {
		return fmt.Errorf("render view tree: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}
