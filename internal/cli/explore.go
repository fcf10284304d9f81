package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// exploreCommand creates the explore command, an interactive tooltip
// browser in the terminal.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "explore [data]",
		Short: "Move a pointer over a chart and read its tooltips",
		Long: `Build a chart and explore it in the terminal.

The arrow keys move a pointer over the plot; the chart receives the moves
as mouse events, so tooltips and active elements follow it exactly as they
would in a browser. Tab jumps from one data point to the next.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(c, cmd, args[0], nil, nil)
			return c.runExplore(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options) error {
	ch, _, err := c.buildChart(ctx, opts)
	if err != nil {
		return err
	}
	defer ch.Destroy()

	p := tea.NewProgram(NewExploreModel(ch), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
