package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/recipe"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// recipesCommand lists the registered recipes and themes.
func (c *CLI) recipesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the available chart recipes and themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, recipeTable(recipe.All()).Render())
			printNewline()
			printKeyValue("Themes", strings.Join(theme.Names(), ", "))
			printNewline()
			printNextStep("Render one", "stackchart render data.csv -r column -x genre -y sold")
			return nil
		},
	}
}

// recipeTable renders recipes with their required channels.
func recipeTable(recipes []recipe.Recipe) *table.Table {
	rows := make([][]string, len(recipes))
	for i, r := range recipes {
		rows[i] = []string{r.Name, strings.Join(r.Requires, ", "), r.Description}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Recipe", "Requires", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			case col == 1:
				return StyleDim.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
