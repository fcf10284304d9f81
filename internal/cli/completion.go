package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/recipe"
	"github.com/matzehuels/stackchart/pkg/theme"
)

// completionCommand creates the completion command for shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for stackchart. Recipe names, formats and
themes complete as flag values.

  source <(stackchart completion bash)
  stackchart completion zsh > "${fpath[1]}/_stackchart"
  stackchart completion fish > ~/.config/fish/completions/stackchart.fish
  stackchart completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values []string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// formatCompletion completes the comma-separated --format list: values
// already typed are kept as a prefix and not offered again.
func formatCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, prefix := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, prefix = toComplete[:i+1], toComplete[i+1:]
	}
	used := strings.Split(done, ",")
	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT} {
		if strings.HasPrefix(f, prefix) && !slices.Contains(used, f) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// registerChartCompletions wires value completion for the chart flags.
func registerChartCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("recipe", fixedCompletion(recipe.Names()))
	_ = cmd.RegisterFlagCompletionFunc("adjust", fixedCompletion([]string{"stack", "dodge"}))
	_ = cmd.RegisterFlagCompletionFunc("data-format", fixedCompletion([]string{"csv", "json", "yaml"}))
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return theme.Names(), cobra.ShellCompDirectiveDefault
	})
}
