package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// chartFlags are the flags shared by every command that builds a chart.
type chartFlags struct {
	opts pipeline.Options
}

// register adds the chart flags to cmd.
func (f *chartFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.opts.Recipe, "recipe", "r", "", "chart recipe (see 'stackchart recipes')")
	fl.StringVarP(&f.opts.Fields.X, "x", "x", "", "field on the x channel")
	fl.StringVarP(&f.opts.Fields.Y, "y", "y", "", "field on the y channel")
	fl.StringVarP(&f.opts.Fields.Color, "color", "c", "", "field on the color channel")
	fl.StringVar(&f.opts.Fields.Facet, "facet", "", "field splitting the chart into facets")
	fl.StringVar(&f.opts.Fields.Adjust, "adjust", "", "position adjustment: stack or dodge")
	fl.StringVarP(&f.opts.Title, "title", "t", "", "chart title")
	fl.StringVar(&f.opts.DataFormat, "data-format", "", "input encoding: csv, json or yaml (default: from extension)")
	fl.Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "frame width in pixels")
	fl.Float64Var(&f.opts.Height, "height", pipeline.DefaultHeight, "frame height in pixels")
	fl.StringVar(&f.opts.Theme, "theme", pipeline.DefaultTheme, "built-in theme name or YAML theme file")
	fl.BoolVar(&f.opts.Animate, "animate", false, "mark shapes for entry animation (SVG)")
	registerChartCompletions(cmd)
}

// options returns the pipeline options for source with the file config
// applied under the flags.
func (f *chartFlags) options(c *CLI, cmd *cobra.Command, source string, formats, output *string) pipeline.Options {
	opts := f.opts
	c.Config.Render.applyRender(cmd.Flags(), &opts, formats, output)
	opts.Source = source
	opts.Logger = c.Logger
	return opts
}

// renderCommand creates the render command for exporting charts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      chartFlags
		formatsStr string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render a chart from a CSV, JSON or YAML file",
		Long: `Render a chart from tabular data.

The data argument is a local file or an http(s) URL. Its rows are bound to
the channels of a recipe with --x, --y, --color and --facet:

  stackchart render sales.csv -r column -x genre -y sold -c genre
  stackchart render sales.csv -r pie -x genre -y sold -f svg,png,pdf

Rendered artifacts and remote data are cached locally; --refresh bypasses
the cache and --no-cache disables it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(c, cmd, args[0], &formatsStr, &output)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&flags.opts.Scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&flags.opts.Refresh, "refresh", false, "ignore cached data and artifacts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Preparing %s...", opts.SourceLabel()))
	restore := trackStages(spinner)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning("Render cancelled")
			return err
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, basePath(output, opts.Source), output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s chart", opts.Recipe)
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes artifacts in format order. A single format goes
// to output verbatim when it is set; otherwise each file is base.format.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// buildChart loads and builds a chart without exporting artifacts. The
// caller destroys the chart.
func (c *CLI) buildChart(ctx context.Context, opts pipeline.Options) (*view.Chart, []data.Datum, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, err
	}
	runner, err := c.newRunner(false)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	done := timed(loggerFromContext(ctx))
	rows, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("load: %w", err)
	}
	ch, err := pipeline.Build(rows, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("build: %w", err)
	}
	done("built chart", "recipe", opts.Recipe, "rows", len(rows))
	return ch, rows, nil
}
