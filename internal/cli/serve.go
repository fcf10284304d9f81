package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		dataDir  string
		storeDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart HTTP API",
		Long: `Serve the chart HTTP API.

Settings come from STACKCHART_* environment variables, then the [server]
table of the config file, then these flags:

  STACKCHART_ADDR            listen address (default :8080)
  STACKCHART_MONGO_URI       MongoDB chart store
  STACKCHART_STORE_DIR       file chart store (used without MongoDB)
  STACKCHART_REDIS_URL       Redis artifact cache
  STACKCHART_CACHE_DIR       file artifact cache (used without Redis)
  STACKCHART_DATA_DIR        root for "source" paths in create requests

Without a store setting charts are kept in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return fmt.Errorf("load server config: %w", err)
			}
			c.Config.Server.applyServer(&cfg)
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if storeDir != "" {
				cfg.StoreDir = storeDir
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "root directory for file sources")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory of the file chart store")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config) error {
	st, err := server.OpenStore(ctx, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ch, err := server.OpenCache(ctx, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	// Server entries never collide with CLI entries in a shared cache dir.
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, "server:"), c.Logger)
	defer runner.Close()

	srv := server.New(cfg, st, runner, c.Logger)
	if cfg.DataDir == "" {
		printWarning("File sources disabled; set STACKCHART_DATA_DIR or --data-dir")
	}
	printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
	return srv.ListenAndServe(ctx)
}
