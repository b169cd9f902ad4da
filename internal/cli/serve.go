package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazeroute/mazeroute/internal/server"
	"github.com/mazeroute/mazeroute/pkg/cache"
	"github.com/mazeroute/mazeroute/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mazeroute HTTP API",
		Long: `Run the mazeroute HTTP API.

The server exposes the solve pipeline over HTTP:

  POST /v1/solve   solve a maze supplied in the request body
  GET  /healthz    liveness probe
  GET  /version    build information

The cache backend comes from the config file ([cache] section); a Redis
backend lets several replicas share one cache. The server runs until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the configured address)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/mazeroute/config.toml)")

	return cmd
}

// runServe wires the configured cache behind an api-scoped keyer and serves
// until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	// --verbose wins over the configured level.
	if c.Logger.GetLevel() != LogDebug {
		c.SetLogLevel(logLevel(cfg.Log.Level))
	}

	store, err := cacheFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	// API keys stay apart from CLI entries when both point at the same
	// backend.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	prog := newProgress(c.Logger)
	if err := server.New(runner, c.Logger, addr).Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	prog.done("Server stopped")
	return nil
}
