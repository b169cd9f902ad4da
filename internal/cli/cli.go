// Package cli implements the mazeroute command-line interface.
//
// This package provides commands for solving ASCII mazes, running the solve
// API as an HTTP server, and managing the local result cache. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - solve: Compute the optimal route cost and tile count for a maze
//   - serve: Run the HTTP API until interrupted
//   - cache: Manage the local result cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The serve
// command additionally honors the configured log level when --verbose is not
// set.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mazeroute/mazeroute/pkg/buildinfo"
	"github.com/mazeroute/mazeroute/pkg/cache"
	"github.com/mazeroute/mazeroute/pkg/config"
	"github.com/mazeroute/mazeroute/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "mazeroute"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mazeroute",
		Short:        "Mazeroute finds cheapest routes through ASCII mazes",
		Long:         `Mazeroute solves weighted shortest-path problems over rectangular ASCII mazes, where moving forward is cheap and turning is expensive, and reports every cell that lies on an optimal route.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the cache backend from config; --no-cache wins outright.
func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	return cacheFromConfig(ctx, cfg)
}

// cacheFromConfig builds the configured cache backend. An unusable file
// backend degrades to a null cache; an explicitly configured Redis backend
// that cannot be reached is an error.
func cacheFromConfig(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch strings.ToLower(cfg.Cache.Backend) {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var derr error
		dir, derr = cacheDir()
		if derr != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mazeroute/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// resolveCacheDir returns the directory the file cache actually uses: the
// configured override when present, the XDG default otherwise.
func resolveCacheDir() (string, error) {
	if cfg, err := config.LoadDefault(); err == nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// loadConfig loads an explicit config path, or the default location when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}
