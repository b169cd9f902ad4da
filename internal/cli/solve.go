package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mazeroute/mazeroute/pkg/grid"
	pkgio "github.com/mazeroute/mazeroute/pkg/io"
	"github.com/mazeroute/mazeroute/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
// These options control the start heading, caching, and how the result is
// rendered.
type solveOpts struct {
	facing  string // heading held at the source before the first move
	tiles   bool   // list every optimal-route tile coordinate
	stats   bool   // print timing and search counters
	jsonOut bool   // machine-readable output, suppresses styling
	output  string // write the JSON result to this file
	noCache bool   // disable the cache for this run
	refresh bool   // recompute even when a cached route exists
}

// solveCommand creates the solve command, the main entry point of the CLI.
//
// Default options:
//   - facing: east (the conventional start heading for these mazes)
//   - caching: on, keyed by grid content and facing
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{facing: pipeline.DefaultFacing}

	cmd := &cobra.Command{
		Use:   "solve [maze.txt]",
		Short: "Solve a maze and report the optimal route",
		Long: `Solve a maze and report the optimal route cost and tile count.

The maze is a rectangular grid of '#' (wall), '.' (floor), 'S' (source), and
'E' (sink). A step forward costs 1 and a 90-degree turn costs 1000; the
solver reports the minimal total cost from S to E and the number of distinct
cells lying on at least one minimal-cost route.

Reads from stdin when no file is given or when the file is "-".

Examples:
  mazeroute solve maze.txt
  mazeroute solve maze.txt --facing north --tiles
  cat maze.txt | mazeroute solve --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runSolve(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.facing, "facing", "f", opts.facing, "start heading: north, east, south, or west")
	cmd.Flags().BoolVar(&opts.tiles, "tiles", false, "list the coordinates of every optimal-route tile")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print timing and search statistics")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON result to a file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached route exists")

	return cmd
}

// runSolve executes the pipeline for input and renders the result. A maze
// without a route is still a successful run; only invalid input fails.
func (c *CLI) runSolve(ctx context.Context, input string, opts solveOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Facing:       opts.facing,
		IncludeTiles: opts.tiles || opts.jsonOut || opts.output != "",
		Refresh:      opts.refresh,
		NoCache:      opts.noCache,
		Logger:       c.Logger,
	}

	spin := newSpinnerWithContext(ctx, "Solving maze...")
	if opts.jsonOut {
		spin.disable()
	}
	spin.Start()

	var res *pipeline.Result
	if input == "-" {
		res, err = runner.SolveReader(ctx, os.Stdin, popts)
	} else {
		res, err = runner.SolveFile(ctx, input, popts)
	}
	if err != nil {
		spin.Stop()
		if !opts.jsonOut {
			printError("Solve failed")
		}
		return err
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if opts.output != "" {
		if err := pkgio.ExportJSON(opts.output, res); err != nil {
			return fmt.Errorf("write result %s: %w", opts.output, err)
		}
	}

	if opts.jsonOut {
		return pkgio.WriteJSON(res, os.Stdout)
	}

	printResult(input, res, opts)
	return nil
}

// printResult renders a solved run for humans.
func printResult(input string, res *pipeline.Result, opts solveOpts) {
	if res.NoRoute {
		printWarning("No route from source to sink")
		printRouteStats(res.Grid.Width, res.Grid.Height, res.Stats.TotalDuration, res.CacheInfo.RouteHit)
		return
	}

	printSuccess("Route solved")
	printKeyValue("cost", strconv.Itoa(res.Cost))
	printKeyValue("tiles", strconv.Itoa(res.TileCount))
	printRouteStats(res.Grid.Width, res.Grid.Height, res.Stats.TotalDuration, res.CacheInfo.RouteHit)

	if opts.tiles {
		printNewline()
		printTiles(res.Tiles)
	}
	if opts.stats {
		printNewline()
		printSearchStats(res.Stats, res.CacheInfo.RouteHit)
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	if !opts.tiles {
		printNewline()
		printNextStep("List tiles", "mazeroute solve --tiles "+input)
	}
}

// printTiles lists tile coordinates in reading order, a few per line.
func printTiles(tiles []grid.Cell) {
	printInfo("Optimal-route tiles")
	const perLine = 8
	for i := 0; i < len(tiles); i += perLine {
		end := min(i+perLine, len(tiles))
		parts := make([]string, 0, perLine)
		for _, t := range tiles[i:end] {
			parts = append(parts, t.String())
		}
		printDetail("%s", strings.Join(parts, " "))
	}
}

// printSearchStats renders the timing block and, for computed runs, the
// per-direction search counters. Cached runs carry no counters.
func printSearchStats(s pipeline.Stats, cached bool) {
	printInfo("Run statistics")
	printKeyValue("parse", durationString(s.ParseDuration))
	printKeyValue("solve", durationString(s.SolveDuration))
	printKeyValue("total", durationString(s.TotalDuration))
	if cached {
		printDetail("search counters unavailable for cached routes")
		return
	}
	printKeyValue("expanded", fmt.Sprintf("%d forward, %d backward", s.Search.Forward.Expanded, s.Search.Backward.Expanded))
	printKeyValue("relaxed", fmt.Sprintf("%d forward, %d backward", s.Search.Forward.Relaxed, s.Search.Backward.Relaxed))
}

// durationString rounds d for display without collapsing sub-millisecond
// runs to zero.
func durationString(d time.Duration) string {
	rounded := d.Round(time.Millisecond)
	if rounded == 0 {
		rounded = d.Round(time.Microsecond)
	}
	return rounded.String()
}
