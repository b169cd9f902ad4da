// Package pipeline provides the core solve pipeline for mazeroute.
//
// This package implements the complete load → parse → solve flow shared by
// the CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: Validate the maze text and locate the source and sink markers
//  2. Solve: Run the forward and backward searches and combine their labels
//
// Solved routes are cached keyed on the grid content hash and the starting
// facing, so repeated runs over the same maze skip the searches entirely.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Solve(ctx, lines, pipeline.Options{
//	    Facing:       "east",
//	    IncludeTiles: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Cost)
//
// Load from a file or stream instead:
//
//	result, err := runner.SolveFile(ctx, "maze.txt", opts)
//	result, err := runner.SolveReader(ctx, os.Stdin, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mazeroute/mazeroute/pkg/cache"
	apperrors "github.com/mazeroute/mazeroute/pkg/errors"
	"github.com/mazeroute/mazeroute/pkg/grid"
	"github.com/mazeroute/mazeroute/pkg/route"
)

// DefaultFacing is the heading held at the source before the first move.
const DefaultFacing = "east"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a solve run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Facing is the heading held at the source cell before the first move.
	// One of "north", "east", "south", "west"; single letters are accepted.
	Facing string `json:"facing,omitempty"`

	// IncludeTiles populates Result.Tiles with every optimal-route cell.
	// TileCount is filled either way.
	IncludeTiles bool `json:"include_tiles,omitempty"`

	// Refresh bypasses cache reads. The recomputed route is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// NoCache disables the cache for this run entirely, reads and writes.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// heading is the parsed Facing, set by ValidateAndSetDefaults.
	heading route.Heading

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the facing and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Facing == "" {
		o.Facing = DefaultFacing
	}
	h, err := route.ParseHeading(o.Facing)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidHeading, err, "invalid facing %q", o.Facing)
	}
	o.heading = h
	// Canonical lowercase name; the cache key is built from it.
	o.Facing = h.String()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// RouteKeyOpts returns cache key options for the solved route.
func (o *Options) RouteKeyOpts() cache.RouteKeyOpts {
	return cache.RouteKeyOpts{Facing: o.Facing}
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// GridInfo describes the parsed maze dimensions.
type GridInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result contains the outputs of a solve run.
type Result struct {
	// RunID uniquely identifies this run, cached or not.
	RunID string `json:"run_id"`

	// Grid holds the maze dimensions.
	Grid GridInfo `json:"grid"`

	// Cost is the optimal route cost. Meaningful only when NoRoute is false.
	Cost int `json:"cost"`

	// NoRoute reports that no walk connects the source to the sink.
	NoRoute bool `json:"no_route"`

	// Tiles lists every cell on at least one optimal route, sorted by row
	// then column. Populated only when Options.IncludeTiles is set.
	Tiles []grid.Cell `json:"tiles,omitempty"`

	// TileCount is the number of optimal-route cells.
	TileCount int `json:"tile_count"`

	// Stats contains timing and search-size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the route came from cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains solve run statistics.
type Stats struct {
	ParseDuration time.Duration `json:"parse_duration"`
	SolveDuration time.Duration `json:"solve_duration"`
	TotalDuration time.Duration `json:"total_duration"`

	// Search counts the work done per direction. Zero when the route came
	// from cache.
	Search route.Stats `json:"search"`
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	RouteHit bool `json:"route_hit"` // Whether the route came from cache
}

// routePayload is the cacheable subset of a result. Run-scoped fields
// (RunID, timings, search stats) are never cached.
type routePayload struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Cost      int         `json:"cost"`
	NoRoute   bool        `json:"no_route"`
	Tiles     []grid.Cell `json:"tiles,omitempty"`
	TileCount int         `json:"tile_count"`
}
