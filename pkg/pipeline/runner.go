package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mazeroute/mazeroute/pkg/cache"
	apperrors "github.com/mazeroute/mazeroute/pkg/errors"
	"github.com/mazeroute/mazeroute/pkg/grid"
	"github.com/mazeroute/mazeroute/pkg/observability"
	"github.com/mazeroute/mazeroute/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve runs the complete parse → solve pipeline over raw grid rows.
//
// A cached route for the same grid text and facing short-circuits the run
// unless opts.Refresh or opts.NoCache is set. An unsolvable maze is a valid
// result with NoRoute set, not an error; errors are reserved for invalid
// input.
func (r *Runner) Solve(ctx context.Context, lines []string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	observability.Solver().OnSolveStart(ctx, result.RunID)

	gridHash := cache.Hash([]byte(strings.Join(lines, "\n")))
	cacheKey := r.Keyer.RouteKey(gridHash, opts.RouteKeyOpts())

	// Try cache first (unless bypassed)
	if !opts.NoCache && !opts.Refresh {
		if p, ok := r.cachedRoute(ctx, cacheKey); ok {
			fillFromPayload(result, p, opts)
			result.CacheInfo.RouteHit = true
			result.Stats.TotalDuration = time.Since(start)
			opts.Logger.Info("route from cache",
				"cost", p.Cost,
				"no_route", p.NoRoute,
				"duration", result.Stats.TotalDuration)
			observability.Solver().OnSolveComplete(ctx, result.RunID,
				p.Cost, p.TileCount, p.NoRoute, result.Stats.TotalDuration, nil)
			return result, nil
		}
	}

	// Stage 1: Parse
	parseStart := time.Now()
	g, err := grid.Parse(lines)
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		observability.Solver().OnParseComplete(ctx, result.RunID, 0, 0, result.Stats.ParseDuration, err)
		if errors.Is(err, grid.ErrEmptyGrid) {
			// An empty maze has no route; that is the answer, not a failure.
			return r.finishNoRoute(ctx, cacheKey, result, start, opts)
		}
		observability.Solver().OnSolveComplete(ctx, result.RunID, 0, 0, false, time.Since(start), err)
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGrid, err, "parse grid")
	}
	result.Grid = GridInfo{Width: g.Width(), Height: g.Height()}
	observability.Solver().OnParseComplete(ctx, result.RunID,
		g.Width(), g.Height(), result.Stats.ParseDuration, nil)

	opts.Logger.Info("parsed grid",
		"width", g.Width(),
		"height", g.Height(),
		"floors", g.Floors(),
		"duration", result.Stats.ParseDuration)

	// Stage 2: Solve
	solveStart := time.Now()
	rt, err := route.Solve(g, opts.heading)
	result.Stats.SolveDuration = time.Since(solveStart)
	if err != nil {
		if errors.Is(err, route.ErrNoRoute) {
			return r.finishNoRoute(ctx, cacheKey, result, start, opts)
		}
		observability.Solver().OnSolveComplete(ctx, result.RunID, 0, 0, false, time.Since(start), err)
		return nil, fmt.Errorf("solve: %w", err)
	}

	result.Cost = rt.Cost
	result.TileCount = rt.TileCount()
	if opts.IncludeTiles {
		result.Tiles = rt.Tiles
	}
	result.Stats.Search = rt.Stats
	observability.Solver().OnSearchComplete(ctx, result.RunID, "forward", rt.Stats.Forward.Expanded)
	observability.Solver().OnSearchComplete(ctx, result.RunID, "backward", rt.Stats.Backward.Expanded)

	opts.Logger.Info("solved maze",
		"cost", rt.Cost,
		"tiles", rt.TileCount(),
		"expanded_fwd", rt.Stats.Forward.Expanded,
		"expanded_bwd", rt.Stats.Backward.Expanded,
		"duration", result.Stats.SolveDuration)

	// Cache the result
	r.storeRoute(ctx, cacheKey, routePayload{
		Width:     result.Grid.Width,
		Height:    result.Grid.Height,
		Cost:      rt.Cost,
		Tiles:     rt.Tiles,
		TileCount: rt.TileCount(),
	}, opts)

	result.Stats.TotalDuration = time.Since(start)
	observability.Solver().OnSolveComplete(ctx, result.RunID,
		result.Cost, result.TileCount, false, result.Stats.TotalDuration, nil)
	return result, nil
}

// SolveReader reads grid rows from rd and solves them.
func (r *Runner) SolveReader(ctx context.Context, rd io.Reader, opts Options) (*Result, error) {
	lines, err := grid.ReadLines(rd)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read grid")
	}
	return r.Solve(ctx, lines, opts)
}

// SolveFile loads the maze at path and solves it.
func (r *Runner) SolveFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "maze file %s not found", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return r.SolveReader(ctx, f, opts)
}

// finishNoRoute completes a run whose answer is that no route exists.
func (r *Runner) finishNoRoute(ctx context.Context, key string, result *Result, start time.Time, opts Options) (*Result, error) {
	result.NoRoute = true
	r.storeRoute(ctx, key, routePayload{
		Width:   result.Grid.Width,
		Height:  result.Grid.Height,
		NoRoute: true,
	}, opts)
	result.Stats.TotalDuration = time.Since(start)
	opts.Logger.Info("no route", "duration", result.Stats.TotalDuration)
	observability.Solver().OnSolveComplete(ctx, result.RunID, 0, 0, true, result.Stats.TotalDuration, nil)
	return result, nil
}

// cachedRoute fetches and decodes a stored payload. Any failure is a miss.
func (r *Runner) cachedRoute(ctx context.Context, key string) (routePayload, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "route")
		return routePayload{}, false
	}
	var p routePayload
	if err := json.Unmarshal(data, &p); err != nil {
		observability.Cache().OnCacheMiss(ctx, "route")
		return routePayload{}, false
	}
	observability.Cache().OnCacheHit(ctx, "route")
	return p, true
}

// storeRoute caches a payload under key unless caching is off for the run.
func (r *Runner) storeRoute(ctx context.Context, key string, p routePayload, opts Options) {
	if opts.NoCache {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRoute); err != nil {
		opts.Logger.Debug("cache store failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "route", len(data))
}

// fillFromPayload copies a cached payload into a fresh result.
func fillFromPayload(result *Result, p routePayload, opts Options) {
	result.Grid = GridInfo{Width: p.Width, Height: p.Height}
	result.Cost = p.Cost
	result.NoRoute = p.NoRoute
	result.TileCount = p.TileCount
	if opts.IncludeTiles {
		result.Tiles = p.Tiles
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
