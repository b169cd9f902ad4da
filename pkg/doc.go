// Package pkg provides the core libraries for Mazeroute maze solving.
//
// # Overview
//
// Mazeroute finds the cheapest route through a rectangular ASCII maze where
// stepping forward costs 1 and turning 90 degrees costs 1000, then reports
// every cell that lies on at least one optimal route. The pkg directory is
// organized into three main areas:
//
//  1. Domain logic (maze parsing, route search, tile enumeration)
//  2. Infrastructure (caching, configuration, structured errors)
//  3. Orchestration (the solve pipeline shared by CLI and HTTP API)
//
// # Architecture
//
// The typical data flow through Mazeroute:
//
//	ASCII maze text
//	     ↓
//	[grid] package (parse + validate)
//	     ↓
//	[route] package (forward/backward search + optimal tiles)
//	     ↓
//	[pipeline] package (caching + stats orchestration)
//	     ↓
//	terminal / JSON / HTTP output
//
// # Quick Start
//
// Parse a maze and solve it directly:
//
//	import (
//	    "github.com/mazeroute/mazeroute/pkg/grid"
//	    "github.com/mazeroute/mazeroute/pkg/route"
//	)
//
//	g, _ := grid.Parse([]string{
//	    "#####",
//	    "#S.E#",
//	    "#####",
//	})
//	r, _ := route.Solve(g, route.East)
//	fmt.Println(r.Cost, r.TileCount())
//
// # Main Packages
//
// ## Domain Logic
//
// [grid] - Rectangular ASCII maze model. Parses the #/./S/E input format,
// validates rectangularity and marker uniqueness, and answers passability
// queries. Grids are immutable once parsed.
//
// [route] - Weighted shortest-path search over (cell, heading) states. Runs a
// forward search from the source and a backward search from the sink, then
// intersects the two label sets to enumerate every cell on an optimal route.
//
// ## Infrastructure
//
// [cache] - Result caching behind a small Cache interface. FileCache for the
// CLI (content-addressed JSON files under XDG paths), RedisCache for server
// deployments, NullCache when caching is disabled.
//
// [config] - TOML configuration loaded from the XDG config path, with usable
// defaults for every field. Covers the cache backend, Redis connection,
// server address, and log level.
//
// [errors] - Structured errors with stable machine-readable codes, used at the
// CLI and HTTP boundaries to map failures to exit behavior and status codes.
//
// [observability] - Hooks that surface cache and pipeline events to the
// configured logger.
//
// [buildinfo] - Version metadata stamped at build time.
//
// ## Orchestration
//
// [pipeline] - The complete solve pipeline (read → parse → search → cache)
// used by the CLI and the HTTP API. Ensures both entry points produce
// identical results for identical inputs.
//
// [io] - Import and export helpers: reading mazes from files or streams and
// writing results as JSON documents.
//
// # Common Workflows
//
// Solve through the caching pipeline:
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	defer runner.Close()
//	res, _ := runner.SolveFile(ctx, "maze.txt", pipeline.Options{
//	    Facing:       "east",
//	    IncludeTiles: true,
//	})
//
// Choose the start heading explicitly:
//
//	h, _ := route.ParseHeading("north")
//	r, _ := route.Solve(g, h)
//
// Walk the optimal tiles:
//
//	for _, c := range r.Tiles {
//	    fmt.Println(c)
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/route/...     # Specific package
//	go test -run Example        # Examples only
//
// [grid]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/grid
// [route]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/route
// [cache]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/cache
// [config]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/config
// [errors]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/mazeroute/mazeroute/pkg/io
package pkg
