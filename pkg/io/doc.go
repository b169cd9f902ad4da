// Package io provides JSON file import and export for solve results.
//
// # Overview
//
// This package enables serialization of run results to and from JSON files.
// The format is designed for:
//
//   - Saving results from the CLI with `solve --output result.json`
//   - Integration with external tools that consume route data
//   - Re-reading stored results without re-running the search
//
// # JSON Format
//
// A result file is the JSON encoding of [pipeline.Result]:
//
//	{
//	  "run_id": "8a6f2c1e-...",
//	  "grid": {"width": 15, "height": 15},
//	  "cost": 7036,
//	  "no_route": false,
//	  "tile_count": 45,
//	  "tiles": [{"row": 1, "col": 1}, ...]
//	}
//
// # Import and Export
//
// Use [ExportJSON] to write any value to a file, or [WriteJSON] to write to
// an io.Writer:
//
//	err := io.ExportJSON("result.json", result)
//
// Exports go through a temporary file in the same directory followed by a
// rename, so readers never observe a partially written file.
//
// Use [ImportJSON] to read a file back into a value, or [ReadJSON] to read
// from an io.Reader:
//
//	var result pipeline.Result
//	err := io.ImportJSON("result.json", &result)
//
// [pipeline.Result]: github.com/mazeroute/mazeroute/pkg/pipeline.Result
package io
