package route

import (
	"slices"

	"github.com/mazeroute/mazeroute/pkg/grid"
)

// OptimalTiles returns every cell lying on at least one minimum-cost route,
// sorted by row then column. A cell qualifies when any of its headings holds
// both a forward and a backward label summing to cost; one qualifying heading
// settles the cell, so the result is deduplicated by cell.
func OptimalTiles(forward, backward Labels, cost int) []grid.Cell {
	members := make(map[grid.Cell]struct{})
	for state, fc := range forward {
		if _, ok := members[state.Cell]; ok {
			continue
		}
		if bc, ok := backward[state]; ok && fc+bc == cost {
			members[state.Cell] = struct{}{}
		}
	}

	tiles := make([]grid.Cell, 0, len(members))
	for c := range members {
		tiles = append(tiles, c)
	}
	slices.SortFunc(tiles, func(a, b grid.Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return tiles
}
