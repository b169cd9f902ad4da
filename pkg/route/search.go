package route

import (
	"container/heap"

	"github.com/mazeroute/mazeroute/pkg/grid"
)

// Edge costs. Moving one cell is cheap; turning 90 degrees is three orders of
// magnitude dearer, which is what makes routes hug straight lines.
const (
	MoveCost = 1
	TurnCost = 1000
)

// State pairs a cell with the heading held while occupying it. Distinct
// headings at the same cell are distinct states.
type State struct {
	Cell    grid.Cell `json:"cell"`
	Heading Heading   `json:"heading"`
}

// Labels maps each reached state to its minimal accumulated cost. A state
// absent from the map was never reached: labels are never negative and never
// silently zero.
type Labels map[State]int

// Cost returns the label for s and whether s was reached at all.
func (l Labels) Cost(s State) (int, bool) {
	c, ok := l[s]
	return c, ok
}

// search runs Dijkstra over the maze state space until the frontier is
// exhausted. Seeds enter at cost 0. In backward mode the move edge is
// reversed while rotations stay as they are: the state that could step
// forward into (cell, d) sits at the opposite neighbor with the same d.
func search(g *grid.Grid, seeds []State, backward bool, stats *DirectionStats) Labels {
	capacity := g.Floors() * headingCount
	dist := make(Labels, capacity)
	done := make(map[State]bool, capacity)

	pq := make(frontier, 0, len(seeds))
	for _, s := range seeds {
		dist[s] = 0
		pq = append(pq, entry{state: s})
	}
	heap.Init(&pq)

	relax := func(to State, cost int) {
		if old, seen := dist[to]; seen && old <= cost {
			return
		}
		dist[to] = cost
		heap.Push(&pq, entry{state: to, cost: cost})
		stats.Relaxed++
	}

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(entry)
		if done[cur.state] {
			// stale copy of an already finalized state
			continue
		}
		done[cur.state] = true
		stats.Expanded++

		cell, h := cur.state.Cell, cur.state.Heading

		next := h.Step(cell)
		if backward {
			next = h.Back(cell)
		}
		if g.Passable(next) {
			relax(State{Cell: next, Heading: h}, cur.cost+MoveCost)
		}
		relax(State{Cell: cell, Heading: h.CW()}, cur.cost+TurnCost)
		relax(State{Cell: cell, Heading: h.CCW()}, cur.cost+TurnCost)
	}

	return dist
}

// Forward labels every state reachable from the source under the start
// heading and returns the minimal cost of reaching the sink in any final
// heading. The search always runs to exhaustion so the labels remain usable
// for tile enumeration. An unreachable sink yields [ErrNoRoute] alongside the
// labels gathered so far.
func Forward(g *grid.Grid, start Heading) (Labels, int, error) {
	var stats DirectionStats
	return runForward(g, start, &stats)
}

func runForward(g *grid.Grid, start Heading, stats *DirectionStats) (Labels, int, error) {
	labels := search(g, []State{{Cell: g.Source(), Heading: start}}, false, stats)
	cost, ok := sinkCost(labels, g.Sink())
	if !ok {
		return labels, 0, ErrNoRoute
	}
	return labels, cost, nil
}

// Backward labels every state with the minimal remaining cost from it to the
// sink, seeded from all four sink headings at cost 0 because a route may
// finish facing any direction. Runs to exhaustion.
func Backward(g *grid.Grid) Labels {
	var stats DirectionStats
	return runBackward(g, &stats)
}

func runBackward(g *grid.Grid, stats *DirectionStats) Labels {
	seeds := make([]State, 0, headingCount)
	for h := Heading(0); h < headingCount; h++ {
		seeds = append(seeds, State{Cell: g.Sink(), Heading: h})
	}
	return search(g, seeds, true, stats)
}

// sinkCost is the minimum label among the four sink states, reported with
// whether any of them was reached.
func sinkCost(labels Labels, sink grid.Cell) (int, bool) {
	best, found := 0, false
	for h := Heading(0); h < headingCount; h++ {
		if c, ok := labels[State{Cell: sink, Heading: h}]; ok && (!found || c < best) {
			best, found = c, true
		}
	}
	return best, found
}
