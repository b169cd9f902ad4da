package route

import (
	"errors"
	"sync"

	"github.com/mazeroute/mazeroute/pkg/grid"
)

// ErrNoRoute is returned by [Forward] and [Solve] when no walk connects the
// source to the sink. It is an answer in its own right and must never be
// conflated with a zero-cost route.
var ErrNoRoute = errors.New("no route from source to sink")

// DirectionStats counts the work one search direction performed.
type DirectionStats struct {
	Expanded int `json:"expanded"` // states finalized off the frontier
	Relaxed  int `json:"relaxed"`  // label improvements pushed
}

// Stats reports both directions of a [Solve] run.
type Stats struct {
	Forward  DirectionStats `json:"forward"`
	Backward DirectionStats `json:"backward"`
}

// Route is the complete answer for one maze: the optimal cost, every cell on
// some optimal route, and the label sets the answer was derived from.
type Route struct {
	Cost     int
	Tiles    []grid.Cell
	Forward  Labels
	Backward Labels
	Stats    Stats
}

// TileCount returns the number of distinct cells on optimal routes.
func (r *Route) TileCount() int { return len(r.Tiles) }

// Solve runs the forward and backward searches and combines their labels into
// the optimal cost and the optimal-tile set. The two searches share no
// mutable state, so they run on separate goroutines; each is synchronous and
// runs to completion once started. start is the heading held at the source
// before the first move. An unreachable sink yields [ErrNoRoute].
func Solve(g *grid.Grid, start Heading) (*Route, error) {
	r := &Route{}

	var wg sync.WaitGroup
	var fwdErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.Forward, r.Cost, fwdErr = runForward(g, start, &r.Stats.Forward)
	}()
	go func() {
		defer wg.Done()
		r.Backward = runBackward(g, &r.Stats.Backward)
	}()
	wg.Wait()

	if fwdErr != nil {
		return nil, fwdErr
	}
	r.Tiles = OptimalTiles(r.Forward, r.Backward, r.Cost)
	return r, nil
}
