// Package route computes minimum-cost routes through [grid.Grid] mazes in
// which rotating is far more expensive than moving.
//
// # Cost model
//
// A route is a walk over states, where a state pairs a grid cell with one of
// four headings. Three edges leave every state: step one cell ahead in the
// current heading (cost 1, only onto passable cells), or rotate 90 degrees
// clockwise or counterclockwise in place (cost 1000 each). Both costs are
// fixed positive constants, which is what makes Dijkstra labels exact.
//
// # Searches
//
// [Forward] runs Dijkstra from the source under a fixed start heading and
// labels every reachable state with its minimal accumulated cost. [Backward]
// runs the same relaxation seeded from the sink under all four headings, with
// the move edge reversed: stepping forward in heading d is undone by moving
// to the opposite neighbor while keeping d, so backward labels measure the
// minimal remaining cost from a state to the sink. Rotation edges cost the
// same in either direction and are included unchanged. Both searches run to
// frontier exhaustion instead of stopping at the first sink arrival, because
// enumeration needs complete label sets.
//
// # Optimal tiles
//
// A cell lies on some minimum-cost route exactly when one of its headings d
// satisfies forward(c,d) + backward(c,d) == optimal cost: the forward label
// witnesses a best walk from the source into (c,d), the backward label a best
// walk from (c,d) to the sink, and walk costs add linearly. [OptimalTiles]
// applies this test per state and deduplicates by cell; [Solve] bundles the
// two searches and the enumeration into one call.
package route
