package route

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/mazeroute/mazeroute/pkg/grid"
)

func mustGrid(t *testing.T, lines ...string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(lines)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func TestSolve_StraightCorridor(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#S.E#",
		"#####",
	)

	r, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if r.Cost != 2 {
		t.Errorf("Cost = %d, want 2 (two moves, no turns)", r.Cost)
	}
	want := []grid.Cell{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}
	if !slices.Equal(r.Tiles, want) {
		t.Errorf("Tiles = %v, want %v", r.Tiles, want)
	}
}

func TestSolve_SingleTurn(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"###E#",
		"#S..#",
		"#####",
	)

	r, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if r.Cost != 1003 {
		t.Errorf("Cost = %d, want 1003 (three moves plus one turn)", r.Cost)
	}
	if r.TileCount() != 4 {
		t.Errorf("TileCount() = %d, want 4", r.TileCount())
	}
}

func TestSolve_KeepsBothEqualRoutes(t *testing.T) {
	// Two mirror-image detours around a wall, each costing three turns and
	// six moves. Tiles from both detours must be reported, not just the
	// first one discovered.
	g := mustGrid(t,
		"#######",
		"#.....#",
		"#S###E#",
		"#.....#",
		"#######",
	)

	r, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if r.Cost != 3006 {
		t.Errorf("Cost = %d, want 3006", r.Cost)
	}
	if r.TileCount() != 12 {
		t.Errorf("TileCount() = %d, want 12", r.TileCount())
	}

	upper := grid.Cell{Row: 1, Col: 3}
	lower := grid.Cell{Row: 3, Col: 3}
	if !slices.Contains(r.Tiles, upper) || !slices.Contains(r.Tiles, lower) {
		t.Errorf("Tiles = %v, want both %v and %v present", r.Tiles, upper, lower)
	}
}

func TestSolve_NoRoute(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#S#E#",
		"#####",
	)

	r, err := Solve(g, East)
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Solve() error = %v, want ErrNoRoute", err)
	}
	if r != nil {
		t.Errorf("Solve() route = %+v, want nil on no route", r)
	}
}

func TestForward_NoRouteKeepsLabels(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#S#E#",
		"#####",
	)

	labels, _, err := Forward(g, East)
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Forward() error = %v, want ErrNoRoute", err)
	}
	if len(labels) == 0 {
		t.Fatal("Forward() labels empty, want source-side states")
	}
	for h := Heading(0); h < headingCount; h++ {
		if _, ok := labels.Cost(State{Cell: g.Sink(), Heading: h}); ok {
			t.Errorf("sink state %v labeled despite being walled off", h)
		}
	}
}

func TestForward_CostIsMinOverSinkHeadings(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"###E#",
		"#S..#",
		"#####",
	)

	labels, cost, err := Forward(g, East)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	min, found := 0, false
	for h := Heading(0); h < headingCount; h++ {
		if c, ok := labels.Cost(State{Cell: g.Sink(), Heading: h}); ok && (!found || c < min) {
			min, found = c, true
		}
	}
	if !found {
		t.Fatal("no sink heading labeled")
	}
	if cost != min {
		t.Errorf("Forward() cost = %d, min sink label = %d", cost, min)
	}
}

func TestBackward_SeedsAllSinkHeadings(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#S.E#",
		"#####",
	)

	labels := Backward(g)
	for h := Heading(0); h < headingCount; h++ {
		c, ok := labels.Cost(State{Cell: g.Sink(), Heading: h})
		if !ok || c != 0 {
			t.Errorf("backward label at (sink, %v) = %d, %v; want 0, true", h, c, ok)
		}
	}
}

// checkRelaxed asserts the converged-label inequality label(v) <= label(u)+w
// for every edge leaving every labeled state.
func checkRelaxed(t *testing.T, g *grid.Grid, labels Labels, backward bool) {
	t.Helper()
	for u, uc := range labels {
		if uc < 0 {
			t.Errorf("label(%v) = %d, negative", u, uc)
		}

		check := func(v State, w int) {
			vc, ok := labels.Cost(v)
			if !ok {
				t.Errorf("state %v reachable from %v but unlabeled", v, u)
				return
			}
			if vc > uc+w {
				t.Errorf("label(%v) = %d exceeds label(%v)+%d = %d", v, vc, u, w, uc+w)
			}
		}

		next := u.Heading.Step(u.Cell)
		if backward {
			next = u.Heading.Back(u.Cell)
		}
		if g.Passable(next) {
			check(State{Cell: next, Heading: u.Heading}, MoveCost)
		}
		check(State{Cell: u.Cell, Heading: u.Heading.CW()}, TurnCost)
		check(State{Cell: u.Cell, Heading: u.Heading.CCW()}, TurnCost)
	}
}

func TestSearch_RelaxationInvariant(t *testing.T) {
	g := mustGrid(t,
		"#######",
		"#.....#",
		"#S###E#",
		"#.....#",
		"#######",
	)

	fwd, _, err := Forward(g, East)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	checkRelaxed(t, g, fwd, false)
	checkRelaxed(t, g, Backward(g), true)
}

func TestSolve_Idempotent(t *testing.T) {
	g := mustGrid(t,
		"#######",
		"#.....#",
		"#S###E#",
		"#.....#",
		"#######",
	)

	first, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	second, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if first.Cost != second.Cost {
		t.Errorf("costs differ across runs: %d vs %d", first.Cost, second.Cost)
	}
	if !slices.Equal(first.Tiles, second.Tiles) {
		t.Errorf("tile sets differ across runs: %v vs %v", first.Tiles, second.Tiles)
	}
}

func TestSolve_SourceAndSinkAreTiles(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"###E#",
		"#S..#",
		"#####",
	)

	r, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !slices.Contains(r.Tiles, g.Source()) {
		t.Errorf("Tiles = %v, missing source %v", r.Tiles, g.Source())
	}
	if !slices.Contains(r.Tiles, g.Sink()) {
		t.Errorf("Tiles = %v, missing sink %v", r.Tiles, g.Sink())
	}
}

func TestSolve_ReportsSearchStats(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#S.E#",
		"#####",
	)

	r, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if r.Stats.Forward.Expanded == 0 || r.Stats.Backward.Expanded == 0 {
		t.Errorf("Stats = %+v, want nonzero expansions in both directions", r.Stats)
	}
	if r.Stats.Forward.Relaxed == 0 || r.Stats.Backward.Relaxed == 0 {
		t.Errorf("Stats = %+v, want nonzero relaxations in both directions", r.Stats)
	}
}

func TestSolve_LargeMaze(t *testing.T) {
	g := mustGrid(t,
		"###############",
		"#.......#....E#",
		"#.#.###.#.###.#",
		"#.....#.#...#.#",
		"#.###.#####.#.#",
		"#.#.#.......#.#",
		"#.#.#####.###.#",
		"#...........#.#",
		"###.#.#####.#.#",
		"#...#.....#.#.#",
		"#.#.#.###.#.#.#",
		"#.....#...#.#.#",
		"#.###.#.#.#.#.#",
		"#S..#.....#...#",
		"###############",
	)

	r, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if r.Cost != 7036 {
		t.Errorf("Cost = %d, want 7036", r.Cost)
	}
	if r.TileCount() != 45 {
		t.Errorf("TileCount() = %d, want 45", r.TileCount())
	}
}

func TestSolve_StartHeadingMatters(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#S.E#",
		"#####",
	)

	east, err := Solve(g, East)
	if err != nil {
		t.Fatalf("Solve(East) error = %v", err)
	}
	north, err := Solve(g, North)
	if err != nil {
		t.Fatalf("Solve(North) error = %v", err)
	}

	if east.Cost != 2 {
		t.Errorf("Solve(East) cost = %d, want 2", east.Cost)
	}
	if north.Cost != 1002 {
		t.Errorf("Solve(North) cost = %d, want 1002 (one turn toward the corridor)", north.Cost)
	}
}

func ExampleSolve() {
	g, _ := grid.Parse([]string{
		"#####",
		"#S.E#",
		"#####",
	})
	r, _ := Solve(g, East)
	fmt.Printf("cost=%d tiles=%d\n", r.Cost, r.TileCount())
	// Output: cost=2 tiles=3
}
