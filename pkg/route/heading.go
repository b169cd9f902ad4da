package route

import (
	"fmt"
	"strings"

	"github.com/mazeroute/mazeroute/pkg/grid"
)

// Heading is one of the four facings a route can hold, ordered clockwise so
// that rotation is plain modulo-4 arithmetic.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

// headingCount is the modulus for rotation arithmetic.
const headingCount = 4

// deltas maps each heading to its row/column step. Row 0 is the top row, so
// north decrements the row.
var deltas = [headingCount][2]int{
	North: {-1, 0},
	East:  {0, 1},
	South: {1, 0},
	West:  {0, -1},
}

var headingNames = [headingCount]string{"north", "east", "south", "west"}

// CW returns the heading after one 90 degree clockwise rotation.
func (h Heading) CW() Heading { return (h + 1) % headingCount }

// CCW returns the heading after one 90 degree counterclockwise rotation.
func (h Heading) CCW() Heading { return (h + headingCount - 1) % headingCount }

// Step returns the neighbor one cell ahead of c in heading h. The result may
// lie outside the grid; callers gate on passability.
func (h Heading) Step(c grid.Cell) grid.Cell {
	d := deltas[h%headingCount]
	return grid.Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
}

// Back returns the neighbor opposite to h. It undoes Step: for every cell c,
// h.Back(h.Step(c)) == c.
func (h Heading) Back(c grid.Cell) grid.Cell {
	d := deltas[h%headingCount]
	return grid.Cell{Row: c.Row - d[0], Col: c.Col - d[1]}
}

// String returns the lowercase compass name.
func (h Heading) String() string {
	if int(h) < len(headingNames) {
		return headingNames[h]
	}
	return fmt.Sprintf("heading(%d)", uint8(h))
}

// MarshalText encodes the heading as its compass name so states and results
// serialize readably.
func (h Heading) MarshalText() ([]byte, error) {
	if int(h) >= len(headingNames) {
		return nil, fmt.Errorf("invalid heading %d", uint8(h))
	}
	return []byte(headingNames[h]), nil
}

// UnmarshalText decodes a compass name produced by MarshalText.
func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHeading converts a compass name into a Heading. Full names and single
// letters are accepted, case-insensitively.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return North, fmt.Errorf("unknown heading %q (want north, east, south, or west)", s)
}
