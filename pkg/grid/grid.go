// Package grid models rectangular ASCII mazes: walls, open floor, and a
// unique source and sink marker. Grids are immutable once parsed.
//
// The input format uses one byte per cell:
//
//	#  wall
//	.  open floor
//	S  source (start cell, passable)
//	E  sink (goal cell, passable)
//
// All rows must have the same length, and exactly one S and one E must be
// present. Anything else is rejected at parse time.
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Cell symbols accepted by [Parse].
const (
	SymbolWall   = '#'
	SymbolFloor  = '.'
	SymbolSource = 'S'
	SymbolSink   = 'E'
)

var (
	// ErrEmptyGrid is returned by [Parse] when the input has no rows or the
	// first row has no columns.
	ErrEmptyGrid = errors.New("grid must have at least one row and one column")

	// ErrRaggedRows is returned by [Parse] when rows differ in length.
	// Ragged input is rejected outright, never padded.
	ErrRaggedRows = errors.New("grid rows must all have the same length")

	// ErrBadSymbol is returned by [Parse] when a cell holds anything other
	// than the four accepted symbols.
	ErrBadSymbol = errors.New("unknown grid symbol")

	// ErrMissingSource is returned by [Parse] when no S marker is present.
	ErrMissingSource = errors.New("grid has no source marker")

	// ErrMissingSink is returned by [Parse] when no E marker is present.
	ErrMissingSink = errors.New("grid has no sink marker")

	// ErrDuplicateSource is returned by [Parse] when S appears more than once.
	ErrDuplicateSource = errors.New("grid has more than one source marker")

	// ErrDuplicateSink is returned by [Parse] when E appears more than once.
	ErrDuplicateSink = errors.New("grid has more than one sink marker")
)

// Cell addresses a grid position. Rows grow downward and columns grow to the
// right, both zero-based, with the origin in the top-left corner.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the cell as "(row,col)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Grid is an immutable rectangular maze with one source and one sink.
// The zero value is not usable; build one with [Parse] or [Read].
type Grid struct {
	rows   []string
	width  int
	height int
	source Cell
	sink   Cell
	floors int
}

// Parse builds a Grid from text rows. It validates rectangularity, the symbol
// set, and marker uniqueness; any violation aborts with one of the sentinel
// errors before any routing can run. The input slice is copied, so callers may
// reuse it afterwards.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{
		rows:   make([]string, len(lines)),
		width:  len(lines[0]),
		height: len(lines),
		source: Cell{-1, -1},
		sink:   Cell{-1, -1},
	}
	copy(g.rows, lines)

	for r, row := range g.rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d has length %d, want %d: %w", r, len(row), g.width, ErrRaggedRows)
		}
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case SymbolWall:
			case SymbolFloor:
				g.floors++
			case SymbolSource:
				if g.source.Row >= 0 {
					return nil, fmt.Errorf("second source at %v: %w", Cell{r, c}, ErrDuplicateSource)
				}
				g.source = Cell{r, c}
				g.floors++
			case SymbolSink:
				if g.sink.Row >= 0 {
					return nil, fmt.Errorf("second sink at %v: %w", Cell{r, c}, ErrDuplicateSink)
				}
				g.sink = Cell{r, c}
				g.floors++
			default:
				return nil, fmt.Errorf("symbol %q at %v: %w", row[c], Cell{r, c}, ErrBadSymbol)
			}
		}
	}

	if g.source.Row < 0 {
		return nil, ErrMissingSource
	}
	if g.sink.Row < 0 {
		return nil, ErrMissingSink
	}
	return g, nil
}

// ReadLines reads raw grid rows from r, one per line. Carriage returns and
// trailing blank lines are dropped so that LF and CRLF input produce the same
// rows; no grid validation happens here.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Read parses a grid from r via [ReadLines]. A blank line between rows is a
// ragged row and gets rejected by [Parse].
func Read(r io.Reader) (*Grid, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Source returns the cell marked S.
func (g *Grid) Source() Cell { return g.source }

// Sink returns the cell marked E.
func (g *Grid) Sink() Cell { return g.sink }

// Floors returns the number of passable cells, markers included.
func (g *Grid) Floors() int { return g.floors }

// InBounds reports whether c lies inside the grid rectangle.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// Passable reports whether c can be occupied. Out-of-bounds cells and walls
// are impassable; the source and sink count as ordinary floor.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.rows[c.Row][c.Col] != SymbolWall
}

// String renders the grid back in its input format, rows joined by newlines.
func (g *Grid) String() string { return strings.Join(g.rows, "\n") }
