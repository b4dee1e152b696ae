package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a grid is built with a non-positive
// row or column count.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Position addresses a unit by zero-based row and column.
type Position struct {
	Row int
	Col int
}

// Flags is the per-unit state triple.
type Flags struct {
	Available bool
	Selected  bool
	Booked    bool
}

// normalize enforces that a booked unit is never available or selected.
func (f Flags) normalize() Flags {
	if f.Booked {
		f.Available = false
		f.Selected = false
	}
	return f
}

// Selectable reports whether a click on the unit may change its selection.
func (f Flags) Selectable() bool {
	return f.Available && !f.Booked
}

// Unit is one bookable cell of the plot.
type Unit struct {
	Position
	Flags
}

// ID returns the stable identity derived from the unit's coordinates.
func (u Unit) ID() string {
	return fmt.Sprintf("R%dC%d", u.Row, u.Col)
}

// Counts summarises the grid for the plot summary strip.
type Counts struct {
	Total     int
	Available int
	Booked    int
	Selected  int
}

// Grid is a fixed-size, row-major matrix of units.
type Grid struct {
	rows  int
	cols  int
	units []Unit
}

// New builds a rows x cols grid. Positions listed in booked start booked;
// every other unit starts available. Booked entries outside the grid are
// ignored.
func New(rows, cols int, booked []Position) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", rows, cols, ErrInvalidDimensions)
	}
	g := &Grid{rows: rows, cols: cols, units: make([]Unit, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.units[r*cols+c] = Unit{
				Position: Position{Row: r, Col: c},
				Flags:    Flags{Available: true},
			}
		}
	}
	for _, pos := range booked {
		g.Set(pos, Flags{Booked: true})
	}
	return g, nil
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Len returns the total number of units.
func (g *Grid) Len() int { return len(g.units) }

// Contains reports whether pos addresses a real cell.
func (g *Grid) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// Index returns the row-major index of pos, or -1 when out of bounds.
func (g *Grid) Index(pos Position) int {
	if !g.Contains(pos) {
		return -1
	}
	return pos.Row*g.cols + pos.Col
}

// Unit returns the unit at pos.
func (g *Grid) Unit(pos Position) (Unit, bool) {
	idx := g.Index(pos)
	if idx < 0 {
		return Unit{}, false
	}
	return g.units[idx], true
}

// At returns the unit at a row-major index.
func (g *Grid) At(index int) (Unit, bool) {
	if index < 0 || index >= len(g.units) {
		return Unit{}, false
	}
	return g.units[index], true
}

// Set replaces the flags of the unit at pos. Out-of-bounds positions are a
// no-op and report false. Booked always wins over Available and Selected.
func (g *Grid) Set(pos Position, flags Flags) bool {
	idx := g.Index(pos)
	if idx < 0 {
		return false
	}
	g.units[idx].Flags = flags.normalize()
	return true
}

// Units returns a row-major copy of every unit.
func (g *Grid) Units() []Unit {
	dup := make([]Unit, len(g.units))
	copy(dup, g.units)
	return dup
}

// Counts tallies the grid. Available counts units that can still be booked.
func (g *Grid) Counts() Counts {
	counts := Counts{Total: len(g.units)}
	for _, u := range g.units {
		switch {
		case u.Booked:
			counts.Booked++
		case u.Available:
			counts.Available++
		}
		if u.Selected {
			counts.Selected++
		}
	}
	return counts
}
