// Package overlay places the unit-detail popup shown while hovering a cell.
package overlay

import (
	"github.com/five82/plotgrid/internal/pointer"
)

// Rect is an axis-aligned box in screen coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p pointer.Point) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width && p.Y >= r.Top && p.Y < r.Top+r.Height
}

// Positioner computes the popup origin relative to the grid container.
type Positioner struct {
	OverlayWidth float64
	Margin       float64
}

// Place centres the popup horizontally under cell. The x coordinate is
// clamped so the popup ends at least Margin before the viewport's right edge,
// and never goes left of the container.
func (p Positioner) Place(cell, container Rect, viewportWidth float64) pointer.Point {
	x := cell.Left - container.Left + cell.Width/2
	y := cell.Top - container.Top + cell.Height
	if limit := viewportWidth - p.OverlayWidth - p.Margin; x > limit {
		x = limit
	}
	if x < 0 {
		x = 0
	}
	return pointer.Point{X: x, Y: y}
}

// Hover is the popup currently shown, if any.
type Hover struct {
	Active bool
	Label  int
	At     pointer.Point
	Detail Enrichment
}

// Enter returns the hover for the cell carrying label. The result is
// inactive when the table has no entry for the label.
func Enter(p Positioner, cell, container Rect, viewportWidth float64, label int, table Table) Hover {
	detail, ok := table.Lookup(label)
	if !ok {
		return Hover{}
	}
	return Hover{
		Active: true,
		Label:  label,
		At:     p.Place(cell, container, viewportWidth),
		Detail: detail,
	}
}

// Leave clears the hover.
func (Hover) Leave() Hover { return Hover{} }
