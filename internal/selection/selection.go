// Package selection is the only path that changes which units are selected.
// It keeps the grid's Selected flags and an ordered selected list in step.
package selection

import (
	"github.com/five82/plotgrid/internal/grid"
)

// Reason says why a unit's selection changed.
type Reason int

const (
	Toggled Reason = iota
	Removed
	Booked
)

func (r Reason) String() string {
	switch r {
	case Toggled:
		return "toggled"
	case Removed:
		return "removed"
	case Booked:
		return "booked"
	default:
		return "unknown"
	}
}

// Change is delivered to the listener after every successful mutation.
type Change struct {
	Position grid.Position
	Selected bool
	Reason   Reason
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener registers fn to be called after each change.
func WithListener(fn func(Change)) Option {
	return func(c *Controller) { c.listener = fn }
}

// Controller owns selection state for one grid.
type Controller struct {
	grid     *grid.Grid
	order    []grid.Position
	listener func(Change)
}

// New returns a controller over g. Units already flagged Selected in g are
// adopted into the list in row-major order.
func New(g *grid.Grid, opts ...Option) *Controller {
	c := &Controller{grid: g}
	for _, opt := range opts {
		opt(c)
	}
	for _, u := range g.Units() {
		if u.Selected {
			c.order = append(c.order, u.Position)
		}
	}
	return c
}

// Toggle flips the selection of the unit at pos. Booked, unavailable or
// out-of-range units are left alone and Toggle reports false.
func (c *Controller) Toggle(pos grid.Position) bool {
	u, ok := c.grid.Unit(pos)
	if !ok || !u.Selectable() {
		return false
	}
	selected := !u.Selected
	c.setSelected(u, selected)
	c.notify(Change{Position: pos, Selected: selected, Reason: Toggled})
	return true
}

// Remove deselects the unit at pos. It reports false when the unit was not
// selected.
func (c *Controller) Remove(pos grid.Position) bool {
	u, ok := c.grid.Unit(pos)
	if !ok || !u.Selected {
		return false
	}
	c.setSelected(u, false)
	c.notify(Change{Position: pos, Selected: false, Reason: Removed})
	return true
}

// MarkBooked records confirmed bookings. Each newly booked unit leaves the
// selected list in the same step. It returns how many units changed.
func (c *Controller) MarkBooked(positions ...grid.Position) int {
	n := 0
	for _, pos := range positions {
		u, ok := c.grid.Unit(pos)
		if !ok || u.Booked {
			continue
		}
		wasSelected := u.Selected
		c.grid.Set(pos, grid.Flags{Booked: true})
		if wasSelected {
			c.drop(pos)
		}
		n++
		c.notify(Change{Position: pos, Selected: false, Reason: Booked})
	}
	return n
}

// Selected returns the selected units in the order they were selected.
func (c *Controller) Selected() []grid.Unit {
	out := make([]grid.Unit, 0, len(c.order))
	for _, pos := range c.order {
		if u, ok := c.grid.Unit(pos); ok {
			out = append(out, u)
		}
	}
	return out
}

// Contains reports whether pos is in the selected list.
func (c *Controller) Contains(pos grid.Position) bool {
	for _, p := range c.order {
		if p == pos {
			return true
		}
	}
	return false
}

// Len returns the number of selected units.
func (c *Controller) Len() int { return len(c.order) }

// Consistent reports whether the list and the grid flags agree exactly.
func (c *Controller) Consistent() bool {
	listed := make(map[grid.Position]bool, len(c.order))
	for _, pos := range c.order {
		if listed[pos] {
			return false
		}
		listed[pos] = true
	}
	flagged := 0
	for _, u := range c.grid.Units() {
		if u.Selected {
			flagged++
			if !listed[u.Position] {
				return false
			}
		}
	}
	return flagged == len(listed)
}

func (c *Controller) setSelected(u grid.Unit, selected bool) {
	flags := u.Flags
	flags.Selected = selected
	c.grid.Set(u.Position, flags)
	if selected {
		c.order = append(c.order, u.Position)
	} else {
		c.drop(u.Position)
	}
}

func (c *Controller) drop(pos grid.Position) {
	for i, p := range c.order {
		if p == pos {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *Controller) notify(ch Change) {
	if c.listener != nil {
		c.listener(ch)
	}
}
