// Package engine composes the grid, pager, selection, viewport and overlay
// into one session object driven by the host's event loop. An Engine is not
// safe for concurrent use; the host serialises events onto it.
package engine

import (
	"fmt"

	"github.com/five82/plotgrid/internal/booking"
	"github.com/five82/plotgrid/internal/grid"
	"github.com/five82/plotgrid/internal/overlay"
	"github.com/five82/plotgrid/internal/paging"
	"github.com/five82/plotgrid/internal/pointer"
	"github.com/five82/plotgrid/internal/selection"
	"github.com/five82/plotgrid/internal/viewport"
)

// DefaultZoomStep is the zoom change per wheel notch.
const DefaultZoomStep = 0.1

// Options configures a session.
type Options struct {
	Rows         int
	Cols         int
	Booked       []grid.Position
	PageSize     int
	PricePerUnit float64
	Enrichment   overlay.Table
	Frame        viewport.Frame
	ZoomStep     float64

	OverlayWidth  float64
	OverlayMargin float64

	// OnChange is called after every selection change.
	OnChange func(selection.Change)
}

// Cell is a unit rendered on the current page.
type Cell struct {
	paging.Cell
	grid.Unit
}

// Engine is one plot viewing session.
type Engine struct {
	grid       *grid.Grid
	pager      paging.Pager
	sel        *selection.Controller
	view       viewport.State
	frame      viewport.Frame
	step       float64
	positioner overlay.Positioner
	table      overlay.Table
	hover      overlay.Hover
	price      float64
	page       int
}

// New builds a session. A non-positive PageSize shows the whole grid on one
// page.
func New(opts Options) (*Engine, error) {
	g, err := grid.New(opts.Rows, opts.Cols, opts.Booked)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	size := opts.PageSize
	if size <= 0 {
		size = g.Len()
	}
	pager, err := paging.New(g.Cols(), size, g.Len())
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	step := opts.ZoomStep
	if step <= 0 {
		step = DefaultZoomStep
	}

	var selOpts []selection.Option
	if opts.OnChange != nil {
		selOpts = append(selOpts, selection.WithListener(opts.OnChange))
	}
	return &Engine{
		grid:       g,
		pager:      pager,
		sel:        selection.New(g, selOpts...),
		view:       viewport.Initial(),
		frame:      opts.Frame,
		step:       step,
		positioner: overlay.Positioner{OverlayWidth: opts.OverlayWidth, Margin: opts.OverlayMargin},
		table:      opts.Enrichment,
		price:      opts.PricePerUnit,
		page:       1,
	}, nil
}

// Rows returns the grid row count.
func (e *Engine) Rows() int { return e.grid.Rows() }

// Cols returns the grid column count.
func (e *Engine) Cols() int { return e.grid.Cols() }

// PricePerUnit returns the configured unit price.
func (e *Engine) PricePerUnit() float64 { return e.price }

// Page returns the current page.
func (e *Engine) Page() int { return e.page }

// PageCount returns the number of pages.
func (e *Engine) PageCount() int { return e.pager.PageCount() }

// PageSize returns the number of units per page.
func (e *Engine) PageSize() int { return e.pager.PageSize() }

// SetPage moves to page, clamped to the valid range, and returns the page
// now shown. Changing page clears the hover.
func (e *Engine) SetPage(page int) int {
	next := e.pager.Clamp(page)
	if next != e.page {
		e.page = next
		e.hover = overlay.Hover{}
	}
	return e.page
}

// NextPage advances one page. It reports false on the last page.
func (e *Engine) NextPage() bool {
	before := e.page
	return e.SetPage(e.page+1) != before
}

// PrevPage goes back one page. It reports false on the first page.
func (e *Engine) PrevPage() bool {
	before := e.page
	return e.SetPage(e.page-1) != before
}

// Visible returns the cells of the current page with their unit state.
func (e *Engine) Visible() []Cell {
	cells := e.pager.Visible(e.page)
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		u, ok := e.grid.At(c.Index)
		if !ok {
			continue
		}
		out = append(out, Cell{Cell: c, Unit: u})
	}
	return out
}

// Toggle flips the unit at a flattened index. Indices outside the current
// page are ignored.
func (e *Engine) Toggle(index int) bool {
	start, end := e.pager.Range(e.page)
	if index < start || index >= end {
		return false
	}
	u, ok := e.grid.At(index)
	if !ok {
		return false
	}
	return e.sel.Toggle(u.Position)
}

// ToggleAt flips the unit at pos.
func (e *Engine) ToggleAt(pos grid.Position) bool { return e.sel.Toggle(pos) }

// Remove deselects the unit at pos.
func (e *Engine) Remove(pos grid.Position) bool { return e.sel.Remove(pos) }

// MarkBooked applies confirmed bookings and returns how many units changed.
func (e *Engine) MarkBooked(positions ...grid.Position) int {
	return e.sel.MarkBooked(positions...)
}

// SetFrame updates the layout frame size, e.g. after a terminal resize.
func (e *Engine) SetFrame(f viewport.Frame) { e.frame = f }

// Frame returns the layout frame size.
func (e *Engine) Frame() viewport.Frame { return e.frame }

// Pointer feeds a frame-relative pointer event to the viewport.
func (e *Engine) Pointer(ev pointer.Event) viewport.State {
	e.view = viewport.Apply(e.view, ev, e.frame, e.step)
	return e.view
}

// ZoomAt changes the zoom by delta around p. It reports false when the zoom
// was already at its bound.
func (e *Engine) ZoomAt(delta float64, p pointer.Point) bool {
	next, changed := viewport.ZoomAt(e.view, delta, p)
	e.view = next
	return changed
}

// ZoomStep zooms one step in (dir > 0) or out (dir < 0) around the frame
// centre.
func (e *Engine) ZoomStep(dir int) bool {
	switch {
	case dir > 0:
		return e.ZoomAt(e.step, e.frame.Center())
	case dir < 0:
		return e.ZoomAt(-e.step, e.frame.Center())
	}
	return false
}

// ResetView restores zoom 1 and zero offset.
func (e *Engine) ResetView() { e.view = viewport.Reset(e.view) }

// View returns the current viewport state.
func (e *Engine) View() viewport.State { return e.view }

// Hover shows the popup for the cell with label. The returned hover is
// inactive when the label has no enrichment.
func (e *Engine) Hover(cell, container overlay.Rect, viewportWidth float64, label int) overlay.Hover {
	e.hover = overlay.Enter(e.positioner, cell, container, viewportWidth, label, e.table)
	return e.hover
}

// Unhover clears the popup.
func (e *Engine) Unhover() { e.hover = e.hover.Leave() }

// HoverState returns the popup currently shown.
func (e *Engine) HoverState() overlay.Hover { return e.hover }

// Enrichment looks up the detail for label.
func (e *Engine) Enrichment(label int) (overlay.Enrichment, bool) {
	return e.table.Lookup(label)
}

// Summary returns the selection's unit count and cost.
func (e *Engine) Summary() booking.Summary {
	return booking.Summarize(e.sel.Len(), e.price)
}

// Selected returns the selected units in selection order.
func (e *Engine) Selected() []grid.Unit { return e.sel.Selected() }

// Counts tallies the whole grid.
func (e *Engine) Counts() grid.Counts { return e.grid.Counts() }

// Unit returns the unit at pos.
func (e *Engine) Unit(pos grid.Position) (grid.Unit, bool) { return e.grid.Unit(pos) }

// LabelOf returns the display label of the unit at pos, or 0 when pos is
// out of range.
func (e *Engine) LabelOf(pos grid.Position) int {
	idx := e.grid.Index(pos)
	if idx < 0 {
		return 0
	}
	return e.pager.LabelOf(idx)
}

// Request packages the current selection for submission.
func (e *Engine) Request(id, plotID string) booking.Request {
	return booking.NewRequest(id, plotID, e.sel.Selected(), e.LabelOf, e.Summary(), e.price)
}

// Consistent reports whether grid flags and the selected list agree.
func (e *Engine) Consistent() bool { return e.sel.Consistent() }
