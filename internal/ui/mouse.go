package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/five82/plotgrid/internal/engine"
	"github.com/five82/plotgrid/internal/grid"
	"github.com/five82/plotgrid/internal/overlay"
	"github.com/five82/plotgrid/internal/pointer"
)

// Zone ids for clickable regions.
const (
	zonePrev      = "btn-prev"
	zoneNext      = "btn-next"
	zoneZoomIn    = "btn-zoom-in"
	zoneZoomOut   = "btn-zoom-out"
	zoneReset     = "btn-reset"
	zoneBook      = "btn-book"
	zonePanelBook = "btn-panel-book"
	zoneCopy      = "btn-copy"
	zoneExport    = "btn-export"
)

func cellZoneID(index int) string { return fmt.Sprintf("cell-%d", index) }

func removeZoneID(pos grid.Position) string { return fmt.Sprintf("rm-%d-%d", pos.Row, pos.Col) }

// handleMouse routes mouse input. The frame is hit tested by layout
// coordinates and a drag ends once the pointer leaves it; everything else is
// hit tested through zones.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.modal != nil {
		return m, nil
	}
	if m.handleFrameMouse(msg) {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.updateHover(msg)
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if c, ok := m.cellAt(msg); ok {
			m.toggleCell(c)
			return m, nil
		}
		if pos, ok := m.removeAt(msg); ok {
			m.engine.Remove(pos)
			return m, nil
		}
		return m.clickButton(msg)
	}
	return m, nil
}

// handleFrameMouse feeds frame-relative pointer events to the engine. It
// reports whether the event was consumed.
func (m Model) handleFrameMouse(msg tea.MouseMsg) bool {
	rx, ry, inside := m.layout.inFrame(msg.X, msg.Y)
	x, y := float64(rx), float64(ry)
	dragging := m.engine.View().Dragging

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !inside {
			return false
		}
		delta := 1.0
		if msg.Button == tea.MouseButtonWheelDown {
			delta = -1
		}
		m.engine.Pointer(pointer.FromWheel(x, y, delta))
		return true

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return false
		}
		m.engine.Unhover()
		m.engine.Pointer(pointer.FromMouse(pointer.Down, x, y))
		return true

	case msg.Action == tea.MouseActionMotion && dragging:
		m.engine.Pointer(pointer.FromMouse(pointer.Move, x, y))
		return true

	case msg.Action == tea.MouseActionRelease && dragging:
		m.engine.Pointer(pointer.FromMouse(pointer.Up, x, y))
		return true
	}
	return false
}

func (m *Model) toggleCell(c engine.Cell) {
	if c.Booked {
		m.status = status{kind: statusWarning, text: fmt.Sprintf("Unit %d is already booked", c.Label)}
		return
	}
	m.engine.Toggle(c.Index)
}

// updateHover shows the detail popup for the cell under the pointer.
func (m *Model) updateHover(msg tea.MouseMsg) {
	c, info, ok := m.cellZoneAt(msg)
	if !ok {
		if m.engine.HoverState().Active {
			m.engine.Unhover()
		}
		return
	}
	if h := m.engine.HoverState(); h.Active && h.Label == c.Label {
		return
	}
	container := m.gridContainer()
	cell := overlay.Rect{
		Left:   float64(info.StartX),
		Top:    float64(info.StartY),
		Width:  float64(info.EndX - info.StartX + 1),
		Height: float64(info.EndY - info.StartY + 1),
	}
	m.engine.Hover(cell, container, float64(m.width)-container.Left, c.Label)
}

// gridContainer is the grid's inner area in screen cells.
func (m Model) gridContainer() overlay.Rect {
	return overlay.Rect{
		Left:   float64(m.layout.gridLeft + borderSize),
		Top:    float64(m.layout.bodyTop + borderSize),
		Width:  float64(m.layout.gridWidth - 2*borderSize),
		Height: float64(m.layout.bodyHeight - 2*borderSize),
	}
}

func (m Model) cellAt(msg tea.MouseMsg) (engine.Cell, bool) {
	c, _, ok := m.cellZoneAt(msg)
	return c, ok
}

func (m Model) cellZoneAt(msg tea.MouseMsg) (engine.Cell, *zone.ZoneInfo, bool) {
	for _, c := range m.engine.Visible() {
		if info, ok := m.zoneHit(cellZoneID(c.Index), msg); ok {
			return c, info, true
		}
	}
	return engine.Cell{}, nil, false
}

func (m Model) removeAt(msg tea.MouseMsg) (grid.Position, bool) {
	for _, u := range m.engine.Selected() {
		if _, ok := m.zoneHit(removeZoneID(u.Position), msg); ok {
			return u.Position, true
		}
	}
	return grid.Position{}, false
}

func (m Model) zoneHit(id string, msg tea.MouseMsg) (*zone.ZoneInfo, bool) {
	info := m.zones.Get(id)
	if info == nil || info.IsZero() {
		return nil, false
	}
	return info, info.InBounds(msg)
}

func (m Model) clickButton(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	hit := func(id string) bool {
		_, ok := m.zoneHit(id, msg)
		return ok
	}
	switch {
	case hit(zonePrev):
		m.engine.PrevPage()
	case hit(zoneNext):
		m.engine.NextPage()
	case hit(zoneZoomIn):
		m.engine.ZoomStep(1)
	case hit(zoneZoomOut):
		m.engine.ZoomStep(-1)
	case hit(zoneReset):
		m.engine.ResetView()
	case hit(zoneBook), hit(zonePanelBook):
		return m.startBooking()
	case hit(zoneCopy):
		return m, m.copySummary()
	case hit(zoneExport):
		return m, m.exportPage(timeNow())
	}
	return m, nil
}
