package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/plotgrid/internal/export"
	"github.com/five82/plotgrid/internal/grid"
	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleKeys):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.engine.Unhover()
		m.status = status{}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.engine.NextPage() {
			m.engine.Unhover()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.engine.PrevPage() {
			m.engine.Unhover()
		}
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.ZoomStep(1)
		return m, nil

	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.ZoomStep(-1)
		return m, nil

	case key.Matches(msg, m.keys.ResetView):
		m.engine.ResetView()
		return m, nil

	case key.Matches(msg, m.keys.Book):
		return m.startBooking()

	case key.Matches(msg, m.keys.Clear):
		m.clearSelection()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySummary()

	case key.Matches(msg, m.keys.Export):
		return m, m.exportPage(timeNow())
	}

	return m, nil
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, FullHelp: m.help.ShowAll}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.WithError(err).Warn("save prefs")
	}
}

func (m *Model) clearSelection() {
	for _, u := range m.engine.Selected() {
		m.engine.Remove(u.Position)
	}
}

// startBooking opens the confirmation dialog for the current selection.
func (m Model) startBooking() (tea.Model, tea.Cmd) {
	if m.submitting {
		m.status = status{kind: statusInfo, text: "Booking in progress..."}
		return m, nil
	}
	summary := m.engine.Summary()
	if summary.TotalUnits == 0 {
		m.status = status{kind: statusWarning, text: "Select at least one unit to book"}
		return m, nil
	}
	units := m.engine.Selected()
	m.modal = newConfirmModal(
		"Confirm booking",
		fmt.Sprintf("Units: %s", labelList(units, m.engine.LabelOf)),
		fmt.Sprintf("Total units: %d", summary.TotalUnits),
		fmt.Sprintf("Total cost: %s", m.money.Format(summary.TotalCost)),
	)
	return m, nil
}

// submit sends the selection. A retry of an unchanged selection reuses the
// previous request id.
func (m Model) submit() (tea.Model, tea.Cmd) {
	units := m.engine.Selected()
	if len(units) == 0 || m.submitting {
		return m, nil
	}
	selKey := selectionKey(units)
	if m.requestID == "" || m.requestKey != selKey {
		m.requestID = uuid.NewString()
		m.requestKey = selKey
	}
	req := m.engine.Request(m.requestID, m.plotID)
	m.submitting = true
	m.status = status{kind: statusInfo, text: "Submitting booking..."}
	m.logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"units":      req.TotalUnits,
		"total_cost": req.TotalCost,
	}).Info("submitting booking")
	return m, submitBookingCmd(m.ctx, m.client, req)
}

func (m Model) handleBookingResult(msg bookingResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	log := m.logger.WithField("request_id", msg.request.RequestID)

	if msg.err != nil {
		log.WithError(msg.err).Warn("booking failed")
		if errors.Is(msg.err, marketplace.ErrConflict) {
			m.status = status{kind: statusError, text: "Some units were just booked by someone else; refreshing"}
			return m, refreshAvailabilityCmd(m.ctx, m.client, m.plotID)
		}
		m.status = status{kind: statusError, text: fmt.Sprintf("Booking failed: %v (press b to retry)", msg.err)}
		return m, nil
	}

	positions := msg.confirmation.BookedPositions()
	if len(positions) == 0 {
		for _, u := range msg.request.Units {
			positions = append(positions, grid.Position{Row: u.Row, Col: u.Col})
		}
	}
	n := m.engine.MarkBooked(positions...)
	m.requestID, m.requestKey = "", ""
	log.WithFields(logrus.Fields{
		"booking_id": msg.confirmation.BookingID,
		"units":      n,
	}).Info("booking confirmed")
	m.status = status{
		kind: statusSuccess,
		text: fmt.Sprintf("Booked %s · ref %s", pluralUnits(n), msg.confirmation.BookingID),
	}
	return m, nil
}

func (m *Model) handleAvailability(msg availabilityMsg) {
	if msg.err != nil {
		m.logger.WithError(msg.err).Warn("refresh availability")
		return
	}
	if msg.availability == nil {
		return
	}
	if n := m.engine.MarkBooked(msg.availability.BookedPositions()...); n > 0 {
		m.status = status{kind: statusWarning, text: pluralUnits(n) + " removed from your selection; already booked"}
	}
}

func (m Model) copySummary() tea.Cmd {
	units := m.engine.Selected()
	if len(units) == 0 {
		return func() tea.Msg {
			return statusMsg{kind: statusWarning, text: "Nothing selected to copy"}
		}
	}
	return copyCmd(clipboardSummary(m.plotTitle, units, m.engine.LabelOf, m.engine.Summary(), m.money))
}

// exportPage writes the current page to a PNG in the export directory.
func (m Model) exportPage(now time.Time) tea.Cmd {
	path := export.Filename(m.exportDir, m.plotID, m.engine.Page(), now)
	return exportCmd(path, m.pageSheet())
}

func (m Model) pageSheet() export.Sheet {
	visible := m.engine.Visible()
	cells := make([]export.Cell, 0, len(visible))
	for _, c := range visible {
		state := export.Available
		switch {
		case c.Flags.Booked:
			state = export.Booked
		case c.Flags.Selected:
			state = export.Selected
		}
		cells = append(cells, export.Cell{Row: c.Local.Row, Col: c.Local.Col, Label: c.Label, State: state})
	}
	summary := m.engine.Summary()
	title := m.plotTitle
	if title == "" {
		title = "Plot"
	}
	return export.Sheet{
		Title:   fmt.Sprintf("%s · page %d/%d", title, m.engine.Page(), m.engine.PageCount()),
		Summary: fmt.Sprintf("Units: %d  Total: %s", summary.TotalUnits, m.money.Format(summary.TotalCost)),
		Columns: m.engine.Cols(),
		Cells:   cells,
	}
}

func selectionKey(units []grid.Unit) string {
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.ID()
	}
	return strings.Join(ids, ",")
}
