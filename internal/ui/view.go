package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/plotgrid/internal/engine"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: title + counts
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderToolbar())
	b.WriteString("\n")

	// Body: frame | grid | panel
	regions := []string{m.renderFrame(), m.renderGrid()}
	if m.layout.panelW > 0 {
		regions = append(regions, m.renderPanel())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, regions...))
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderFrame draws the layout image, or a parcel pattern when none is
// configured, through the current viewport.
func (m Model) renderFrame() string {
	l := m.layout
	px := m.frameImg.pixel
	if m.frameImg.scaled == nil {
		px = patternPixel(l.frameWidth, l.frameHeight,
			parseHex(m.theme.SurfaceAlt), parseHex(m.theme.FocusBg), parseHex(m.theme.Border))
	}
	cells := sampleFrame(m.engine.View(), l.frameWidth, l.frameHeight, px, parseHex(m.theme.Background))

	style := m.theme.Styles().Frame
	if m.engine.View().Dragging {
		style = style.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	}
	return style.Width(l.frameWidth).Height(l.frameHeight).Render(renderCells(cells))
}

// renderGrid draws the current page of units, one zone per cell.
func (m Model) renderGrid() string {
	l := m.layout
	styles := m.theme.Styles()
	hover := m.engine.HoverState()
	cols := m.engine.Cols()

	var rows [][]string
	for _, c := range m.engine.Visible() {
		for len(rows) <= c.Local.Row {
			rows = append(rows, make([]string, 0, cols))
		}
		style := styles.UnitStyle(cellState(c)).Width(m.unitWidth - 1)
		if hover.Active && hover.Label == c.Label {
			style = styles.UnitStyle(unitHover).Width(m.unitWidth - 1)
		}
		text := strconv.Itoa(c.Label)
		if c.Booked {
			style = style.Strikethrough(true)
		}
		rows[c.Local.Row] = append(rows[c.Local.Row], m.zones.Mark(cellZoneID(c.Index), style.Render(text))+" ")
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Join(r, "")
	}
	inner := l.gridWidth - 2*borderSize
	if fit := l.bodyHeight - 2*borderSize; len(lines) > fit && fit > 0 {
		// Rows past the body are never marked, so they cannot be clicked.
		keep := fit - 1
		lines = append(lines[:keep], styles.WarningText.Render(ansi.Truncate(hiddenRowsHint(len(lines)-keep), inner, "…")))
	}
	return m.theme.Styles().Frame.
		Width(inner).
		Height(l.bodyHeight - 2*borderSize).
		MaxHeight(l.bodyHeight).
		Render(strings.Join(lines, "\n"))
}

func hiddenRowsHint(n int) string {
	noun := "rows"
	if n == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%d %s hidden, enlarge or lower page_size", n, noun)
}

func cellState(c engine.Cell) string {
	switch {
	case c.Booked:
		return unitBooked
	case c.Selected:
		return unitSelected
	default:
		return unitAvailable
	}
}

// renderPanel lists the selected units with remove buttons, then the
// booking summary and the latest status.
func (m Model) renderPanel() string {
	l := m.layout
	styles := m.theme.Styles()
	inner := l.panelW - 2*borderSize - 2
	height := l.bodyHeight - 2*borderSize

	summary := m.engine.Summary()
	footer := []string{
		"",
		styles.MutedText.Render("Units  ") + styles.Text.Render(strconv.Itoa(summary.TotalUnits)),
		styles.MutedText.Render("Total  ") + styles.AccentText.Bold(true).Render(m.money.Format(summary.TotalCost)),
		"",
		m.zones.Mark(zonePanelBook, styles.Button.Render("Book selected")),
	}
	if m.status.text != "" {
		footer = append(footer, "", m.renderStatus(inner))
	}

	header := []string{styles.Text.Bold(true).Render("Selected units"), ""}
	room := max(height-len(header)-len(footer), 1)

	units := m.engine.Selected()
	var list []string
	if len(units) == 0 {
		list = append(list, styles.FaintText.Render("Click a unit to select it"))
	}
	for i, u := range units {
		if len(list) == room-1 && len(units)-i > 1 {
			list = append(list, styles.FaintText.Render(fmt.Sprintf("+%d more", len(units)-i)))
			break
		}
		label := fmt.Sprintf("Unit %-5d %s", m.engine.LabelOf(u.Position), u.ID())
		list = append(list, styles.Text.Render(label)+"  "+m.zones.Mark(removeZoneID(u.Position), styles.DangerText.Render("[x]")))
	}

	lines := append(header, list...)
	lines = append(lines, footer...)
	return m.theme.Styles().Frame.
		Width(l.panelW-2*borderSize).
		Height(height).
		MaxHeight(l.bodyHeight).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus(width int) string {
	styles := m.theme.Styles()
	style := styles.InfoText
	switch m.status.kind {
	case statusSuccess:
		style = styles.SuccessText
	case statusWarning:
		style = styles.WarningText
	case statusError:
		style = styles.DangerText
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(m.status.text)
}
