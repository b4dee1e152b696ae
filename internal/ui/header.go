package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/plotgrid/internal/viewport"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("plotgrid", styles.Logo)}
	if m.plotTitle != "" {
		parts = append(parts, bg.Render(m.plotTitle, styles.Text.Bold(true)))
	}
	parts = append(parts, m.renderConnection(styles, bg))

	counts := m.engine.Counts()
	parts = append(parts,
		bg.Field("Price", m.money.Format(m.engine.PricePerUnit()), styles.MutedText, styles.Text),
		bg.Field("Available", m.money.Count(counts.Available), styles.MutedText, styles.SuccessText),
		bg.Field("Booked", m.money.Count(counts.Booked), styles.MutedText, styles.FaintText),
	)

	// Compact layouts hide the panel, so the summary moves up here.
	if m.layout.panelW == 0 {
		summary := m.engine.Summary()
		parts = append(parts,
			bg.Field("Selected", fmt.Sprintf("%d", summary.TotalUnits), styles.MutedText, styles.AccentText),
			bg.Field("Total", m.money.Format(summary.TotalCost), styles.MutedText, styles.AccentText),
		)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxHeight(1).
		Render(bg.Join(parts, "  "))
}

// renderConnection shows whether availability is live.
func (m Model) renderConnection(styles Styles, bg BgStyle) string {
	switch {
	case m.client == nil:
		return bg.Render("● DEMO", styles.InfoText)
	case m.snapshot.IsOffline():
		return bg.Render("● OFFLINE", styles.DangerText) + bg.Space() +
			bg.Render("Retrying...", styles.WarningText)
	case m.store != nil && !m.snapshot.HasAvailability:
		return bg.Render("● CONNECTING", styles.WarningText)
	default:
		return bg.Render("● LIVE", styles.SuccessText)
	}
}

// renderToolbar renders the clickable command bar.
func (m Model) renderToolbar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	buttons := []string{
		m.zones.Mark(zonePrev, styles.Button.Render("◀ Prev")),
		m.zones.Mark(zoneNext, styles.Button.Render("Next ▶")),
		m.zones.Mark(zoneZoomOut, styles.Button.Render("−")),
		m.zones.Mark(zoneZoomIn, styles.Button.Render("+")),
		m.zones.Mark(zoneReset, styles.Button.Render("Reset")),
		m.zones.Mark(zoneBook, styles.Button.Render("Book")),
		m.zones.Mark(zoneCopy, styles.Button.Render("Copy")),
		m.zones.Mark(zoneExport, styles.Button.Render("Export PNG")),
	}

	view := m.engine.View()
	info := fmt.Sprintf("Page %d/%d  Zoom %d%%", m.engine.Page(), m.engine.PageCount(), viewport.Percent(view))
	if view.Offset.X != 0 || view.Offset.Y != 0 {
		info += fmt.Sprintf("  Pan %+.0f,%+.0f", view.Offset.X, view.Offset.Y)
	}

	line := bg.Join(buttons, " ") + bg.Spaces(2) + bg.Render(info, styles.MutedText)
	// Without the panel the status has nowhere else to go.
	if m.layout.panelW == 0 && m.status.text != "" {
		line += bg.Spaces(2) + m.renderStatus(0)
	}
	return bg.FillLine(line, m.width)
}
