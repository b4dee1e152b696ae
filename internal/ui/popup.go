package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/plotgrid/internal/overlay"
)

// renderPopup draws the unit-detail box for a hover. width is the outer
// width of the box including border and padding.
func (m Model) renderPopup(h overlay.Hover, width int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 8)

	lines := []string{
		styles.AccentText.Bold(true).Render(fmt.Sprintf("Unit %d", h.Label)),
	}
	if h.Detail.Dimension != "" {
		lines = append(lines, "Size    "+h.Detail.Dimension)
	}
	if h.Detail.Facing != "" {
		lines = append(lines, "Facing  "+h.Detail.Facing)
	}
	if h.Detail.Sqft > 0 {
		lines = append(lines, "Area    "+m.money.Count(int(h.Detail.Sqft))+" sq ft")
	}
	if h.Detail.ImageURL != "" {
		lines = append(lines, styles.FaintText.Render(wordwrap.String(h.Detail.ImageURL, inner)))
	}
	body := wordwrap.String(strings.Join(lines, "\n"), inner)
	return styles.Popup.Width(width - 2).Render(body)
}

// placeOverlay splices fg over bg with its top-left corner at cell (x, y).
// Lines of fg falling outside bg are dropped; short bg lines are padded.
func placeOverlay(x, y int, fg, bg string) string {
	if x < 0 {
		x = 0
	}
	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		base := bgLines[row]
		if w := ansi.StringWidth(base); w < x {
			base += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+ansi.StringWidth(line), "")
		bgLines[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
