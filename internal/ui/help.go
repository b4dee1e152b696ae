package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const helpWidth = 44

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// helpSections lists the mouse gestures next to the key bindings they mirror.
// Key entries come from the keyMap so the two never drift apart.
func (m Model) helpSections() []helpSection {
	fromKeys := func(bindings ...key.Binding) []helpItem {
		items := make([]helpItem, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			items = append(items, helpItem{h.Key, h.Desc})
		}
		return items
	}
	k := m.keys
	return []helpSection{
		{"Pages", fromKeys(k.NextPage, k.PrevPage)},
		{"Layout frame", append([]helpItem{
			{"drag", "Pan the layout"},
			{"wheel", "Zoom at the pointer"},
		}, fromKeys(k.ZoomIn, k.ZoomOut, k.ResetView)...)},
		{"Units", append([]helpItem{
			{"click", "Select or deselect"},
			{"hover", "Show unit details"},
			{"[x]", "Remove from selection"},
		}, fromKeys(k.Book, k.Clear, k.Copy, k.Export)...)},
		{"General", fromKeys(k.CycleTheme, k.ToggleKeys, k.Help, k.Quit)},
	}
}

// renderHelp renders the help overlay centred on the screen.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(10)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Plot grid controls"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", helpWidth-6)))
	b.WriteString("\n")

	for _, section := range m.helpSections() {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		for _, item := range section.items {
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
		}
		b.WriteString("\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(helpWidth).
		Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
