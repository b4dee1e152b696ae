package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Unit states as they appear on the grid. Every theme maps each one to a
// cell colour.
const (
	unitAvailable = "available"
	unitSelected  = "selected"
	unitBooked    = "booked"
	unitHover     = "hover"
)

// Theme is a named palette for the plot screen.
type Theme struct {
	Name string

	Background  string // behind the frame and grid
	Surface     string // header bar
	SurfaceAlt  string // buttons and the hover popup
	FocusBg     string // toolbar while a drag is active
	Border      string
	BorderFocus string // frame border while dragging

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	UnitColors map[string]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Logo   lipgloss.Style
	Frame  lipgloss.Style
	Button lipgloss.Style
	Popup  lipgloss.Style

	unitColors map[string]string
	background string
	muted      string
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Logo: fg(t.Warning).Bold(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
		Button: fg(t.Text).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 1),
		Popup: fg(t.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 1),

		unitColors: t.UnitColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// UnitStyle returns the cell style for a unit state. Unknown states use the
// muted colour.
func (s Styles) UnitStyle(state string) lipgloss.Style {
	color, ok := s.unitColors[state]
	if !ok || color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Align(lipgloss.Center)
}

// WithBackground returns a copy whose text styles paint bgColor explicitly,
// so segments placed on a bar do not fall through to the terminal default.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// Palettes: Nightfox (EdenEast/nightfox.nvim), Kanagawa (rebelot/kanagawa.nvim),
// Slate (Tailwind slate/sky).
var themeList = []Theme{
	{
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", FocusBg: "#29394f",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		UnitColors: map[string]string{
			unitAvailable: "#81b29a",
			unitSelected:  "#719cd6",
			unitBooked:    "#39506d",
			unitHover:     "#dbc074",
		},
	},
	{
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", FocusBg: "#2D4F67",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		UnitColors: map[string]string{
			unitAvailable: "#98BB6C",
			unitSelected:  "#7E9CD8",
			unitBooked:    "#54546D",
			unitHover:     "#E6C384",
		},
	},
	{
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", FocusBg: "#283548",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		UnitColors: map[string]string{
			unitAvailable: "#22c55e",
			unitSelected:  "#0284c7",
			unitBooked:    "#475569",
			unitHover:     "#f59e0b",
		},
	},
}

// GetTheme returns the named theme, or the first one when the name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themeList {
		if t.Name == name {
			return t
		}
	}
	return themeList[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themeList {
		if t.Name == current {
			return themeList[(i+1)%len(themeList)].Name
		}
	}
	return themeList[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeList))
	for i, t := range themeList {
		names[i] = t.Name
	}
	return names
}
