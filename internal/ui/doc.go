// Package ui provides the terminal user interface for plotgrid.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns an engine.Engine and is the only
// goroutine that mutates it: keyboard and mouse messages, availability
// snapshots and booking results all arrive as tea.Msg values and are applied
// in Update.
//
// # Screen Layout
//
//	┌ header: plot title, live/demo state, price, counts ───────────────┐
//	│ toolbar: Prev Next − + Reset Book Copy Export   Page 1/3 Zoom 100% │
//	├──────────────────────┬──────────────┬──────────────────────────────┤
//	│ layout frame         │ unit grid    │ selected units [x]           │
//	│ (pan / zoom)         │ (page cells) │ total units, total cost      │
//	├──────────────────────┴──────────────┴──────────────────────────────┤
//	│ key help                                                           │
//	└────────────────────────────────────────────────────────────────────┘
//
// Below LayoutCompactWidth the selection panel is hidden and its summary
// moves into the header.
//
// # Mouse Input
//
// The layout frame is hit tested by coordinates so a drag can be followed
// after the pointer leaves it, which ends the drag. Grid cells, remove
// buttons and toolbar buttons are bubblezone zones, scanned once per View.
//
// # Layout Frame
//
// The frame is drawn with half-block characters. Each terminal cell samples
// two document points through viewport.ToDocument, so panning and zooming
// match the pointer math exactly. Without a layout image a parcel pattern is
// drawn instead.
//
// # Themes
//
// Three themes ship: Nightfox (default), Kanagawa and Slate. The chosen theme
// and the key help expansion persist via the prefs package.
package ui
