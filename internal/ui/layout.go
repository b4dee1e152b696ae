package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the selection panel
	// is hidden and its summary moves into the header.
	LayoutCompactWidth = 100

	// LayoutMinFrameWidth is the narrowest layout frame drawn.
	LayoutMinFrameWidth = 12
)

// Fixed regions.
const (
	headerLines = 2
	panelWidth  = 34
	borderSize  = 1
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// SubmitTimeout bounds a booking submission.
	SubmitTimeout = 10 * time.Second
)

// layout is the computed placement of the three body regions. All values
// are terminal cells; the frame fields describe the inner area inside the
// border, which is what the viewport works in.
type layout struct {
	width  int
	height int

	bodyTop    int
	bodyHeight int

	frameLeft   int // inner left edge
	frameTop    int // inner top edge
	frameWidth  int
	frameHeight int

	gridLeft  int
	gridWidth int

	panelLeft int
	panelW    int
}

// computeLayout splits the screen between the frame, the unit grid and the
// selection panel. footer is the height of the key help, cols the number of
// grid columns and unitWidth the width of one cell.
func computeLayout(width, height, footer, cols, unitWidth int) layout {
	l := layout{width: width, height: height}
	l.bodyTop = headerLines
	l.bodyHeight = max(height-headerLines-footer, 3)

	if width >= LayoutCompactWidth {
		l.panelW = panelWidth
	}
	l.gridWidth = cols*unitWidth + 2*borderSize

	outerFrame := width - l.gridWidth - l.panelW
	if outerFrame < LayoutMinFrameWidth+2*borderSize {
		outerFrame = LayoutMinFrameWidth + 2*borderSize
	}

	l.frameLeft = borderSize
	l.frameTop = l.bodyTop + borderSize
	l.frameWidth = outerFrame - 2*borderSize
	l.frameHeight = max(l.bodyHeight-2*borderSize, 1)

	l.gridLeft = outerFrame
	l.panelLeft = l.gridLeft + l.gridWidth
	return l
}

// inFrame reports whether the absolute screen cell (x, y) falls inside the
// frame's inner area, and returns it relative to the frame origin.
func (l layout) inFrame(x, y int) (int, int, bool) {
	rx, ry := x-l.frameLeft, y-l.frameTop
	ok := rx >= 0 && ry >= 0 && rx < l.frameWidth && ry < l.frameHeight
	return rx, ry, ok
}
