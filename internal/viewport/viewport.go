package viewport

import (
	"math"

	"github.com/five82/plotgrid/internal/pointer"
)

// Zoom bounds. Requests outside the range are clamped silently.
const (
	MinZoom = 1.0
	MaxZoom = 2.5
)

// Frame is the on-screen box that holds the layout image. Its origin is the
// top-left corner; pointer positions handed to the transitions are relative
// to it.
type Frame struct {
	Width  float64
	Height float64
}

// Contains reports whether p falls inside the frame.
func (f Frame) Contains(p pointer.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.Width && p.Y < f.Height
}

// Center returns the middle of the frame.
func (f Frame) Center() pointer.Point {
	return pointer.Point{X: f.Width / 2, Y: f.Height / 2}
}

// State is one immutable snapshot of the layout transform.
type State struct {
	Zoom   float64
	Offset pointer.Point
	// Dragging is true between a press inside the frame and the matching
	// release or leave.
	Dragging bool
	// Anchor is pointer - offset captured at press time.
	Anchor pointer.Point
}

// Initial returns the reset state: zoom 1, no offset, idle.
func Initial() State {
	return State{Zoom: MinZoom}
}

// Press starts a drag when p is inside the frame.
func Press(s State, p pointer.Point, frame Frame) State {
	if !frame.Contains(p) {
		return s
	}
	s.Dragging = true
	s.Anchor = p.Sub(s.Offset)
	return s
}

// Drag moves the image with the pointer. Leaving the frame ends the drag.
func Drag(s State, p pointer.Point, frame Frame) State {
	if !s.Dragging {
		return s
	}
	if !frame.Contains(p) {
		return Release(s)
	}
	s.Offset = p.Sub(s.Anchor)
	return s
}

// Release returns to idle unconditionally.
func Release(s State) State {
	s.Dragging = false
	s.Anchor = pointer.Point{}
	return s
}

// ZoomAt changes the zoom by delta keeping the document point under p fixed.
// The second result is false when the clamped zoom equals the current one and
// nothing changed.
func ZoomAt(s State, delta float64, p pointer.Point) (State, bool) {
	cur := s.Zoom
	if cur <= 0 {
		cur = MinZoom
	}
	next := clamp(cur+delta, MinZoom, MaxZoom)
	if next == s.Zoom {
		return s, false
	}
	scale := next / cur
	s.Offset = s.Offset.Sub(p).Scale(scale).Add(p)
	s.Zoom = next
	if s.Dragging {
		s.Anchor = p.Sub(s.Offset)
	}
	return s, true
}

// Reset restores zoom 1 and a zero offset and ends any drag.
func Reset(State) State {
	return Initial()
}

// Apply dispatches a pointer event. Wheel events zoom by step in the
// direction of the event's delta sign; a zero step uses the raw delta.
func Apply(s State, ev pointer.Event, frame Frame, step float64) State {
	switch ev.Kind {
	case pointer.Down:
		return Press(s, ev.Pos, frame)
	case pointer.Move:
		return Drag(s, ev.Pos, frame)
	case pointer.Up, pointer.Leave:
		if !s.Dragging {
			return s
		}
		return Release(s)
	case pointer.Wheel:
		delta := ev.WheelDelta
		if step > 0 && delta != 0 {
			delta = math.Copysign(step, delta)
		}
		next, _ := ZoomAt(s, delta, ev.Pos)
		return next
	}
	return s
}

// ToScreen maps a document point to frame coordinates.
func ToScreen(s State, doc pointer.Point) pointer.Point {
	return s.Offset.Add(doc.Scale(s.Zoom))
}

// ToDocument maps a frame point back to document coordinates.
func ToDocument(s State, screen pointer.Point) pointer.Point {
	z := s.Zoom
	if z <= 0 {
		z = MinZoom
	}
	return screen.Sub(s.Offset).Scale(1 / z)
}

// Percent returns the zoom as a whole percentage for the zoom badge.
func Percent(s State) int {
	return int(math.Round(s.Zoom * 100))
}

// Transform is the scale-then-translate pair applied to the layout image.
// Translation is expressed in pre-scale units.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// ImageTransform returns the transform equivalent to s.
func ImageTransform(s State) Transform {
	z := s.Zoom
	if z <= 0 {
		z = MinZoom
	}
	return Transform{Scale: z, TranslateX: s.Offset.X / z, TranslateY: s.Offset.Y / z}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
