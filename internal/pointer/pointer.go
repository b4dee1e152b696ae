// Package pointer unifies mouse and touch input into one event type carrying
// only the coordinates the grid engine needs.
package pointer

// Point is a 2D position or vector in frame coordinates.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p * k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Kind is the gesture phase.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Leave
	Wheel
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Leave:
		return "leave"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Source records which device produced the event.
type Source int

const (
	Mouse Source = iota
	Touch
)

// Event is a device-independent pointer event.
type Event struct {
	Kind   Kind
	Source Source
	Pos    Point
	// WheelDelta is the requested zoom change for Wheel events. Positive
	// zooms in.
	WheelDelta float64
}

// FromMouse builds an event from mouse coordinates.
func FromMouse(kind Kind, x, y float64) Event {
	return Event{Kind: kind, Source: Mouse, Pos: Point{X: x, Y: y}}
}

// FromTouches builds an event from the active touch list. The first touch is
// the one tracked. A touch end reports no remaining touches and becomes Up;
// any other kind with no touches is treated as Leave.
func FromTouches(kind Kind, touches []Point) Event {
	if len(touches) == 0 {
		if kind == Up {
			return Event{Kind: Up, Source: Touch}
		}
		return Event{Kind: Leave, Source: Touch}
	}
	return Event{Kind: kind, Source: Touch, Pos: touches[0]}
}

// FromWheel builds a zoom request at (x, y).
func FromWheel(x, y, delta float64) Event {
	return Event{Kind: Wheel, Source: Mouse, Pos: Point{X: x, Y: y}, WheelDelta: delta}
}
