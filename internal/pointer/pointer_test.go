package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 3, Y: -2}
	q := Point{X: 1, Y: 4}
	assert.Equal(t, Point{X: 4, Y: 2}, p.Add(q))
	assert.Equal(t, Point{X: 2, Y: -6}, p.Sub(q))
	assert.Equal(t, Point{X: 6, Y: -4}, p.Scale(2))
}

func TestFromTouches_FirstTouchWins(t *testing.T) {
	ev := FromTouches(Down, []Point{{X: 10, Y: 20}, {X: 99, Y: 99}})
	assert.Equal(t, Event{Kind: Down, Source: Touch, Pos: Point{X: 10, Y: 20}}, ev)
}

func TestFromTouches_NoTouches(t *testing.T) {
	assert.Equal(t, Up, FromTouches(Up, nil).Kind)
	assert.Equal(t, Leave, FromTouches(Move, nil).Kind)
}

func TestFromMouseAndWheel(t *testing.T) {
	assert.Equal(t, Event{Kind: Move, Source: Mouse, Pos: Point{X: 1, Y: 2}}, FromMouse(Move, 1, 2))
	ev := FromWheel(5, 6, -0.1)
	assert.Equal(t, Wheel, ev.Kind)
	assert.Equal(t, -0.1, ev.WheelDelta)
	assert.Equal(t, "wheel", ev.Kind.String())
}
