// Package viewport computes the zoom and pan applied to a plot's layout image.
//
// Every transition is a pure function of the current State and one input, so
// zoom may interleave with an active drag without losing updates. Screen
// coordinates relate to document coordinates by screen = offset + zoom*doc.
// Zoom is clamped to [MinZoom, MaxZoom]; the offset is never clamped, so the
// image can be panned freely even when unzoomed.
package viewport
