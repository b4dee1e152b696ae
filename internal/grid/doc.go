// Package grid holds the unit matrix of a subdivided plot.
//
// A Grid is created once per viewing session with fixed dimensions and is
// never resized. Every unit carries three flags (Available, Selected, Booked)
// and all changes go through Set, which ignores out-of-range positions and
// clears Available and Selected whenever Booked is set. Callers never see a
// booked unit that is also selectable.
//
// The grid has no notion of selection lists, pages or labels; those live in
// the selection and paging packages, which only read units and write through
// Set.
package grid
