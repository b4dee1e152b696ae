// Package state shares the latest plot availability between the background
// poller and the UI.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Poller):                Consumer (UI):
//	┌─────────────────────┐          ┌──────────────────────┐
//	│ FetchAvailability() │          │                      │
//	│        ↓            │          │                      │
//	│   store.Update()    │─────────→│  store.Snapshot()    │
//	│        ↓            │ (mutex)  │        ↓             │
//	│    repeat...        │          │ engine.MarkBooked()  │
//	└─────────────────────┘          └──────────────────────┘
//
// The UI never lets the poller touch the grid directly. It reads snapshots on
// its own tick and applies newly booked units through the engine, so every
// grid mutation still happens on the event loop.
//
// # Update Semantics
//
//	// Success case: replace booked units, bump Version
//	store.Update(avail, nil)
//
//	// Error case: keep old data, record error
//	store.Update(nil, err)
//	→ Booked, Version unchanged
//	→ LastError = err, ConsecutiveFailures++
//
// Two or more consecutive failures mark the snapshot offline.
//
// The zero Store is ready to use.
package state
