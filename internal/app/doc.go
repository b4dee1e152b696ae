// Package app provides the orchestration layer for plotgrid.
//
// # Overview
//
// This package wires together configuration, logging, the marketplace client,
// availability polling and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/plotgrid/config.toml
//	       ├─────> logging.New()          File logger (the TUI owns the terminal)
//	       ├─────> openPlot()             FetchPlot, or the demo plot offline
//	       ├─────> loadEnrichment()       Unit details, generated when unset
//	       ├─────> resolveLayoutImage()   Configured file, else the plot's image
//	       ├─────> engine.New()           Grid, pages, selection, viewport
//	       ├─────> StartPoller()          Availability updates (online only)
//	       └─────> ui.Run()               Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> FetchAvailability()                │
//	│  └─> store.Update()  (atomic)           │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller refreshes availability every poll interval (default 5 seconds).
// Consecutive failures double the wait, capped at 30 seconds, and two or more
// mark the snapshot offline in the header.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Log file cannot be opened
//   - Plot fetch failure at startup
//   - Enrichment file configured but unreadable
//
// Recoverable errors (logged):
//   - Preferences unreadable (defaults are used)
//   - Layout image missing, unreachable or undecodable (a pattern is drawn)
//   - Availability poll failures
package app
