package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/plotgrid/internal/grid"
	"github.com/five82/plotgrid/internal/marketplace"
)

// Snapshot represents the latest availability data available to the UI.
type Snapshot struct {
	Booked          []grid.Position
	HasAvailability bool
	// Version increases on every successful update so the UI can skip
	// snapshots it has already applied.
	Version             uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(avail *marketplace.Availability, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if avail != nil {
		s.snapshot.Booked = clonePositions(avail.BookedPositions())
		s.snapshot.HasAvailability = true
	} else {
		s.snapshot.Booked = nil
		s.snapshot.HasAvailability = false
	}
	s.snapshot.Version++
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Booked = clonePositions(s.snapshot.Booked)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func clonePositions(items []grid.Position) []grid.Position {
	if len(items) == 0 {
		return nil
	}
	dup := make([]grid.Position, len(items))
	copy(dup, items)
	return dup
}
