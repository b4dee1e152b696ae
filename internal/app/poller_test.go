package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/plotgrid/internal/logging"
	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	calls atomic.Int32
	err   error
	avail *marketplace.Availability
}

func (f *fakeFetcher) FetchAvailability(context.Context, string) (*marketplace.Availability, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.avail, nil
}

func TestRefresh_UpdatesStore(t *testing.T) {
	store := &state.Store{}
	fetcher := &fakeFetcher{avail: &marketplace.Availability{Booked: []marketplace.UnitRef{{Row: 1, Col: 2}}}}

	if err := refresh(context.Background(), store, fetcher, "p1", logging.Discard()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	snap := store.Snapshot()
	if !snap.HasAvailability || snap.Version != 1 || len(snap.Booked) != 1 {
		t.Fatalf("snapshot = %+v, want one booked unit at version 1", snap)
	}
}

func TestRefresh_RecordsFailure(t *testing.T) {
	store := &state.Store{}
	fetcher := &fakeFetcher{err: errors.New("down")}

	for i := 0; i < 2; i++ {
		if err := refresh(context.Background(), store, fetcher, "p1", logging.Discard()); err == nil {
			t.Fatalf("refresh should fail")
		}
	}
	snap := store.Snapshot()
	if !snap.IsOffline() || snap.ConsecutiveFailures != 2 {
		t.Fatalf("snapshot = %+v, want offline after two failures", snap)
	}
}

func TestStartPoller_PollsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &state.Store{}
	fetcher := &fakeFetcher{avail: &marketplace.Availability{}}

	StartPoller(ctx, store, fetcher, "p1", 10*time.Millisecond, logging.Discard())

	deadline := time.Now().Add(2 * time.Second)
	for fetcher.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d calls, want at least 3", fetcher.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	time.Sleep(30 * time.Millisecond)
	after := fetcher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := fetcher.calls.Load(); got != after {
		t.Fatalf("poller kept running after cancel: %d -> %d calls", after, got)
	}
}

func TestLoadEnrichment_DefaultsToGenerated(t *testing.T) {
	table, err := loadEnrichment("", 3, 4)
	if err != nil {
		t.Fatalf("loadEnrichment: %v", err)
	}
	if table.Len() != 12 {
		t.Fatalf("table.Len() = %d, want 12", table.Len())
	}
	if _, err := loadEnrichment(filepath.Join(t.TempDir(), "missing.toml"), 3, 4); err == nil {
		t.Fatalf("missing enrichment file should fail")
	}
}

func TestLoadLayoutImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.png")
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.White)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	got, err := loadLayoutImage(path)
	if err != nil {
		t.Fatalf("loadLayoutImage: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", got.Bounds())
	}

	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadLayoutImage(path); err == nil {
		t.Fatalf("garbage should fail to decode")
	}
}
