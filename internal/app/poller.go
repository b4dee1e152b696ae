package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// availabilityFetcher is the part of marketplace.PlotService the poller uses.
type availabilityFetcher interface {
	FetchAvailability(ctx context.Context, plotID string) (*marketplace.Availability, error)
}

// StartPoller launches a background goroutine that refreshes the store's
// availability for plotID. Consecutive failures back off exponentially up to
// maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client availabilityFetcher, plotID string, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client, plotID, logger)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client availabilityFetcher, plotID string, logger *logrus.Logger) error {
	avail, err := client.FetchAvailability(ctx, plotID)
	if err != nil {
		store.Update(nil, err)
		if ctx.Err() == nil {
			logger.WithError(err).WithField("plot_id", plotID).Warn("availability poll failed")
		}
		return err
	}
	store.Update(avail, nil)
	logger.WithFields(logrus.Fields{
		"plot_id": plotID,
		"booked":  len(avail.Booked),
	}).Debug("availability refreshed")
	return nil
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
