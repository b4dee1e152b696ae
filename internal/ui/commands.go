package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/plotgrid/internal/booking"
	"github.com/five82/plotgrid/internal/export"
	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/state"
)

var timeNow = time.Now

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type bookingResultMsg struct {
	request      booking.Request
	confirmation *marketplace.Confirmation
	err          error
}

type availabilityMsg struct {
	availability *marketplace.Availability
	err          error
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

type status struct {
	kind statusKind
	text string
}

type statusMsg status

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// submitBookingCmd sends req to the marketplace. Without a client the
// booking is confirmed locally.
func submitBookingCmd(ctx context.Context, client marketplace.PlotService, req booking.Request) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return bookingResultMsg{request: req, confirmation: demoConfirmation(req)}
		}
		ctx, cancel := context.WithTimeout(ctx, SubmitTimeout)
		defer cancel()
		conf, err := client.SubmitBooking(ctx, req)
		return bookingResultMsg{request: req, confirmation: conf, err: err}
	}
}

func demoConfirmation(req booking.Request) *marketplace.Confirmation {
	units := make([]marketplace.UnitRef, 0, len(req.Units))
	for _, u := range req.Units {
		units = append(units, marketplace.UnitRef{Row: u.Row, Col: u.Col})
	}
	ref := req.RequestID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return &marketplace.Confirmation{
		BookingID: "demo-" + ref,
		RequestID: req.RequestID,
		Status:    "confirmed",
		Units:     units,
	}
}

// refreshAvailabilityCmd fetches availability out of band, e.g. after a
// booking conflict.
func refreshAvailabilityCmd(ctx context.Context, client marketplace.PlotService, plotID string) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, SubmitTimeout)
		defer cancel()
		avail, err := client.FetchAvailability(ctx, plotID)
		return availabilityMsg{availability: avail, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{kind: statusError, text: fmt.Sprintf("Copy failed: %v", err)}
		}
		return statusMsg{kind: statusSuccess, text: "Summary copied to clipboard"}
	}
}

func exportCmd(path string, sheet export.Sheet) tea.Cmd {
	return func() tea.Msg {
		if err := export.SavePNG(path, sheet); err != nil {
			return statusMsg{kind: statusError, text: fmt.Sprintf("Export failed: %v", err)}
		}
		return statusMsg{kind: statusSuccess, text: "Exported " + path}
	}
}

func pluralUnits(n int) string {
	if n == 1 {
		return "1 unit"
	}
	return fmt.Sprintf("%d units", n)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
