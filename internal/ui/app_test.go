package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/plotgrid/internal/booking"
	"github.com/five82/plotgrid/internal/config"
	"github.com/five82/plotgrid/internal/engine"
	"github.com/five82/plotgrid/internal/grid"
	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/overlay"
	"github.com/five82/plotgrid/internal/prefs"
	"github.com/five82/plotgrid/internal/state"
)

type fakeService struct {
	submitErrs []error
	requests   []booking.Request
	avail      *marketplace.Availability
}

func (f *fakeService) FetchPlot(context.Context, string) (*marketplace.Plot, error) {
	return nil, errors.New("not used")
}

func (f *fakeService) FetchAvailability(context.Context, string) (*marketplace.Availability, error) {
	return f.avail, nil
}

func (f *fakeService) SubmitBooking(_ context.Context, req booking.Request) (*marketplace.Confirmation, error) {
	f.requests = append(f.requests, req)
	if len(f.submitErrs) > 0 {
		err := f.submitErrs[0]
		f.submitErrs = f.submitErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &marketplace.Confirmation{BookingID: "bk-1", RequestID: req.RequestID, Status: "confirmed"}, nil
}

func newTestModel(t *testing.T, client marketplace.PlotService, store *state.Store) Model {
	t.Helper()
	return newSizedModel(t, client, store, 20, 140, 40)
}

// newSizedModel builds a 10x10 plot with (0,0) booked, price 1000 and the
// given page size, laid out for a width x height terminal.
func newSizedModel(t *testing.T, client marketplace.PlotService, store *state.Store, pageSize, width, height int) Model {
	t.Helper()
	eng, err := engine.New(engine.Options{
		Rows:         10,
		Cols:         10,
		Booked:       []grid.Position{{Row: 0, Col: 0}},
		PageSize:     pageSize,
		PricePerUnit: 1000,
		Enrichment:   overlay.Generate(10, 10),
		OverlayWidth: 30,
	})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	cfg := config.Default()
	cfg.Locale = "en-US"
	cfg.Currency = "$"
	cfg.ExportDir = t.TempDir()
	m := New(Options{
		Engine:    eng,
		Client:    client,
		Store:     store,
		Config:    &cfg,
		PlotID:    "p1",
		PlotTitle: "Riverside",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	t.Cleanup(m.zones.Close)
	return update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_PagingKeys(t *testing.T) {
	m := newTestModel(t, nil, nil)

	m = update(t, m, keyMsg("n"))
	if got := m.engine.Page(); got != 2 {
		t.Fatalf("page after n = %d, want 2", got)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.engine.Page(); got != 1 {
		t.Fatalf("page after left = %d, want 1", got)
	}
	m = update(t, m, keyMsg("p"))
	if got := m.engine.Page(); got != 1 {
		t.Fatalf("page after p on first page = %d, want 1", got)
	}
}

func TestModel_ResizeSetsFrame(t *testing.T) {
	m := newTestModel(t, nil, nil)
	f := m.engine.Frame()
	if int(f.Width) != m.layout.frameWidth || int(f.Height) != m.layout.frameHeight {
		t.Fatalf("engine frame = %+v, want %dx%d", f, m.layout.frameWidth, m.layout.frameHeight)
	}
}

func TestModel_DragPansFrame(t *testing.T) {
	m := newTestModel(t, nil, nil)
	x, y := m.layout.frameLeft+5, m.layout.frameTop+3

	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.engine.View().Dragging {
		t.Fatalf("expected dragging after press inside frame")
	}
	m = update(t, m, tea.MouseMsg{X: x + 2, Y: y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + 2, Y: y + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	v := m.engine.View()
	if v.Dragging {
		t.Fatalf("still dragging after release")
	}
	if v.Offset.X != 2 || v.Offset.Y != 1 {
		t.Fatalf("offset = %+v, want (2,1)", v.Offset)
	}
}

func TestModel_DragLeavingFrameEnds(t *testing.T) {
	m := newTestModel(t, nil, nil)
	x, y := m.layout.frameLeft+2, m.layout.frameTop+2

	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: m.layout.gridLeft + 3, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.engine.View().Dragging {
		t.Fatalf("drag should end when the pointer leaves the frame")
	}
}

func TestModel_WheelZoomsInsideFrameOnly(t *testing.T) {
	m := newTestModel(t, nil, nil)

	m = update(t, m, tea.MouseMsg{X: m.layout.frameLeft + 1, Y: m.layout.frameTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.engine.View().Zoom; got < 1.09 || got > 1.11 {
		t.Fatalf("zoom after wheel up = %v, want 1.1", got)
	}

	m = update(t, m, tea.MouseMsg{X: m.layout.panelLeft + 2, Y: m.layout.frameTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.engine.View().Zoom; got < 1.09 || got > 1.11 {
		t.Fatalf("zoom after wheel outside frame = %v, want unchanged 1.1", got)
	}

	m = update(t, m, keyMsg("0"))
	if got := m.engine.View().Zoom; got != 1 {
		t.Fatalf("zoom after reset = %v, want 1", got)
	}
}

func TestModel_BookWithoutSelectionWarns(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = update(t, m, keyMsg("b"))
	if m.modal != nil {
		t.Fatalf("modal opened with empty selection")
	}
	if m.status.kind != statusWarning {
		t.Fatalf("status kind = %v, want warning", m.status.kind)
	}
}

func TestModel_DemoBookingFlow(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m.engine.Toggle(1)
	m.engine.Toggle(2)

	m = update(t, m, keyMsg("b"))
	if m.modal == nil {
		t.Fatalf("expected confirm modal")
	}
	m, cmd := updateCmd(t, m, keyMsg("y"))
	if m.modal != nil || cmd == nil {
		t.Fatalf("confirm should close the modal and emit a command")
	}
	m, cmd = updateCmd(t, m, cmd())
	if !m.submitting || cmd == nil {
		t.Fatalf("expected submission in flight")
	}
	m = update(t, m, cmd())

	if m.submitting {
		t.Fatalf("still submitting after result")
	}
	if got := len(m.engine.Selected()); got != 0 {
		t.Fatalf("selected after booking = %d, want 0", got)
	}
	if got := m.engine.Counts().Booked; got != 3 {
		t.Fatalf("booked = %d, want 3", got)
	}
	if m.requestID != "" {
		t.Fatalf("request id should reset after success, got %q", m.requestID)
	}
	if !m.engine.Consistent() {
		t.Fatalf("engine inconsistent after booking")
	}
}

func TestModel_FailedBookingKeepsSelectionAndRequestID(t *testing.T) {
	svc := &fakeService{submitErrs: []error{errors.New("boom"), nil}}
	m := newTestModel(t, svc, nil)
	m.engine.Toggle(3)

	m, cmd := updateCmd(t, m, confirmBookingMsg{})
	m = update(t, m, cmd())
	if got := len(m.engine.Selected()); got != 1 {
		t.Fatalf("selection after failure = %d, want 1", got)
	}
	if m.status.kind != statusError {
		t.Fatalf("status kind = %v, want error", m.status.kind)
	}

	m, cmd = updateCmd(t, m, confirmBookingMsg{})
	m = update(t, m, cmd())

	if len(svc.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(svc.requests))
	}
	if svc.requests[0].RequestID != svc.requests[1].RequestID {
		t.Fatalf("retry used a new request id: %q vs %q", svc.requests[0].RequestID, svc.requests[1].RequestID)
	}
	if got := len(m.engine.Selected()); got != 0 {
		t.Fatalf("selection after retry = %d, want 0", got)
	}
	if svc.requests[1].PlotID != "p1" || svc.requests[1].TotalCost != 1000 {
		t.Fatalf("request = %+v", svc.requests[1])
	}
}

func TestModel_ChangedSelectionGetsNewRequestID(t *testing.T) {
	svc := &fakeService{submitErrs: []error{errors.New("boom"), errors.New("boom")}}
	m := newTestModel(t, svc, nil)
	m.engine.Toggle(3)

	m, cmd := updateCmd(t, m, confirmBookingMsg{})
	m = update(t, m, cmd())
	m.engine.Toggle(4)
	m, cmd = updateCmd(t, m, confirmBookingMsg{})
	_ = update(t, m, cmd())

	if svc.requests[0].RequestID == svc.requests[1].RequestID {
		t.Fatalf("changed selection reused request id %q", svc.requests[0].RequestID)
	}
}

func TestModel_ConflictRefreshesAvailability(t *testing.T) {
	svc := &fakeService{
		submitErrs: []error{marketplace.ErrConflict},
		avail:      &marketplace.Availability{Booked: []marketplace.UnitRef{{Row: 0, Col: 5}}},
	}
	m := newTestModel(t, svc, nil)
	m.engine.Toggle(5)
	m.engine.Toggle(6)

	m, cmd := updateCmd(t, m, confirmBookingMsg{})
	m, cmd = updateCmd(t, m, cmd())
	if cmd == nil {
		t.Fatalf("expected availability refresh after conflict")
	}
	m = update(t, m, cmd())

	sel := m.engine.Selected()
	if len(sel) != 1 || sel[0].Position != (grid.Position{Row: 0, Col: 6}) {
		t.Fatalf("selection after conflict = %+v, want only R0C6", sel)
	}
}

func TestModel_SnapshotAppliedOncePerVersion(t *testing.T) {
	store := &state.Store{}
	m := newTestModel(t, &fakeService{}, store)
	m.engine.Toggle(7)

	store.Update(&marketplace.Availability{Booked: []marketplace.UnitRef{{Row: 0, Col: 7}, {Row: 1, Col: 1}}}, nil)
	m = update(t, m, snapshotMsg(store.Snapshot()))

	if got := m.engine.Counts().Booked; got != 3 {
		t.Fatalf("booked = %d, want 3", got)
	}
	if got := len(m.engine.Selected()); got != 0 {
		t.Fatalf("selection = %d, want 0 after unit booked elsewhere", got)
	}
	if m.appliedVersion != 1 {
		t.Fatalf("appliedVersion = %d, want 1", m.appliedVersion)
	}

	// Errors keep the version; nothing is re-applied.
	store.Update(nil, errors.New("offline"))
	m = update(t, m, snapshotMsg(store.Snapshot()))
	if m.appliedVersion != 1 {
		t.Fatalf("appliedVersion = %d after error, want 1", m.appliedVersion)
	}
}

func TestModel_ThemeCyclePersists(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = update(t, m, keyMsg("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestModel_ViewRenders(t *testing.T) {
	m := newTestModel(t, nil, nil)
	out := m.View()
	if out == "" || out == "Loading..." {
		t.Fatalf("View() = %q", out)
	}
}

func TestModel_PageSheet(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m.engine.Toggle(1)

	sheet := m.pageSheet()
	if sheet.Columns != 10 || len(sheet.Cells) != 20 {
		t.Fatalf("sheet columns=%d cells=%d, want 10 and 20", sheet.Columns, len(sheet.Cells))
	}
	if sheet.Cells[0].Label != 1 || sheet.Cells[1].Label != 2 {
		t.Fatalf("labels = %d,%d, want 1,2", sheet.Cells[0].Label, sheet.Cells[1].Label)
	}
}
