package ui

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"github.com/five82/plotgrid/internal/config"
	"github.com/five82/plotgrid/internal/engine"
	"github.com/five82/plotgrid/internal/logging"
	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/prefs"
	"github.com/five82/plotgrid/internal/state"
	"github.com/five82/plotgrid/internal/viewport"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Engine  *engine.Engine
	// Client submits bookings. Nil runs the offline demo, where bookings
	// are confirmed locally.
	Client      marketplace.PlotService
	Store       *state.Store
	Config      *config.Config
	Logger      *logrus.Logger
	PlotID      string
	PlotTitle   string
	LayoutImage image.Image
	PollTick    time.Duration
	ThemeName   string
	FullHelp    bool
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	engine    *engine.Engine
	client    marketplace.PlotService
	store     *state.Store
	logger    *logrus.Logger
	prefsPath string
	pollTick  time.Duration
	plotID    string
	plotTitle string
	exportDir string
	unitWidth int
	popupW    int

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	zones    *zone.Manager
	money    moneyFormatter
	frameImg *frameImage
	layout   layout
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	status   status

	// Data state
	snapshot       state.Snapshot
	appliedVersion uint64
	lastUpdated    time.Time

	// Booking state. The request id survives failed attempts so a retry of
	// the same selection is idempotent on the server.
	submitting bool
	requestID  string
	requestKey string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	h := help.New()
	h.ShowAll = opts.FullHelp

	return Model{
		ctx:       ctx,
		engine:    opts.Engine,
		client:    opts.Client,
		store:     opts.Store,
		logger:    logger,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		plotID:    opts.PlotID,
		plotTitle: opts.PlotTitle,
		exportDir: cfg.ExportDir,
		unitWidth: cfg.UnitWidth,
		popupW:    cfg.OverlayWidth,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      h,
		zones:     zone.New(),
		money:     newMoneyFormatter(cfg.Locale, cfg.Currency),
		frameImg:  &frameImage{src: opts.LayoutImage},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.relayout()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case confirmBookingMsg:
		return m.submit()

	case bookingResultMsg:
		return m.handleBookingResult(msg)

	case availabilityMsg:
		m.handleAvailability(msg)
		return m, nil

	case statusMsg:
		m.status = status(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	out := m.zones.Scan(m.renderMain())

	if h := m.engine.HoverState(); h.Active {
		x := m.layout.gridLeft + borderSize + int(h.At.X)
		y := m.layout.bodyTop + borderSize + int(h.At.Y)
		out = placeOverlay(x, y, m.renderPopup(h, m.popupW), out)
	}

	if m.modal != nil {
		out = m.modal.View(m.theme, m.width, m.height)
	}
	return out
}

// relayout recomputes the screen split and pushes the frame size to the
// engine.
func (m *Model) relayout() {
	m.help.Width = m.width
	footer := max(len(splitLines(m.help.View(m.keys))), 1)
	m.layout = computeLayout(m.width, m.height, footer, m.engine.Cols(), m.unitWidth)
	m.engine.SetFrame(viewport.Frame{
		Width:  float64(m.layout.frameWidth),
		Height: float64(m.layout.frameHeight),
	})
	m.frameImg.resize(m.layout.frameWidth, m.layout.frameHeight)
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Fetch latest snapshot
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// applySnapshot marks units booked elsewhere. Snapshots already applied are
// skipped by version.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	if !snap.HasAvailability || snap.Version <= m.appliedVersion {
		return
	}
	m.appliedVersion = snap.Version
	if n := m.engine.MarkBooked(snap.Booked...); n > 0 {
		m.logger.WithField("units", n).Info("availability update marked units booked")
		m.status = status{kind: statusWarning, text: pluralUnits(n) + " booked by someone else"}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.zones.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
