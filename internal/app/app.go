package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"

	"github.com/five82/plotgrid/internal/config"
	"github.com/five82/plotgrid/internal/engine"
	"github.com/five82/plotgrid/internal/grid"
	"github.com/five82/plotgrid/internal/logging"
	"github.com/five82/plotgrid/internal/marketplace"
	"github.com/five82/plotgrid/internal/overlay"
	"github.com/five82/plotgrid/internal/prefs"
	"github.com/five82/plotgrid/internal/selection"
	"github.com/five82/plotgrid/internal/state"
	"github.com/five82/plotgrid/internal/ui"
)

const (
	fetchPlotTimeout  = 5 * time.Second
	fetchImageTimeout = 10 * time.Second
)

// Options configure the plotgrid application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/plotgrid/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	Demo       bool   // ignore api_base and open the demo plot
}

// plotSession is what Run needs to open a plot, from either the marketplace
// or the demo config.
type plotSession struct {
	plotID string
	title  string
	rows   int
	cols   int
	price  float64
	booked []grid.Position
	client marketplace.PlotService
	// layoutRef is the plot's own background image, fetched through assets.
	layoutRef string
	assets    assetFetcher
}

// assetFetcher downloads files referenced by plot metadata.
type assetFetcher interface {
	FetchAsset(ctx context.Context, ref string) ([]byte, error)
}

// Run boots the plotgrid TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel, App: "plotgrid"})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.WithError(err).Warn("load prefs, using defaults")
	}

	sess, err := openPlot(ctx, cfg, opts.Demo, logger)
	if err != nil {
		return err
	}

	table, err := loadEnrichment(cfg.EnrichmentFile, sess.rows, sess.cols)
	if err != nil {
		return err
	}

	layout := resolveLayoutImage(ctx, cfg.LayoutImage, sess.layoutRef, sess.assets, logger)

	eng, err := engine.New(engine.Options{
		Rows:          sess.rows,
		Cols:          sess.cols,
		Booked:        sess.booked,
		PageSize:      cfg.PageSize,
		PricePerUnit:  sess.price,
		Enrichment:    table,
		ZoomStep:      cfg.ZoomStep,
		OverlayWidth:  float64(cfg.OverlayWidth),
		OverlayMargin: float64(cfg.OverlayMargin),
		OnChange:      logSelection(logger),
	})
	if err != nil {
		return fmt.Errorf("open plot: %w", err)
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	var store *state.Store
	if sess.client != nil {
		store = &state.Store{}
		// Start background poller
		StartPoller(ctx, store, sess.client, sess.plotID, interval, logger)
	}

	logger.WithFields(logrus.Fields{
		"plot_id": sess.plotID,
		"rows":    sess.rows,
		"cols":    sess.cols,
		"demo":    sess.client == nil,
	}).Info("plot session started")

	uiOpts := ui.Options{
		Context:     ctx,
		Engine:      eng,
		Client:      sess.client,
		Store:       store,
		Config:      &cfg,
		Logger:      logger,
		PlotID:      sess.plotID,
		PlotTitle:   sess.title,
		LayoutImage: layout,
		ThemeName:   userPrefs.Theme,
		FullHelp:    userPrefs.FullHelp,
		PrefsPath:   opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// openPlot loads the plot from the marketplace, or the demo plot when no API
// is configured.
func openPlot(ctx context.Context, cfg config.Config, demo bool, logger *logrus.Logger) (plotSession, error) {
	if demo || cfg.Offline() {
		return plotSession{
			plotID: cfg.PlotID,
			title:  "Demo plot",
			rows:   cfg.Rows,
			cols:   cfg.Cols,
			price:  cfg.PricePerUnit,
			booked: cfg.Booked,
		}, nil
	}

	client, err := marketplace.NewClient(cfg.APIBase)
	if err != nil {
		return plotSession{}, fmt.Errorf("init marketplace client: %w", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchPlotTimeout)
	defer cancel()
	plot, err := client.FetchPlot(fetchCtx, cfg.PlotID)
	if err != nil {
		return plotSession{}, fmt.Errorf("fetch plot %q: %w", cfg.PlotID, err)
	}
	logger.WithField("plot_id", plot.ID).Debug("plot fetched")

	title := plot.Title
	if plot.Location != "" {
		title += " · " + plot.Location
	}
	return plotSession{
		plotID:    cfg.PlotID,
		title:     strings.TrimSpace(title),
		rows:      plot.Rows,
		cols:      plot.Cols,
		price:     plot.PricePerUnit,
		booked:    plot.BookedPositions(),
		client:    client,
		layoutRef: strings.TrimSpace(plot.LayoutImage),
		assets:    client,
	}, nil
}

// loadEnrichment reads the unit detail table, or generates the demo table
// when no file is configured.
func loadEnrichment(path string, rows, cols int) (overlay.Table, error) {
	if path == "" {
		return overlay.Generate(rows, cols), nil
	}
	table, err := overlay.LoadTable(path)
	if err != nil {
		return overlay.Table{}, fmt.Errorf("load enrichment: %w", err)
	}
	return table, nil
}

// resolveLayoutImage picks the frame background: the configured local file
// first, then the image the plot itself references. Nil means neither could
// be loaded and the frame draws its pattern.
func resolveLayoutImage(ctx context.Context, localPath, plotRef string, assets assetFetcher, logger *logrus.Logger) image.Image {
	if localPath != "" {
		img, err := loadLayoutImage(localPath)
		if err == nil {
			return img
		}
		logger.WithError(err).WithField("path", localPath).Warn("configured layout image unavailable")
	}
	if plotRef == "" || assets == nil {
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchImageTimeout)
	defer cancel()
	data, err := assets.FetchAsset(fetchCtx, plotRef)
	if err == nil {
		var img image.Image
		if img, err = decodeLayoutImage(bytes.NewReader(data)); err == nil {
			logger.WithField("ref", plotRef).Debug("plot layout image loaded")
			return img
		}
	}
	logger.WithError(err).WithField("ref", plotRef).Warn("plot layout image unavailable")
	return nil
}

func loadLayoutImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout image: %w", err)
	}
	defer f.Close()
	return decodeLayoutImage(f)
}

func decodeLayoutImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode layout image: %w", err)
	}
	return img, nil
}

func logSelection(logger *logrus.Logger) func(selection.Change) {
	return func(c selection.Change) {
		logger.WithFields(logrus.Fields{
			"unit":     fmt.Sprintf("R%dC%d", c.Position.Row, c.Position.Col),
			"selected": c.Selected,
			"reason":   c.Reason.String(),
		}).Debug("selection changed")
	}
}
