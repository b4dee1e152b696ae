package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/plotgrid/internal/grid"
)

// Config captures everything plotgrid needs to open a plot session.
type Config struct {
	APIBase string
	PlotID  string

	PageSize      int     `validate:"gt=0,lte=10000"`
	UnitWidth     int     `validate:"gte=3,lte=12"`
	ZoomStep      float64 `validate:"gt=0,lte=1.5"`
	OverlayWidth  int     `validate:"gte=16"`
	OverlayMargin int     `validate:"gte=0"`
	PollInterval  time.Duration

	LayoutImage    string
	EnrichmentFile string
	LogFile        string
	LogLevel       string `validate:"oneof=trace debug info warn warning error"`
	Currency       string
	Locale         string
	ExportDir      string

	// Demo plot used when APIBase is empty.
	Rows         int     `validate:"gt=0,lte=1000"`
	Cols         int     `validate:"gt=0,lte=1000"`
	PricePerUnit float64 `validate:"gte=0"`
	Booked       []grid.Position
}

const (
	defaultConfigPath    = "~/.config/plotgrid/config.toml"
	defaultLogFile       = "~/.local/state/plotgrid/plotgrid.log"
	defaultExportDir     = "~/Downloads"
	defaultPageSize      = 100
	defaultUnitWidth     = 5
	defaultZoomStep      = 0.1
	defaultOverlayWidth  = 30
	defaultOverlayMargin = 1
	defaultPollSeconds   = 5
	defaultLogLevel      = "info"
	defaultCurrency      = "₹"
	defaultLocale        = "en-IN"
	defaultRows          = 10
	defaultCols          = 10
	defaultPricePerUnit  = 25000
)

var defaultBooked = []grid.Position{{Row: 2, Col: 3}, {Row: 5, Col: 7}, {Row: 0, Col: 0}}

var validate = validator.New()

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PageSize:      defaultPageSize,
		UnitWidth:     defaultUnitWidth,
		ZoomStep:      defaultZoomStep,
		OverlayWidth:  defaultOverlayWidth,
		OverlayMargin: defaultOverlayMargin,
		PollInterval:  defaultPollSeconds * time.Second,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      defaultLogLevel,
		Currency:      defaultCurrency,
		Locale:        defaultLocale,
		ExportDir:     mustExpand(defaultExportDir),
		Rows:          defaultRows,
		Cols:          defaultCols,
		PricePerUnit:  defaultPricePerUnit,
		Booked:        append([]grid.Position(nil), defaultBooked...),
	}
}

// Offline reports whether the session runs on the demo plot.
func (c Config) Offline() bool {
	return strings.TrimSpace(c.APIBase) == ""
}

// Load locates and parses the plotgrid config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string   `toml:"api_base"`
		PlotID         string   `toml:"plot_id"`
		PageSize       int      `toml:"page_size"`
		UnitWidth      int      `toml:"unit_width"`
		ZoomStep       float64  `toml:"zoom_step"`
		OverlayWidth   int      `toml:"overlay_width"`
		OverlayMargin  *int     `toml:"overlay_margin"`
		PollSeconds    int      `toml:"poll_seconds"`
		LayoutImage    string   `toml:"layout_image"`
		EnrichmentFile string   `toml:"enrichment_file"`
		LogFile        string   `toml:"log_file"`
		LogLevel       string   `toml:"log_level"`
		Currency       string   `toml:"currency"`
		Locale         string   `toml:"locale"`
		ExportDir      string   `toml:"export_dir"`
		Rows           int      `toml:"rows"`
		Cols           int      `toml:"cols"`
		PricePerUnit   *float64 `toml:"price_per_unit"`
		Booked         []string `toml:"booked"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	cfg.PlotID = strings.TrimSpace(raw.PlotID)

	if raw.PageSize != 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.UnitWidth != 0 {
		cfg.UnitWidth = raw.UnitWidth
	}
	if raw.ZoomStep != 0 {
		cfg.ZoomStep = raw.ZoomStep
	}
	if raw.OverlayWidth != 0 {
		cfg.OverlayWidth = raw.OverlayWidth
	}
	if raw.OverlayMargin != nil {
		cfg.OverlayMargin = *raw.OverlayMargin
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}

	if v := strings.TrimSpace(raw.LayoutImage); v != "" {
		cfg.LayoutImage = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.EnrichmentFile); v != "" {
		cfg.EnrichmentFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.ExportDir); v != "" {
		cfg.ExportDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.Currency); v != "" {
		cfg.Currency = v
	}
	if v := strings.TrimSpace(raw.Locale); v != "" {
		cfg.Locale = v
	}

	if raw.Rows != 0 {
		cfg.Rows = raw.Rows
	}
	if raw.Cols != 0 {
		cfg.Cols = raw.Cols
	}
	if raw.PricePerUnit != nil {
		cfg.PricePerUnit = *raw.PricePerUnit
	}
	if raw.Booked != nil {
		booked, err := parseBooked(raw.Booked)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Booked = booked
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// parseBooked reads "row,col" pairs.
func parseBooked(entries []string) ([]grid.Position, error) {
	out := make([]grid.Position, 0, len(entries))
	for _, entry := range entries {
		rowText, colText, ok := strings.Cut(entry, ",")
		if !ok {
			return nil, fmt.Errorf("booked entry %q: want row,col", entry)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowText))
		if err != nil {
			return nil, fmt.Errorf("booked entry %q: %w", entry, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colText))
		if err != nil {
			return nil, fmt.Errorf("booked entry %q: %w", entry, err)
		}
		out = append(out, grid.Position{Row: row, Col: col})
	}
	return out, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
