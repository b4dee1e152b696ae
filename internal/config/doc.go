// Package config loads plotgrid's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/plotgrid/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	api_base = "https://plots.example.com/api"  # empty runs the demo plot
//	plot_id = "42"
//	page_size = 100
//	unit_width = 5            # terminal columns per cell
//	zoom_step = 0.1
//	overlay_width = 30
//	overlay_margin = 1
//	poll_seconds = 5
//	layout_image = "~/plots/42.png"
//	enrichment_file = "~/plots/42-units.toml"
//	log_file = "~/.local/state/plotgrid/plotgrid.log"
//	log_level = "info"
//	currency = "₹"
//	locale = "en-IN"
//	export_dir = "~/Downloads"
//
//	# demo plot
//	rows = 10
//	cols = 10
//	price_per_unit = 25000
//	booked = ["2,3", "5,7", "0,0"]
//
// All fields are optional. Tilde expansion is performed for every path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, malformed booked entries and values
// rejected by validation. A missing config file is not an error.
package config
