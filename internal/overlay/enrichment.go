package overlay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Enrichment is descriptive metadata shown for one unit.
type Enrichment struct {
	ImageURL  string
	Dimension string
	Facing    string
	Sqft      float64
}

// Table is a read-only mapping from display label to enrichment.
type Table struct {
	entries map[int]Enrichment
}

// NewTable copies entries into a new table.
func NewTable(entries map[int]Enrichment) Table {
	dup := make(map[int]Enrichment, len(entries))
	for k, v := range entries {
		dup[k] = v
	}
	return Table{entries: dup}
}

// Lookup returns the enrichment for label.
func (t Table) Lookup(label int) (Enrichment, bool) {
	e, ok := t.entries[label]
	return e, ok
}

// Len returns the number of labels with enrichment.
func (t Table) Len() int { return len(t.entries) }

type tableEntry struct {
	Label     int     `toml:"label"`
	ImageURL  string  `toml:"image_url"`
	Dimension string  `toml:"dimension"`
	Facing    string  `toml:"facing"`
	Sqft      float64 `toml:"sqft"`
}

type tableFile struct {
	Units []tableEntry `toml:"unit"`
}

// LoadTable reads a TOML file of [[unit]] entries keyed by label.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open enrichment: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Table{}, fmt.Errorf("read enrichment: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes the TOML enrichment format.
func ParseTable(data []byte) (Table, error) {
	var raw tableFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Table{}, fmt.Errorf("parse enrichment: %w", err)
	}
	entries := make(map[int]Enrichment, len(raw.Units))
	for _, u := range raw.Units {
		if u.Label <= 0 {
			return Table{}, fmt.Errorf("parse enrichment: %w: %d", ErrInvalidLabel, u.Label)
		}
		entries[u.Label] = Enrichment{
			ImageURL:  u.ImageURL,
			Dimension: u.Dimension,
			Facing:    u.Facing,
			Sqft:      u.Sqft,
		}
	}
	return Table{entries: entries}, nil
}

// ErrInvalidLabel is returned for enrichment entries without a positive label.
var ErrInvalidLabel = errors.New("invalid unit label")

var facings = [...]string{"East", "West", "North", "South"}

// Generate builds the demonstration table for a rows x cols plot: unit
// (r, c) measures (30+r) x (40+c) ft and facing cycles with r+c.
func Generate(rows, cols int) Table {
	entries := make(map[int]Enrichment, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			w, d := 30+r, 40+c
			entries[r*cols+c+1] = Enrichment{
				ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%d/100/80", r*cols+c+1),
				Dimension: fmt.Sprintf("%d x %d ft", w, d),
				Facing:    facings[(r+c)%len(facings)],
				Sqft:      float64(w * d),
			}
		}
	}
	return Table{entries: entries}
}
