// Package export renders a page of the plot grid to a PNG sheet.
package export

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// State is how a cell is coloured on the sheet.
type State int

const (
	Available State = iota
	Selected
	Booked
)

// Cell is one unit on the sheet.
type Cell struct {
	Row   int
	Col   int
	Label int
	State State
}

// Sheet describes what to draw.
type Sheet struct {
	Title   string
	Summary string
	Columns int
	Cells   []Cell
}

// Layout constants in pixels.
const (
	CellSize = 48
	Gap      = 4
	Padding  = 24
	Header   = 56
	fontSize = 12.0
)

// Fill colours per state.
var (
	AvailableFill = color.RGBA{R: 0xe8, G: 0xf5, B: 0xe9, A: 0xff}
	SelectedFill  = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	BookedFill    = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

func fillFor(s State) color.Color {
	switch s {
	case Selected:
		return SelectedFill
	case Booked:
		return BookedFill
	default:
		return AvailableFill
	}
}

// Size returns the pixel dimensions of the rendered sheet.
func (s Sheet) Size() (int, int) {
	cols := s.Columns
	if cols <= 0 {
		cols = 1
	}
	rows := 0
	for _, c := range s.Cells {
		if c.Row+1 > rows {
			rows = c.Row + 1
		}
	}
	w := 2*Padding + cols*CellSize + (cols-1)*Gap
	h := Header + 2*Padding + rows*CellSize
	if rows > 0 {
		h += (rows - 1) * Gap
	}
	return w, h
}

// CellOrigin returns the top-left pixel of the cell at (row, col).
func CellOrigin(row, col int) (float64, float64) {
	x := Padding + col*(CellSize+Gap)
	y := Header + Padding + row*(CellSize+Gap)
	return float64(x), float64(y)
}

// Render draws the sheet.
func Render(s Sheet) (image.Image, error) {
	w, h := s.Size()
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	dc.SetColor(color.Black)
	dc.DrawString(s.Title, Padding, Padding)
	dc.DrawString(s.Summary, Padding, Padding+fontSize*1.6)

	for _, c := range s.Cells {
		x, y := CellOrigin(c.Row, c.Col)
		dc.SetColor(fillFor(c.State))
		dc.DrawRectangle(x, y, CellSize, CellSize)
		dc.Fill()

		dc.SetLineWidth(1.0)
		dc.SetColor(color.Black)
		dc.DrawRectangle(x, y, CellSize, CellSize)
		dc.Stroke()

		label := strconv.Itoa(c.Label)
		if c.State == Booked {
			label = "×"
		}
		dc.DrawStringAnchored(label, x+CellSize/2, y+CellSize/2, 0.5, 0.5)
	}
	return dc.Image(), nil
}

// SavePNG renders the sheet to path, creating the directory if needed.
func SavePNG(path string, s Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	img, err := Render(s)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// Filename builds a file name for a page export.
func Filename(dir, plotID string, page int, now time.Time) string {
	id := strings.TrimSpace(plotID)
	if id == "" {
		id = "demo"
	}
	id = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, id)
	name := fmt.Sprintf("plot-%s-page%d-%s.png", id, page, now.Format("20060102-150405"))
	return filepath.Join(dir, name)
}
