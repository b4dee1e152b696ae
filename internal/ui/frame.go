package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/five82/plotgrid/internal/pointer"
	"github.com/five82/plotgrid/internal/viewport"
)

// halfBlock draws two vertically stacked pixels per terminal cell: the
// foreground paints the top half and the background the bottom half.
const halfBlock = "▀"

// frameImage is the layout image resampled to the frame. Document
// coordinates are terminal cells, so one cell covers one pixel column and
// two pixel rows.
type frameImage struct {
	src    image.Image
	scaled *image.RGBA
	width  int
	height int
}

// resize rescales the source to a frame of w×h cells. It is a no-op when
// the size is unchanged.
func (f *frameImage) resize(w, h int) {
	if f.src == nil || w <= 0 || h <= 0 {
		return
	}
	if f.scaled != nil && f.width == w && f.height == h {
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, 2*h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), f.src, f.src.Bounds(), xdraw.Src, nil)
	f.scaled = dst
	f.width, f.height = w, h
}

// documentPixel returns the colour at a document point, or ok=false when the
// point lies outside the document.
type documentPixel func(doc pointer.Point) (color.Color, bool)

func (f *frameImage) pixel(doc pointer.Point) (color.Color, bool) {
	if f.scaled == nil {
		return nil, false
	}
	x := int(math.Floor(doc.X))
	y := int(math.Floor(doc.Y * 2))
	if !(image.Point{X: x, Y: y}).In(f.scaled.Bounds()) {
		return nil, false
	}
	return f.scaled.RGBAAt(x, y), true
}

// patternPixel draws a surveyed-parcel pattern when no layout image is
// configured: alternating blocks with a boundary line.
func patternPixel(w, h int, light, dark, line color.Color) documentPixel {
	return func(doc pointer.Point) (color.Color, bool) {
		if doc.X < 0 || doc.Y < 0 || doc.X >= float64(w) || doc.Y >= float64(h) {
			return nil, false
		}
		if doc.X < 1 || doc.Y < 0.5 || doc.X >= float64(w)-1 || doc.Y >= float64(h)-0.5 {
			return line, true
		}
		bx := int(math.Floor(doc.X / 6))
		by := int(math.Floor(doc.Y / 3))
		if (bx+by)%2 == 0 {
			return light, true
		}
		return dark, true
	}
}

// cellColors is the top and bottom colour of one terminal cell.
type cellColors struct {
	top    color.Color
	bottom color.Color
}

// sampleFrame maps every half-cell of a w×h frame back through the viewport
// and samples the document there. Points outside the document get bg.
func sampleFrame(st viewport.State, w, h int, px documentPixel, bg color.Color) [][]cellColors {
	rows := make([][]cellColors, h)
	at := func(x, y float64) color.Color {
		c, ok := px(viewport.ToDocument(st, pointer.Point{X: x, Y: y}))
		if !ok {
			return bg
		}
		return c
	}
	for y := range rows {
		row := make([]cellColors, w)
		for x := range row {
			row[x] = cellColors{
				top:    at(float64(x)+0.5, float64(y)+0.25),
				bottom: at(float64(x)+0.5, float64(y)+0.75),
			}
		}
		rows[y] = row
	}
	return rows
}

// renderCells turns sampled colours into half-block text. Runs of the same
// colour pair share one style.
func renderCells(cells [][]cellColors) string {
	lines := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && sameColors(row[end], row[x]) {
				end++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(row[x].top))).
				Background(lipgloss.Color(hexColor(row[x].bottom)))
			b.WriteString(style.Render(strings.Repeat(halfBlock, end-x)))
			x = end
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func sameColors(a, b cellColors) bool {
	return hexColor(a.top) == hexColor(b.top) && hexColor(a.bottom) == hexColor(b.bottom)
}

func hexColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// parseHex converts a theme colour into a color.Color. Malformed values
// render black.
func parseHex(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
