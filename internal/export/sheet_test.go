package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleSheet() Sheet {
	return Sheet{
		Title:   "Riverside · page 1/1",
		Summary: "Units: 1  Total: ₹25,000",
		Columns: 3,
		Cells: []Cell{
			{Row: 0, Col: 0, Label: 1, State: Booked},
			{Row: 0, Col: 1, Label: 2, State: Selected},
			{Row: 0, Col: 2, Label: 3},
			{Row: 1, Col: 0, Label: 4},
		},
	}
}

func TestSize(t *testing.T) {
	w, h := sampleSheet().Size()
	if want := 2*Padding + 3*CellSize + 2*Gap; w != want {
		t.Fatalf("width = %d, want %d", w, want)
	}
	if want := Header + 2*Padding + 2*CellSize + Gap; h != want {
		t.Fatalf("height = %d, want %d", h, want)
	}
}

func sameRGB(t *testing.T, name string, want color.RGBA, got color.Color) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestRender_ColoursCellsByState(t *testing.T) {
	img, err := Render(sampleSheet())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	// Sample near a corner to avoid the centred label glyphs.
	at := func(row, col int) color.Color {
		x, y := CellOrigin(row, col)
		return img.At(int(x)+4, int(y)+4)
	}
	sameRGB(t, "booked cell", BookedFill, at(0, 0))
	sameRGB(t, "selected cell", SelectedFill, at(0, 1))
	sameRGB(t, "available cell", AvailableFill, at(0, 2))
}

func TestSavePNG_WritesDecodableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "sheet.png")
	if err := SavePNG(path, sampleSheet()); err != nil {
		t.Fatalf("SavePNG returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	w, h := sampleSheet().Size()
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("bounds = %v, want %dx%d", img.Bounds(), w, h)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		dir, plotID string
		page        int
		want        string
	}{
		{"/tmp", " a/b ", 2, filepath.Join("/tmp", "plot-a-b-page2-20260304-050607.png")},
		{"out", "", 1, filepath.Join("out", "plot-demo-page1-20260304-050607.png")},
	}
	for _, tt := range tests {
		if got := Filename(tt.dir, tt.plotID, tt.page, now); got != tt.want {
			t.Errorf("Filename(%q, %q, %d) = %q, want %q", tt.dir, tt.plotID, tt.page, got, tt.want)
		}
	}
}
