package overlay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/plotgrid/internal/pointer"
)

func TestPlace_CentresUnderCell(t *testing.T) {
	p := Positioner{OverlayWidth: 30, Margin: 1}
	cell := Rect{Left: 14, Top: 6, Width: 6, Height: 1}
	container := Rect{Left: 10, Top: 2, Width: 60, Height: 20}

	got := p.Place(cell, container, 120)
	assert.Equal(t, pointer.Point{X: 7, Y: 5}, got)
}

func TestPlace_ClampsNearRightEdge(t *testing.T) {
	p := Positioner{OverlayWidth: 30, Margin: 1}
	cell := Rect{Left: 95, Top: 4, Width: 6, Height: 1}
	container := Rect{Left: 0, Top: 0}

	got := p.Place(cell, container, 100)
	assert.Equal(t, 69.0, got.X)
	assert.Equal(t, 5.0, got.Y)
}

func TestPlace_NeverNegative(t *testing.T) {
	p := Positioner{OverlayWidth: 50, Margin: 2}
	got := p.Place(Rect{Left: 5, Width: 4, Height: 1}, Rect{}, 30)
	assert.Equal(t, 0.0, got.X)
}

func TestEnter_MissingEnrichmentStaysInactive(t *testing.T) {
	table := NewTable(map[int]Enrichment{7: {Dimension: "30 x 40 ft"}})
	p := Positioner{OverlayWidth: 20}

	h := Enter(p, Rect{Width: 4, Height: 1}, Rect{}, 80, 8, table)
	assert.False(t, h.Active)

	h = Enter(p, Rect{Left: 8, Width: 4, Height: 1}, Rect{}, 80, 7, table)
	require.True(t, h.Active)
	assert.Equal(t, 7, h.Label)
	assert.Equal(t, "30 x 40 ft", h.Detail.Dimension)
	assert.Equal(t, pointer.Point{X: 10, Y: 1}, h.At)

	assert.Equal(t, Hover{}, h.Leave())
}

func TestNewTable_CopiesInput(t *testing.T) {
	src := map[int]Enrichment{1: {Facing: "East"}}
	table := NewTable(src)
	src[1] = Enrichment{Facing: "West"}
	src[2] = Enrichment{}

	e, ok := table.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "East", e.Facing)
	assert.Equal(t, 1, table.Len())
}

func TestGenerate_DemoFixture(t *testing.T) {
	table := Generate(10, 10)
	require.Equal(t, 100, table.Len())

	e, ok := table.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "30 x 40 ft", e.Dimension)
	assert.Equal(t, "East", e.Facing)
	assert.Equal(t, 1200.0, e.Sqft)

	e, ok = table.Lookup(24) // row 2, col 3
	require.True(t, ok)
	assert.Equal(t, "32 x 43 ft", e.Dimension)
	assert.Equal(t, "West", e.Facing)
	assert.Equal(t, float64(32*43), e.Sqft)

	_, ok = table.Lookup(101)
	assert.False(t, ok)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units.toml")
	data := `
[[unit]]
label = 3
image_url = "https://example.test/3.png"
dimension = "30 x 42 ft"
facing = "South"
sqft = 1260.0

[[unit]]
label = 12
facing = "North"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	e, ok := table.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, Enrichment{
		ImageURL:  "https://example.test/3.png",
		Dimension: "30 x 42 ft",
		Facing:    "South",
		Sqft:      1260,
	}, e)
}

func TestLoadTable_Errors(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("[[unit]]\nfacing = \"East\"\n"))
	assert.True(t, errors.Is(err, ErrInvalidLabel), "err = %v", err)

	_, err = ParseTable([]byte("[[unit"))
	assert.Error(t, err)
}
