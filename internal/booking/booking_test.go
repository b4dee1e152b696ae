package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/plotgrid/internal/grid"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(0, 25000))
	assert.Equal(t, Summary{TotalUnits: 1, TotalCost: 25000}, Summarize(1, 25000))
	assert.Equal(t, Summary{TotalUnits: 2, TotalCost: 50000}, Summarize(2, 25000))
	assert.Equal(t, Summary{TotalUnits: 3, TotalCost: 31.5}, Summarize(3, 10.5))
	assert.Equal(t, Summary{}, Summarize(-4, 10))
}

func TestNewRequest(t *testing.T) {
	units := []grid.Unit{
		{Position: grid.Position{Row: 2, Col: 3}},
		{Position: grid.Position{Row: 0, Col: 9}},
	}
	labelOf := func(p grid.Position) int { return p.Row*10 + p.Col + 1 }

	req := NewRequest("req-1", "plot-7", units, labelOf, Summarize(2, 100), 100)
	assert.Equal(t, "req-1", req.RequestID)
	assert.Equal(t, "plot-7", req.PlotID)
	assert.Equal(t, 2, req.TotalUnits)
	assert.Equal(t, 200.0, req.TotalCost)
	assert.Equal(t, 100.0, req.PricePerUnit)
	require.Len(t, req.Units, 2)
	assert.Equal(t, RequestUnit{Row: 2, Col: 3, Label: 24}, req.Units[0])
	assert.Equal(t, RequestUnit{Row: 0, Col: 9, Label: 10}, req.Units[1])
}
