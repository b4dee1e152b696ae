// Package booking derives the cost summary for a selection and packages it
// for submission.
package booking

import (
	"github.com/five82/plotgrid/internal/grid"
)

// Summary is the aggregate shown next to the selection. TotalCost is not
// rounded; formatting belongs to presentation.
type Summary struct {
	TotalUnits int
	TotalCost  float64
}

// Summarize multiplies the selected count by the unit price.
func Summarize(selected int, pricePerUnit float64) Summary {
	if selected < 0 {
		selected = 0
	}
	return Summary{TotalUnits: selected, TotalCost: float64(selected) * pricePerUnit}
}

// RequestUnit is one unit in a submission.
type RequestUnit struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Label int `json:"label"`
}

// Request is the body sent to the booking service.
type Request struct {
	RequestID    string        `json:"request_id"`
	PlotID       string        `json:"plot_id"`
	Units        []RequestUnit `json:"units"`
	TotalUnits   int           `json:"total_units"`
	TotalCost    float64       `json:"total_cost"`
	PricePerUnit float64       `json:"price_per_unit"`
}

// NewRequest packages the selected units. labelOf maps a unit to its display
// label.
func NewRequest(id, plotID string, units []grid.Unit, labelOf func(grid.Position) int, summary Summary, price float64) Request {
	req := Request{
		RequestID:    id,
		PlotID:       plotID,
		Units:        make([]RequestUnit, 0, len(units)),
		TotalUnits:   summary.TotalUnits,
		TotalCost:    summary.TotalCost,
		PricePerUnit: price,
	}
	for _, u := range units {
		ru := RequestUnit{Row: u.Row, Col: u.Col}
		if labelOf != nil {
			ru.Label = labelOf(u.Position)
		}
		req.Units = append(req.Units, ru)
	}
	return req
}
