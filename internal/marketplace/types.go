package marketplace

import (
	"time"

	"github.com/five82/plotgrid/internal/grid"
)

// UnitRef addresses one unit in transport form.
type UnitRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Position converts the reference to grid coordinates.
func (u UnitRef) Position() grid.Position {
	return grid.Position{Row: u.Row, Col: u.Col}
}

// Plot mirrors /public/plots/{id}/.
type Plot struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Rows         int       `json:"rows"`
	Cols         int       `json:"cols"`
	PricePerUnit float64   `json:"price_per_unit"`
	LayoutImage  string    `json:"layout_image"`
	Booked       []UnitRef `json:"booked_units"`
}

// BookedPositions returns the booked units as grid positions.
func (p Plot) BookedPositions() []grid.Position {
	return positions(p.Booked)
}

// Availability mirrors /public/plots/{id}/availability/.
type Availability struct {
	PlotID    string    `json:"plot_id"`
	Booked    []UnitRef `json:"booked_units"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookedPositions returns the booked units as grid positions.
func (a Availability) BookedPositions() []grid.Position {
	return positions(a.Booked)
}

// Confirmation mirrors the response to POST /bookings/.
type Confirmation struct {
	BookingID string    `json:"booking_id"`
	RequestID string    `json:"request_id"`
	Status    string    `json:"status"`
	Units     []UnitRef `json:"units"`
}

// BookedPositions returns the confirmed units as grid positions.
func (c Confirmation) BookedPositions() []grid.Position {
	return positions(c.Units)
}

func positions(refs []UnitRef) []grid.Position {
	if len(refs) == 0 {
		return nil
	}
	out := make([]grid.Position, len(refs))
	for i, r := range refs {
		out[i] = r.Position()
	}
	return out
}
