// Package paging slices a grid's flattened unit sequence into fixed-size pages
// and assigns every unit a globally unique display label.
package paging

import (
	"errors"
	"fmt"

	"github.com/five82/plotgrid/internal/grid"
)

var (
	// ErrInvalidPageSize is returned when the page size is not positive.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrInvalidColumns is returned when the column count is not positive.
	ErrInvalidColumns = errors.New("column count must be positive")
)

// Cell is one unit rendered on a page.
type Cell struct {
	// Index is the unit's position in the grid's row-major sequence.
	Index int
	// Local lays the page slice out in the pager's column count.
	Local grid.Position
	Label int
}

// Pager maps pages to contiguous index ranges. It is a value type; the zero
// value is not usable, build one with New.
type Pager struct {
	columns  int
	pageSize int
	total    int
}

// New returns a pager over total units laid out in columns per row.
func New(columns, pageSize, total int) (Pager, error) {
	if columns <= 0 {
		return Pager{}, fmt.Errorf("new pager: %w", ErrInvalidColumns)
	}
	if pageSize <= 0 {
		return Pager{}, fmt.Errorf("new pager: %w", ErrInvalidPageSize)
	}
	if total < 0 {
		total = 0
	}
	return Pager{columns: columns, pageSize: pageSize, total: total}, nil
}

// PageSize returns the fixed number of units per page.
func (p Pager) PageSize() int { return p.pageSize }

// Columns returns the layout width of a page.
func (p Pager) Columns() int { return p.columns }

// Total returns the number of units being paged.
func (p Pager) Total() int { return p.total }

// Label computes the display label of the cell at (row, col) of a page:
// (page-1)*pageSize + (row*columns + col) + 1.
func (p Pager) Label(row, col, page int) int {
	return (page-1)*p.pageSize + (row*p.columns + col) + 1
}

// PageCount returns the number of pages, never less than one.
func (p Pager) PageCount() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Clamp keeps page within [1, PageCount()].
func (p Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if n := p.PageCount(); page > n {
		return n
	}
	return page
}

// Range returns the half-open index range [start, end) owned by page. Pages
// outside [1, PageCount()] own an empty range.
func (p Pager) Range(page int) (start, end int) {
	if page < 1 || page > p.PageCount() {
		return 0, 0
	}
	start = (page - 1) * p.pageSize
	end = page * p.pageSize
	if end > p.total {
		end = p.total
	}
	if start > end {
		start = end
	}
	return start, end
}

// PageOf returns the page that owns a flattened index.
func (p Pager) PageOf(index int) int {
	if index < 0 {
		return 1
	}
	return index/p.pageSize + 1
}

// LabelOf returns the label of a flattened index.
func (p Pager) LabelOf(index int) int {
	page := p.PageOf(index)
	local := index - (page-1)*p.pageSize
	return p.Label(local/p.columns, local%p.columns, page)
}

// Visible lists the cells rendered on page, in order. The final page may be
// short; indices outside the page's range are never returned.
func (p Pager) Visible(page int) []Cell {
	start, end := p.Range(page)
	if end <= start {
		return nil
	}
	cells := make([]Cell, 0, end-start)
	for idx := start; idx < end; idx++ {
		local := idx - start
		row, col := local/p.columns, local%p.columns
		cells = append(cells, Cell{
			Index: idx,
			Local: grid.Position{Row: row, Col: col},
			Label: p.Label(row, col, page),
		})
	}
	return cells
}

// Locate maps a flattened index to grid coordinates for a grid with
// gridCols columns.
func Locate(index, gridCols int) grid.Position {
	if gridCols <= 0 {
		return grid.Position{}
	}
	return grid.Position{Row: index / gridCols, Col: index % gridCols}
}
