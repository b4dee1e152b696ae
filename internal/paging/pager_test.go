package paging

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/plotgrid/internal/grid"
)

func TestNew_Validates(t *testing.T) {
	_, err := New(0, 10, 100)
	assert.True(t, errors.Is(err, ErrInvalidColumns))
	_, err = New(10, 0, 100)
	assert.True(t, errors.Is(err, ErrInvalidPageSize))
}

func TestLabel_SinglePageTenByTen(t *testing.T) {
	p, err := New(10, 100, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, p.PageCount())
	assert.Equal(t, 1, p.Label(0, 0, 1))
	assert.Equal(t, 100, p.Label(9, 9, 1))
}

func TestLabel_InjectiveWithinAndAcrossPages(t *testing.T) {
	p, err := New(8, 24, 100)
	require.NoError(t, err)

	seen := map[int]string{}
	for page := 1; page <= p.PageCount(); page++ {
		for _, cell := range p.Visible(page) {
			where := fmt.Sprintf("page %d cell %v", page, cell.Local)
			if prev, dup := seen[cell.Label]; dup {
				t.Fatalf("label %d produced twice: %s and %s", cell.Label, prev, where)
			}
			seen[cell.Label] = where
			assert.Equal(t, cell.Index+1, cell.Label)
		}
	}
	assert.Len(t, seen, 100)
}

func TestRange_ShortFinalPage(t *testing.T) {
	p, err := New(10, 30, 100)
	require.NoError(t, err)

	require.Equal(t, 4, p.PageCount())
	start, end := p.Range(4)
	assert.Equal(t, 90, start)
	assert.Equal(t, 100, end)

	cells := p.Visible(4)
	require.Len(t, cells, 10)
	assert.Equal(t, 91, cells[0].Label)
	assert.Equal(t, 100, cells[len(cells)-1].Label)
	for _, c := range cells {
		assert.Less(t, c.Index, 100)
	}
}

func TestRange_OutOfRangePagesAreEmpty(t *testing.T) {
	p, err := New(10, 30, 100)
	require.NoError(t, err)

	for _, page := range []int{0, -2, 5} {
		start, end := p.Range(page)
		assert.Equal(t, start, end, "page %d", page)
		assert.Empty(t, p.Visible(page))
	}
	assert.Equal(t, 1, p.Clamp(0))
	assert.Equal(t, 4, p.Clamp(9))
	assert.Equal(t, 2, p.Clamp(2))
}

func TestPageOfAndLabelOf(t *testing.T) {
	p, err := New(10, 30, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, p.PageOf(29))
	assert.Equal(t, 2, p.PageOf(30))
	for idx := 0; idx < 100; idx++ {
		assert.Equal(t, idx+1, p.LabelOf(idx))
	}
}

func TestPageCount_EmptyGridHasOnePage(t *testing.T) {
	p, err := New(4, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.PageCount())
	assert.Empty(t, p.Visible(1))
}

func TestLocate(t *testing.T) {
	assert.Equal(t, grid.Position{Row: 3, Col: 7}, Locate(37, 10))
	assert.Equal(t, grid.Position{}, Locate(5, 0))
}
