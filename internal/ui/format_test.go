package ui

import (
	"strings"
	"testing"

	"github.com/five82/plotgrid/internal/booking"
	"github.com/five82/plotgrid/internal/grid"
)

func TestMoneyFormatter(t *testing.T) {
	f := newMoneyFormatter("en-US", "$")

	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{25000, "$25,000"},
		{1234.5, "$1,234.5"},
		{1234.567, "$1,234.57"},
	}
	for _, tc := range cases {
		if got := f.Format(tc.in); got != tc.want {
			t.Fatalf("Format(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := f.Count(1200); got != "1,200" {
		t.Fatalf("Count(1200) = %q, want 1,200", got)
	}
}

func TestMoneyFormatter_BadLocaleFallsBack(t *testing.T) {
	f := newMoneyFormatter("not a locale!", "₹")
	if got := f.Format(100); got != "₹100" {
		t.Fatalf("Format(100) = %q, want ₹100", got)
	}
}

func TestClipboardSummary(t *testing.T) {
	units := []grid.Unit{
		{Position: grid.Position{Row: 0, Col: 2}},
		{Position: grid.Position{Row: 1, Col: 0}},
	}
	labelOf := func(p grid.Position) int { return p.Row*10 + p.Col + 1 }
	s := booking.Summarize(2, 25000)

	got := clipboardSummary("Riverside", units, labelOf, s, newMoneyFormatter("en-US", "$"))
	for _, want := range []string{"Riverside", "Units: 3, 11", "Total units: 2", "Total cost: $50,000"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSelectionKey(t *testing.T) {
	a := []grid.Unit{{Position: grid.Position{Row: 1, Col: 2}}, {Position: grid.Position{Row: 3, Col: 4}}}
	b := []grid.Unit{{Position: grid.Position{Row: 3, Col: 4}}, {Position: grid.Position{Row: 1, Col: 2}}}

	if selectionKey(a) != "R1C2,R3C4" {
		t.Fatalf("selectionKey = %q", selectionKey(a))
	}
	if selectionKey(a) == selectionKey(b) {
		t.Fatalf("different order should give a different key")
	}
}
