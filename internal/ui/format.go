package ui

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/five82/plotgrid/internal/booking"
	"github.com/five82/plotgrid/internal/grid"
)

// moneyFormatter renders prices with locale grouping.
type moneyFormatter struct {
	printer  *message.Printer
	currency string
}

func newMoneyFormatter(locale, currency string) moneyFormatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return moneyFormatter{printer: message.NewPrinter(tag), currency: currency}
}

// Format renders v with up to two fraction digits.
func (f moneyFormatter) Format(v float64) string {
	return f.currency + f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Count renders an integer with locale grouping.
func (f moneyFormatter) Count(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// labelList joins unit labels for display, e.g. "3, 14, 27".
func labelList(units []grid.Unit, labelOf func(grid.Position) int) string {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, strconv.Itoa(labelOf(u.Position)))
	}
	return strings.Join(parts, ", ")
}

// clipboardSummary is the text copied by the copy command.
func clipboardSummary(title string, units []grid.Unit, labelOf func(grid.Position) int, s booking.Summary, money moneyFormatter) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "%s\n", title)
	}
	fmt.Fprintf(&b, "Units: %s\n", labelList(units, labelOf))
	fmt.Fprintf(&b, "Total units: %d\n", s.TotalUnits)
	fmt.Fprintf(&b, "Total cost: %s", money.Format(s.TotalCost))
	return b.String()
}
