package calculator

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders a value as Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-R$ " + humanize.FormatFloat("#.###,##", math.Abs(v))
	}
	return "R$ " + humanize.FormatFloat("#.###,##", v)
}

// FormatPercent renders a percentage with two decimals and a decimal comma, e.g. "8,33%".
func FormatPercent(v float64) string {
	return humanize.FormatFloat("#.###,##", v) + "%"
}
