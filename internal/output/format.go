package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a decimal as $1,234.56.
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a rate fraction as 12.34%.
func FormatPercent(rate decimal.Decimal) string {
	return fmt.Sprintf("%s%%", rate.Mul(decimal.NewFromInt(100)).StringFixed(2))
}
