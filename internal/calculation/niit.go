package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// NIITCalculator handles the 3.8% net investment income surtax.
type NIITCalculator struct {
	Rate      decimal.Decimal
	Threshold domain.StatusAmounts
}

// NewNIITCalculator2025 creates a NIIT calculator with the statutory rate
// and thresholds (not inflation indexed).
func NewNIITCalculator2025() *NIITCalculator {
	return NewNIITCalculator(domain.DefaultRegulatory2025().NIIT)
}

// NewNIITCalculator creates a NIIT calculator from regulatory config.
func NewNIITCalculator(rules domain.NIITRules) *NIITCalculator {
	return &NIITCalculator{Rate: rules.Rate, Threshold: rules.MAGIThreshold}
}

// Calculate returns the surtax: rate * min(netInvestmentIncome,
// max(0, modifiedAGI - threshold)). Applies is true only when both
// operands of the min are positive.
func (nc *NIITCalculator) Calculate(modifiedAGI, netInvestmentIncome decimal.Decimal, fs domain.FilingStatus) domain.NIITBreakdown {
	if netInvestmentIncome.LessThan(decimal.Zero) {
		netInvestmentIncome = decimal.Zero
	}

	excess := modifiedAGI.Sub(nc.Threshold.ForStatus(fs))
	if excess.LessThan(decimal.Zero) {
		excess = decimal.Zero
	}

	breakdown := domain.NIITBreakdown{
		NetInvestmentIncome: netInvestmentIncome,
		ExcessIncome:        excess,
	}
	if excess.GreaterThan(decimal.Zero) && netInvestmentIncome.GreaterThan(decimal.Zero) {
		breakdown.Applies = true
		breakdown.Tax = decimal.Min(netInvestmentIncome, excess).Mul(nc.Rate)
	}
	return breakdown
}
