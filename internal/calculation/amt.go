package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// AMTCalculator runs the parallel minimum tax computation. The tentative
// minimum tax is compared to the regular-path tax and only the excess is
// reported; total federal liability is always regular + additional.
type AMTCalculator struct {
	Rules domain.AMTRules
}

// NewAMTCalculator2025 creates an AMT calculator with the 2025 exemption
// and phase-out parameters.
func NewAMTCalculator2025() *AMTCalculator {
	return NewAMTCalculator(domain.DefaultRegulatory2025().AMT)
}

// NewAMTCalculator creates an AMT calculator from regulatory config.
func NewAMTCalculator(rules domain.AMTRules) *AMTCalculator {
	return &AMTCalculator{Rules: rules}
}

// Calculate rebuilds income on the AMT base. AMTI starts from regular
// taxable income and adds back the deductions AMT disallows: the standard
// deduction when it was used, otherwise the SALT deduction (as capped) and
// the unspecified "other" itemized category. The exemption phases out at
// PhaseOutRate per dollar of AMTI over the start, floored at zero, then
// the two-tier rate schedule applies.
func (ac *AMTCalculator) Calculate(taxableIncome, deductionUsed decimal.Decimal, deductions domain.Deductions, itemizedUsed bool, regularTax decimal.Decimal, fs domain.FilingStatus) domain.AMTBreakdown {
	if taxableIncome.LessThan(decimal.Zero) {
		taxableIncome = decimal.Zero
	}

	var adjustments decimal.Decimal
	if itemizedUsed {
		salt := decimal.Min(deductions.Itemized.StateAndLocalTaxes, domain.SALTCap)
		if salt.LessThan(decimal.Zero) {
			salt = decimal.Zero
		}
		adjustments = salt.Add(deductions.Itemized.Other)
	} else {
		adjustments = deductionUsed
	}

	amtIncome := taxableIncome.Add(adjustments)

	exemption := ac.Rules.Exemption.ForStatus(fs)
	phaseOutStart := ac.Rules.PhaseOutStart.ForStatus(fs)
	if amtIncome.GreaterThan(phaseOutStart) {
		exemption = exemption.Sub(amtIncome.Sub(phaseOutStart).Mul(ac.Rules.PhaseOutRate))
		if exemption.LessThan(decimal.Zero) {
			exemption = decimal.Zero
		}
	}

	amtTaxable := amtIncome.Sub(exemption)
	if amtTaxable.LessThan(decimal.Zero) {
		amtTaxable = decimal.Zero
	}

	var tentative decimal.Decimal
	if amtTaxable.LessThanOrEqual(ac.Rules.RateBreakpoint) {
		tentative = amtTaxable.Mul(ac.Rules.LowRate)
	} else {
		tentative = ac.Rules.RateBreakpoint.Mul(ac.Rules.LowRate).
			Add(amtTaxable.Sub(ac.Rules.RateBreakpoint).Mul(ac.Rules.HighRate))
	}

	additional := tentative.Sub(regularTax)
	if additional.LessThan(decimal.Zero) {
		additional = decimal.Zero
	}

	return domain.AMTBreakdown{
		AMTIncome:        amtIncome,
		Exemption:        exemption,
		AMTTaxableIncome: amtTaxable,
		TentativeAMT:     tentative,
		AdditionalTax:    additional,
		Adjustments:      adjustments,
	}
}
