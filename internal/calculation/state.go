package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// StateTaxCalculator handles the flat-rate state income tax and the
// income-gated homestead property tax credit. Only Michigan rules ship;
// households in any other state bypass state tax entirely.
type StateTaxCalculator struct {
	States map[string]domain.StateRules
}

// NewStateTaxCalculator2025 creates a state calculator with the built-in
// Michigan parameters.
func NewStateTaxCalculator2025() *StateTaxCalculator {
	return NewStateTaxCalculator(domain.DefaultRegulatory2025().States)
}

// NewStateTaxCalculator creates a state calculator from regulatory config.
func NewStateTaxCalculator(states map[string]domain.StateRules) *StateTaxCalculator {
	return &StateTaxCalculator{States: states}
}

// Calculate computes state tax on federal AGI minus personal exemptions and
// state-specific subtractions, then the homestead credit. exemptions is the
// count of household members claimed.
func (sc *StateTaxCalculator) Calculate(federalAGI decimal.Decimal, hh *domain.Household, deductions domain.StateDeductions, exemptions int) domain.StateBreakdown {
	rules, ok := sc.States[hh.State]
	if !ok {
		return domain.StateBreakdown{}
	}

	taxable := federalAGI.
		Sub(rules.PersonalExemption.Mul(decimal.NewFromInt(int64(exemptions)))).
		Sub(deductions.Subtractions)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	tax := taxable.Mul(rules.Rate).Sub(deductions.Credits)
	if tax.LessThan(decimal.Zero) {
		tax = decimal.Zero
	}

	breakdown := domain.StateBreakdown{
		StateTaxableIncome: taxable,
		StateTax:           tax,
	}

	breakdown.HomesteadCredit, breakdown.CreditEligible = sc.homesteadCredit(federalAGI, hh, rules)
	return breakdown
}

// homesteadCredit applies the three eligibility gates, then credits
// property taxes above the income-scaled threshold up to the statutory cap.
func (sc *StateTaxCalculator) homesteadCredit(householdIncome decimal.Decimal, hh *domain.Household, rules domain.StateRules) (decimal.Decimal, bool) {
	if !hh.OwnsHome {
		return decimal.Zero, false
	}
	if hh.MonthsInState < rules.HomesteadResidencyMonths {
		return decimal.Zero, false
	}
	if householdIncome.GreaterThan(rules.HomesteadIncomeCeiling) {
		return decimal.Zero, false
	}

	credit := hh.PropertyTaxesPaid.Sub(householdIncome.Mul(rules.HomesteadThresholdRate))
	if credit.LessThan(decimal.Zero) {
		credit = decimal.Zero
	}
	credit = decimal.Min(credit, rules.HomesteadMaxCredit)
	return credit, true
}
