package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// CapitalGainsCalculator taxes long-term gains and qualified dividends by
// stacking them on top of ordinary income in the preferential-rate bracket
// table. Short-term gains are ordinary income and are delegated to the
// bracket engine.
type CapitalGainsCalculator struct {
	Brackets domain.StatusBrackets
	Engine   *BracketEngine
}

// NewCapitalGainsCalculator2025 creates a capital gains calculator with the
// 2025 preferential-rate tables.
func NewCapitalGainsCalculator2025() *CapitalGainsCalculator {
	return NewCapitalGainsCalculator(domain.DefaultRegulatory2025().CapitalGains)
}

// NewCapitalGainsCalculator creates a capital gains calculator from
// regulatory config.
func NewCapitalGainsCalculator(rules domain.CapitalGainsRules) *CapitalGainsCalculator {
	return &CapitalGainsCalculator{Brackets: rules.Brackets, Engine: NewBracketEngine()}
}

// Calculate stacks the preferential income above ordinaryTaxable and
// returns the full breakdown. The preferential tax is
// taxAt(ordinary+preferential) - taxAt(ordinary) over the LTCG table, so
// ordinary income consumes the 0% room first. Negative gains are treated
// as zero; they do not offset other income here.
func (cgc *CapitalGainsCalculator) Calculate(longTerm, shortTerm, qualifiedDividends, ordinaryTaxable decimal.Decimal, fs domain.FilingStatus) domain.CapitalGainsBreakdown {
	if longTerm.LessThan(decimal.Zero) {
		longTerm = decimal.Zero
	}
	if shortTerm.LessThan(decimal.Zero) {
		shortTerm = decimal.Zero
	}
	if qualifiedDividends.LessThan(decimal.Zero) {
		qualifiedDividends = decimal.Zero
	}
	if ordinaryTaxable.LessThan(decimal.Zero) {
		ordinaryTaxable = decimal.Zero
	}

	brackets := cgc.Brackets.ForStatus(fs)
	preferential := longTerm.Add(qualifiedDividends)

	tax := cgc.Engine.Tax(ordinaryTaxable.Add(preferential), brackets).
		Sub(cgc.Engine.Tax(ordinaryTaxable, brackets))
	if tax.LessThan(decimal.Zero) {
		tax = decimal.Zero
	}

	breakdown := domain.CapitalGainsBreakdown{
		LongTerm:           longTerm,
		ShortTerm:          shortTerm,
		QualifiedDividends: qualifiedDividends,
		Tax:                tax,
		MarginalRate:       cgc.Engine.MarginalRate(ordinaryTaxable.Add(preferential), brackets),
	}
	if preferential.GreaterThan(decimal.Zero) {
		breakdown.EffectiveRate = tax.Div(preferential)
	}
	return breakdown
}

// ShortTermTax taxes short-term gains as ordinary income stacked above the
// rest of ordinary taxable income: taxAt(ordinary+stcg) - taxAt(ordinary)
// over the ordinary table.
func (cgc *CapitalGainsCalculator) ShortTermTax(shortTerm, ordinaryTaxable decimal.Decimal, ordinaryBrackets []domain.TaxBracket) decimal.Decimal {
	if shortTerm.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if ordinaryTaxable.LessThan(decimal.Zero) {
		ordinaryTaxable = decimal.Zero
	}
	tax := cgc.Engine.Tax(ordinaryTaxable.Add(shortTerm), ordinaryBrackets).
		Sub(cgc.Engine.Tax(ordinaryTaxable, ordinaryBrackets))
	if tax.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return tax
}
