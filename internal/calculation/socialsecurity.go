package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// SSTaxCalculator resolves the taxable portion of Social Security benefits
// using the three-tier provisional-income formula.
type SSTaxCalculator struct {
	Tier1 domain.StatusAmounts
	Tier2 domain.StatusAmounts
}

// NewSSTaxCalculator2025 creates a Social Security taxability calculator
// with the published thresholds, which are not inflation indexed.
func NewSSTaxCalculator2025() *SSTaxCalculator {
	return NewSSTaxCalculator(domain.DefaultRegulatory2025().SocialSecurity)
}

// NewSSTaxCalculator creates a Social Security taxability calculator from
// regulatory config.
func NewSSTaxCalculator(rules domain.SocialSecurityTaxRules) *SSTaxCalculator {
	return &SSTaxCalculator{Tier1: rules.Tier1Threshold, Tier2: rules.Tier2Threshold}
}

var half = decimal.NewFromFloat(0.5)
var eightyFivePercent = decimal.NewFromFloat(0.85)

// ProvisionalIncome is other income (already excluding Social Security but
// including tax-exempt interest) plus half of gross benefits.
func (ssc *SSTaxCalculator) ProvisionalIncome(otherIncome, taxExemptInterest, ssBenefits decimal.Decimal) decimal.Decimal {
	return otherIncome.Add(taxExemptInterest).Add(ssBenefits.Mul(half))
}

// Resolve computes the taxable portion of benefits. otherIncome must
// already exclude the benefits themselves and include every other enabled,
// annualized income source; taxExemptInterest is added for provisional
// income only. The result is always within [0, 0.85 * benefits].
func (ssc *SSTaxCalculator) Resolve(ssBenefits, otherIncome, taxExemptInterest decimal.Decimal, fs domain.FilingStatus) domain.SocialSecurityBreakdown {
	if ssBenefits.LessThan(decimal.Zero) {
		ssBenefits = decimal.Zero
	}
	if otherIncome.LessThan(decimal.Zero) {
		otherIncome = decimal.Zero
	}

	provisional := ssc.ProvisionalIncome(otherIncome, taxExemptInterest, ssBenefits)
	tier1 := ssc.Tier1.ForStatus(fs)
	tier2 := ssc.Tier2.ForStatus(fs)

	breakdown := domain.SocialSecurityBreakdown{
		GrossBenefits:     ssBenefits,
		ProvisionalIncome: provisional,
	}

	switch {
	case provisional.LessThanOrEqual(tier1):
		breakdown.Tier = domain.SSTierNone
		breakdown.TaxableSocialSecurity = decimal.Zero

	case provisional.LessThanOrEqual(tier2):
		breakdown.Tier = domain.SSTierPartial
		breakdown.TaxableSocialSecurity = decimal.Min(
			ssBenefits.Mul(half),
			provisional.Sub(tier1).Mul(half),
		)

	default:
		breakdown.Tier = domain.SSTierMaximum
		tier2Portion := provisional.Sub(tier2).Mul(eightyFivePercent)
		tier1Portion := decimal.Min(ssBenefits.Mul(half), tier2.Sub(tier1).Mul(half))
		breakdown.TaxableSocialSecurity = decimal.Min(
			ssBenefits.Mul(eightyFivePercent),
			tier2Portion.Add(tier1Portion),
		)
	}

	if breakdown.TaxableSocialSecurity.LessThan(decimal.Zero) {
		breakdown.TaxableSocialSecurity = decimal.Zero
	}
	return breakdown
}
