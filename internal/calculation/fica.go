package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// FICACalculator handles payroll taxes on earned income: Social Security
// up to the wage base, uncapped Medicare, and the Additional Medicare
// surtax above the filing-status threshold.
type FICACalculator struct {
	SSRate     decimal.Decimal
	SSWageBase decimal.Decimal
	MedRate    decimal.Decimal
	Additional *AdditionalMedicareCalculator
}

// NewFICACalculator2025 creates a FICA calculator with the 2025 rates and
// wage base.
func NewFICACalculator2025() *FICACalculator {
	reg := domain.DefaultRegulatory2025()
	return NewFICACalculator(reg.FICA, reg.AdditionalMedicare)
}

// NewFICACalculator creates a FICA calculator from regulatory config.
func NewFICACalculator(rules domain.FICARules, addl domain.AdditionalMedicareRules) *FICACalculator {
	return &FICACalculator{
		SSRate:     rules.SocialSecurityRate,
		SSWageBase: rules.SocialSecurityWageBase,
		MedRate:    rules.MedicareRate,
		Additional: NewAdditionalMedicareCalculator(addl),
	}
}

// Calculate computes all three payroll pieces on annualized earned income.
// Only earned income types reach this calculator; the orchestrator filters
// and annualizes before calling.
func (fc *FICACalculator) Calculate(earnedIncome decimal.Decimal, fs domain.FilingStatus) domain.FICABreakdown {
	if earnedIncome.LessThanOrEqual(decimal.Zero) {
		return domain.FICABreakdown{}
	}

	ssTax := decimal.Min(earnedIncome, fc.SSWageBase).Mul(fc.SSRate)
	medicareTax := earnedIncome.Mul(fc.MedRate)
	addl := fc.Additional.Calculate(earnedIncome, fs)

	return domain.FICABreakdown{
		SocialSecurityTax:     ssTax,
		MedicareTax:           medicareTax,
		AdditionalMedicareTax: addl.Tax,
		TotalFICA:             ssTax.Add(medicareTax).Add(addl.Tax),
	}
}

// FlatMarginalRate is the combined employee-side SS + Medicare rate used by
// the total-marginal-rate approximation.
func (fc *FICACalculator) FlatMarginalRate() decimal.Decimal {
	return fc.SSRate.Add(fc.MedRate)
}

// AdditionalMedicareCalculator handles the 0.9% surtax on earned income
// above the filing-status threshold. Thresholds are the published values;
// no status is derived by scaling another.
type AdditionalMedicareCalculator struct {
	Rate      decimal.Decimal
	Threshold domain.StatusAmounts
}

// NewAdditionalMedicareCalculator2025 creates the surtax calculator with
// the published thresholds.
func NewAdditionalMedicareCalculator2025() *AdditionalMedicareCalculator {
	return NewAdditionalMedicareCalculator(domain.DefaultRegulatory2025().AdditionalMedicare)
}

// NewAdditionalMedicareCalculator creates the surtax calculator from
// regulatory config.
func NewAdditionalMedicareCalculator(rules domain.AdditionalMedicareRules) *AdditionalMedicareCalculator {
	return &AdditionalMedicareCalculator{Rate: rules.Rate, Threshold: rules.EarnedThreshold}
}

// Calculate returns the surtax on earned income above the threshold.
func (amc *AdditionalMedicareCalculator) Calculate(earnedIncome decimal.Decimal, fs domain.FilingStatus) domain.AdditionalMedicareBreakdown {
	threshold := amc.Threshold.ForStatus(fs)
	excess := earnedIncome.Sub(threshold)
	if excess.LessThanOrEqual(decimal.Zero) {
		return domain.AdditionalMedicareBreakdown{}
	}
	return domain.AdditionalMedicareBreakdown{
		Tax:          excess.Mul(amc.Rate),
		Applies:      true,
		ExcessIncome: excess,
	}
}
