package domain

import (
	"github.com/shopspring/decimal"
)

// ItemizedDeductions are the federal Schedule A entries the planner models.
// Medical expenses are entered gross; the 7.5%-of-AGI floor is applied when
// the total is computed.
type ItemizedDeductions struct {
	StateAndLocalTaxes decimal.Decimal `yaml:"state_and_local_taxes" json:"state_and_local_taxes"`
	MortgageInterest   decimal.Decimal `yaml:"mortgage_interest" json:"mortgage_interest"`
	Charitable         decimal.Decimal `yaml:"charitable" json:"charitable"`
	MedicalExpenses    decimal.Decimal `yaml:"medical_expenses" json:"medical_expenses"`
	Other              decimal.Decimal `yaml:"other" json:"other"`
}

// StateDeductions are Michigan-specific subtractions and credits entered
// directly by the user.
type StateDeductions struct {
	Subtractions decimal.Decimal `yaml:"subtractions" json:"subtractions"`
	Credits      decimal.Decimal `yaml:"credits" json:"credits"`
}

// Deductions groups the federal itemized entries and the state entries.
type Deductions struct {
	Itemized ItemizedDeductions `yaml:"itemized" json:"itemized"`
	State    StateDeductions    `yaml:"state" json:"state"`
}

// SALTCap is the federal cap on the state-and-local-tax deduction.
var SALTCap = decimal.NewFromInt(10000)

// MedicalAGIFloor is the fraction of AGI below which medical expenses are
// not deductible.
var MedicalAGIFloor = decimal.NewFromFloat(0.075)

// ItemizedTotal computes the allowed itemized deduction total for a given
// AGI: SALT capped at $10,000, medical expenses reduced by the 7.5%-of-AGI
// floor, the remaining categories taken as entered.
func (d *Deductions) ItemizedTotal(agi decimal.Decimal) decimal.Decimal {
	salt := decimal.Min(d.Itemized.StateAndLocalTaxes, SALTCap)
	if salt.LessThan(decimal.Zero) {
		salt = decimal.Zero
	}

	medical := d.Itemized.MedicalExpenses.Sub(agi.Mul(MedicalAGIFloor))
	if medical.LessThan(decimal.Zero) {
		medical = decimal.Zero
	}

	total := salt.Add(medical).Add(d.Itemized.MortgageInterest).Add(d.Itemized.Charitable).Add(d.Itemized.Other)
	if total.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return total
}
