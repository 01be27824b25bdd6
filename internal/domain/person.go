package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status for the household.
type FilingStatus string

const (
	FilingStatusSingle               FilingStatus = "single"
	FilingStatusMarriedFilingJointly FilingStatus = "marriedFilingJointly"
	FilingStatusHeadOfHousehold      FilingStatus = "headOfHousehold"
)

// KnownFilingStatus reports whether fs is a recognized filing status.
func KnownFilingStatus(fs FilingStatus) bool {
	switch fs {
	case FilingStatusSingle, FilingStatusMarriedFilingJointly, FilingStatusHeadOfHousehold:
		return true
	}
	return false
}

// Person is one member of the household. BirthDate may be nil when the user
// has not entered it; age-dependent rules then simply do not apply.
type Person struct {
	Name      string     `yaml:"name" json:"name"`
	BirthDate *time.Time `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
}

// Age returns the person's age in whole years as of the given date, or
// (0, false) when no birth date is known.
func (p *Person) Age(asOf time.Time) (int, bool) {
	if p == nil || p.BirthDate == nil {
		return 0, false
	}
	return AgeAt(*p.BirthDate, asOf), true
}

// AgeAt computes age in whole years between a birth date and a reference
// date.
func AgeAt(birthDate, asOf time.Time) int {
	age := asOf.Year() - birthDate.Year()
	anniversary := time.Date(asOf.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if asOf.Before(anniversary) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// Household is the filing unit: a taxpayer, an optional spouse, the filing
// status, and the state of residence. Only Michigan state rules are
// implemented; any other state bypasses state tax.
type Household struct {
	Taxpayer     Person       `yaml:"taxpayer" json:"taxpayer"`
	Spouse       *Person      `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status"`
	State        string       `yaml:"state" json:"state"`

	// Housing feeds the state homestead credit.
	OwnsHome          bool            `yaml:"owns_home" json:"owns_home"`
	MonthsInState     int             `yaml:"months_in_state" json:"months_in_state"`
	PropertyTaxesPaid decimal.Decimal `yaml:"property_taxes_paid" json:"property_taxes_paid"`
}
