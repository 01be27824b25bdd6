package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeSourceType identifies the tax character of an income source.
type IncomeSourceType string

const (
	IncomeTypeWages              IncomeSourceType = "wages"
	IncomeTypeSelfEmployment     IncomeSourceType = "self-employment"
	IncomeTypeBusiness           IncomeSourceType = "business"
	IncomeTypeTraditionalIRA     IncomeSourceType = "traditional-ira"
	IncomeTypeRothIRA            IncomeSourceType = "roth-ira"
	IncomeTypeSocialSecurity     IncomeSourceType = "social-security"
	IncomeTypePension            IncomeSourceType = "pension"
	IncomeTypeAnnuity            IncomeSourceType = "annuity"
	IncomeTypeLifeInsurance      IncomeSourceType = "life-insurance"
	IncomeTypeLongTermCapGains   IncomeSourceType = "long-term-capital-gains"
	IncomeTypeShortTermCapGains  IncomeSourceType = "short-term-capital-gains"
	IncomeTypeQualifiedDividends IncomeSourceType = "qualified-dividends"
	IncomeTypeInterest           IncomeSourceType = "interest"
	IncomeTypeTaxExemptInterest  IncomeSourceType = "tax-exempt-interest"
	IncomeTypeDividends          IncomeSourceType = "dividends"
	IncomeTypeRental             IncomeSourceType = "rental"
	IncomeTypeRoyalty            IncomeSourceType = "royalty"
	IncomeTypeEstimatedRMD       IncomeSourceType = "estimated-rmd"
	IncomeTypeOther              IncomeSourceType = "other"
)

// Owner identifies which member of the household an income source belongs to.
type Owner string

const (
	OwnerTaxpayer Owner = "taxpayer"
	OwnerSpouse   Owner = "spouse"
	OwnerJoint    Owner = "joint"
)

// Frequency describes how the Amount field is expressed.
type Frequency string

const (
	FrequencyYearly  Frequency = "yearly"
	FrequencyMonthly Frequency = "monthly"
)

// AnnuityDetails carries the fields needed for TEFRA classification of
// annuity distributions.
type AnnuityDetails struct {
	Basis        decimal.Decimal `yaml:"basis" json:"basis"`
	PurchaseYear int             `yaml:"purchase_year" json:"purchase_year"`
	Qualified    bool            `yaml:"qualified" json:"qualified"`
}

// RothDetails carries the five-year-rule inputs for Roth distributions.
type RothDetails struct {
	FirstContributionYear int  `yaml:"first_contribution_year" json:"first_contribution_year"`
	QualifiedDistribution bool `yaml:"qualified_distribution" json:"qualified_distribution"`
}

// LifeInsuranceDetails flags Modified Endowment Contract status, which
// changes distribution ordering rules.
type LifeInsuranceDetails struct {
	IsMEC bool            `yaml:"is_mec" json:"is_mec"`
	Basis decimal.Decimal `yaml:"basis" json:"basis"`
}

// RMDDetails is attached to qualified-account sources subject to required
// minimum distributions, and to the synthetic estimated-rmd sources the
// engine creates for shortfalls.
type RMDDetails struct {
	AccountBalance  decimal.Decimal  `yaml:"account_balance" json:"account_balance"`
	ShortfallAmount decimal.Decimal  `yaml:"shortfall_amount,omitempty" json:"shortfall_amount,omitempty"`
	OverrideAmount  *decimal.Decimal `yaml:"override_amount,omitempty" json:"override_amount,omitempty"`
	OverrideBalance *decimal.Decimal `yaml:"override_balance,omitempty" json:"override_balance,omitempty"`
	SourceID        string           `yaml:"source_id,omitempty" json:"source_id,omitempty"`
}

// IncomeSource is one stream of household income. The common envelope is
// always present; the detail payloads are attached only when Type requires
// them.
type IncomeSource struct {
	ID        string           `yaml:"id" json:"id"`
	Name      string           `yaml:"name" json:"name"`
	Type      IncomeSourceType `yaml:"type" json:"type"`
	Amount    decimal.Decimal  `yaml:"amount" json:"amount"`
	Owner     Owner            `yaml:"owner" json:"owner"`
	Enabled   bool             `yaml:"enabled" json:"enabled"`
	Frequency Frequency        `yaml:"frequency" json:"frequency"`

	Annuity       *AnnuityDetails       `yaml:"annuity,omitempty" json:"annuity,omitempty"`
	Roth          *RothDetails          `yaml:"roth,omitempty" json:"roth,omitempty"`
	LifeInsurance *LifeInsuranceDetails `yaml:"life_insurance,omitempty" json:"life_insurance,omitempty"`
	RMD           *RMDDetails           `yaml:"rmd,omitempty" json:"rmd,omitempty"`

	// Synthetic marks sources generated by the RMD estimator. Synthetic
	// sources are never user-editable and are removed wholesale when the
	// RMD feature is disabled.
	Synthetic bool `yaml:"synthetic,omitempty" json:"synthetic,omitempty"`
}

// AnnualAmount returns the annualized amount for an enabled source, and
// zero for a disabled one. Every tax formula in the engine consumes income
// through this method.
func (is *IncomeSource) AnnualAmount() decimal.Decimal {
	if !is.Enabled {
		return decimal.Zero
	}
	amount := is.Amount
	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}
	if is.Frequency == FrequencyMonthly {
		return amount.Mul(decimal.NewFromInt(12))
	}
	return amount
}

// IsEarned reports whether the source counts as earned income for FICA and
// Additional Medicare purposes.
func (is *IncomeSource) IsEarned() bool {
	switch is.Type {
	case IncomeTypeWages, IncomeTypeSelfEmployment, IncomeTypeBusiness:
		return true
	}
	return false
}

// IsInvestment reports whether the source counts toward net investment
// income for NIIT purposes. Wages and Social Security never do.
func (is *IncomeSource) IsInvestment() bool {
	switch is.Type {
	case IncomeTypeInterest, IncomeTypeDividends, IncomeTypeQualifiedDividends,
		IncomeTypeLongTermCapGains, IncomeTypeShortTermCapGains,
		IncomeTypeRental, IncomeTypeRoyalty:
		return true
	}
	return false
}

// IsOrdinaryTaxable reports whether the source's annual amount flows into
// ordinary taxable income. Preferential-rate and excluded types are handled
// by their own calculators.
func (is *IncomeSource) IsOrdinaryTaxable() bool {
	switch is.Type {
	case IncomeTypeWages, IncomeTypeSelfEmployment, IncomeTypeBusiness,
		IncomeTypeTraditionalIRA, IncomeTypePension, IncomeTypeAnnuity,
		IncomeTypeShortTermCapGains, IncomeTypeInterest, IncomeTypeDividends,
		IncomeTypeRental, IncomeTypeRoyalty, IncomeTypeEstimatedRMD,
		IncomeTypeOther:
		return true
	}
	return false
}

// KnownIncomeType reports whether t is one of the recognized source types.
// Unknown types are coerced to IncomeTypeOther by the input layer.
func KnownIncomeType(t IncomeSourceType) bool {
	switch t {
	case IncomeTypeWages, IncomeTypeSelfEmployment, IncomeTypeBusiness,
		IncomeTypeTraditionalIRA, IncomeTypeRothIRA, IncomeTypeSocialSecurity,
		IncomeTypePension, IncomeTypeAnnuity, IncomeTypeLifeInsurance,
		IncomeTypeLongTermCapGains, IncomeTypeShortTermCapGains,
		IncomeTypeQualifiedDividends, IncomeTypeInterest,
		IncomeTypeTaxExemptInterest, IncomeTypeDividends, IncomeTypeRental,
		IncomeTypeRoyalty, IncomeTypeEstimatedRMD, IncomeTypeOther:
		return true
	}
	return false
}
