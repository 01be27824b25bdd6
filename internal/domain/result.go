package domain

import (
	"github.com/shopspring/decimal"
)

// SocialSecurityTier identifies which taxability tier the household landed
// in.
type SocialSecurityTier int

const (
	SSTierNone SocialSecurityTier = iota + 1
	SSTierPartial
	SSTierMaximum
)

// SocialSecurityBreakdown reports the provisional-income computation.
type SocialSecurityBreakdown struct {
	GrossBenefits         decimal.Decimal    `json:"grossBenefits"`
	ProvisionalIncome     decimal.Decimal    `json:"provisionalIncome"`
	Tier                  SocialSecurityTier `json:"tier"`
	TaxableSocialSecurity decimal.Decimal    `json:"taxableSocialSecurity"`
}

// CapitalGainsBreakdown reports the stacked preferential-rate computation.
type CapitalGainsBreakdown struct {
	LongTerm           decimal.Decimal `json:"longTerm"`
	ShortTerm          decimal.Decimal `json:"shortTerm"`
	QualifiedDividends decimal.Decimal `json:"qualifiedDividends"`
	Tax                decimal.Decimal `json:"tax"`
	ShortTermTax       decimal.Decimal `json:"shortTermTax"`
	EffectiveRate      decimal.Decimal `json:"effectiveRate"`
	MarginalRate       decimal.Decimal `json:"marginalRate"`
}

// FICABreakdown reports payroll taxes on earned income.
type FICABreakdown struct {
	SocialSecurityTax     decimal.Decimal `json:"socialSecurityTax"`
	MedicareTax           decimal.Decimal `json:"medicareTax"`
	AdditionalMedicareTax decimal.Decimal `json:"additionalMedicareTax"`
	TotalFICA             decimal.Decimal `json:"totalFICA"`
}

// NIITBreakdown reports the net investment income surtax.
type NIITBreakdown struct {
	Tax                 decimal.Decimal `json:"tax"`
	Applies             bool            `json:"applies"`
	NetInvestmentIncome decimal.Decimal `json:"netInvestmentIncome"`
	ExcessIncome        decimal.Decimal `json:"excessIncome"`
}

// AdditionalMedicareBreakdown reports the 0.9% earned-income surtax.
type AdditionalMedicareBreakdown struct {
	Tax          decimal.Decimal `json:"tax"`
	Applies      bool            `json:"applies"`
	ExcessIncome decimal.Decimal `json:"excessIncome"`
}

// AMTBreakdown reports the parallel minimum tax computation.
type AMTBreakdown struct {
	AMTIncome        decimal.Decimal `json:"amtIncome"`
	Exemption        decimal.Decimal `json:"exemption"`
	AMTTaxableIncome decimal.Decimal `json:"amtTaxableIncome"`
	TentativeAMT     decimal.Decimal `json:"tentativeAmt"`
	AdditionalTax    decimal.Decimal `json:"additionalTax"`
	Adjustments      decimal.Decimal `json:"adjustments"`
}

// StateBreakdown reports the flat-rate state tax and homestead credit.
type StateBreakdown struct {
	StateTaxableIncome decimal.Decimal `json:"stateTaxableIncome"`
	StateTax           decimal.Decimal `json:"stateTax"`
	HomesteadCredit    decimal.Decimal `json:"homesteadCredit"`
	CreditEligible     bool            `json:"creditEligible"`
}

// IRMAABreakdown reports the Medicare premium surcharge position.
type IRMAABreakdown struct {
	MAGI               decimal.Decimal `json:"magi"`
	TierLevel          int             `json:"tierLevel"`
	RiskStatus         string          `json:"riskStatus"`
	MonthlyPartB       decimal.Decimal `json:"monthlyPartB"`
	MonthlyPartD       decimal.Decimal `json:"monthlyPartD"`
	AnnualSurcharge    decimal.Decimal `json:"annualSurcharge"`
	DistanceToNextTier decimal.Decimal `json:"distanceToNextTier"`
}

// RateChangeType distinguishes rate increases from decreases in the
// forward-looking search.
type RateChangeType string

const (
	RateChangeIncrease RateChangeType = "increase"
	RateChangeDecrease RateChangeType = "decrease"
)

// RateChange is one threshold crossing found by the next-rate-hike search.
type RateChange struct {
	AmountToChange  decimal.Decimal `json:"amountToChange"`
	ThresholdIncome decimal.Decimal `json:"thresholdIncome"`
	FromRate        decimal.Decimal `json:"fromRate"`
	ToRate          decimal.Decimal `json:"toRate"`
	ChangeType      RateChangeType  `json:"changeType"`
	Cause           string          `json:"cause"`
}

// MarginalAnalysis is the output of the next-rate-hike search.
type MarginalAnalysis struct {
	CurrentRate decimal.Decimal `json:"currentRate"`
	RateChanges []RateChange    `json:"rateChanges"`
	// BasicEstimate is set when the full search failed and the result was
	// substituted from the bracket engine alone.
	BasicEstimate bool `json:"basicEstimate"`
}

// RMDEstimate reports one synthesized required-minimum-distribution
// shortfall.
type RMDEstimate struct {
	SourceID        string          `json:"sourceId"`
	Age             int             `json:"age"`
	Factor          decimal.Decimal `json:"factor"`
	AccountBalance  decimal.Decimal `json:"accountBalance"`
	RequiredAmount  decimal.Decimal `json:"requiredAmount"`
	ExistingAmount  decimal.Decimal `json:"existingAmount"`
	ShortfallAmount decimal.Decimal `json:"shortfallAmount"`
}

// CalculationResult is the orchestrator's output: one fully reconciled
// snapshot of the household's liabilities and rates. It is recomputed
// fresh on every call and never mutated afterward.
type CalculationResult struct {
	TaxYear int `json:"taxYear"`

	TotalIncome          decimal.Decimal `json:"totalIncome"`
	EarnedIncome         decimal.Decimal `json:"earnedIncome"`
	FederalAGI           decimal.Decimal `json:"federalAGI"`
	FederalMAGI          decimal.Decimal `json:"federalMAGI"`
	DeductionUsed        decimal.Decimal `json:"deductionUsed"`
	ItemizedUsed         bool            `json:"itemizedUsed"`
	FederalTaxableIncome decimal.Decimal `json:"federalTaxableIncome"`

	FederalOrdinaryTax decimal.Decimal `json:"federalOrdinaryTax"`
	FederalTotalTax    decimal.Decimal `json:"federalTotalTax"`
	StateTotalTax      decimal.Decimal `json:"stateTotalTax"`
	TotalTax           decimal.Decimal `json:"totalTax"`

	SocialSecurity     SocialSecurityBreakdown     `json:"socialSecurity"`
	CapitalGains       CapitalGainsBreakdown       `json:"capitalGains"`
	FICA               FICABreakdown               `json:"fica"`
	NIIT               NIITBreakdown               `json:"niit"`
	AdditionalMedicare AdditionalMedicareBreakdown `json:"additionalMedicare"`
	AMT                AMTBreakdown                `json:"amt"`
	State              StateBreakdown              `json:"state"`
	IRMAA              IRMAABreakdown              `json:"irmaa"`
	RMDEstimates       []RMDEstimate               `json:"rmdEstimates,omitempty"`

	FederalMarginalRate decimal.Decimal `json:"federalMarginalRate"`
	// TotalMarginalRate adds a flat 7.65% FICA rate to the federal marginal
	// rate when FICA applies. This mirrors the planning convention the tool
	// has always used; it is an approximation, not a combined rate derived
	// from the bracket ladder.
	TotalMarginalRate   decimal.Decimal `json:"totalMarginalRate"`
	EffectiveRateTotal  decimal.Decimal `json:"effectiveRateTotal"`
	AmountToNextBracket decimal.Decimal `json:"amountToNextBracket"`

	// Degraded lists sub-calculators that failed and were zero-substituted.
	Degraded []string `json:"degraded,omitempty"`
}
