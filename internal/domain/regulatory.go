package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one row of a progressive rate table. Brackets are ordered,
// non-overlapping, and cover [0, inf); the last bracket's Max is the
// UnboundedBracketMax sentinel.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// UnboundedBracketMax caps the top bracket. No planning input approaches it.
var UnboundedBracketMax = decimal.NewFromInt(999999999)

// RegulatoryConfig contains every published constant the engine consumes
// for one tax year. It is loaded from regulatory.yaml and falls back to the
// built-in defaults for any section left empty.
type RegulatoryConfig struct {
	Metadata           RegulatoryMetadata      `yaml:"metadata" json:"metadata"`
	FederalTax         FederalTaxRules         `yaml:"federal_tax" json:"federal_tax"`
	CapitalGains       CapitalGainsRules       `yaml:"capital_gains" json:"capital_gains"`
	SocialSecurity     SocialSecurityTaxRules  `yaml:"social_security" json:"social_security"`
	FICA               FICARules               `yaml:"fica" json:"fica"`
	NIIT               NIITRules               `yaml:"niit" json:"niit"`
	AdditionalMedicare AdditionalMedicareRules `yaml:"additional_medicare" json:"additional_medicare"`
	AMT                AMTRules                `yaml:"amt" json:"amt"`
	Medicare           MedicareRules           `yaml:"medicare" json:"medicare"`
	States             map[string]StateRules   `yaml:"states" json:"states"`
	RMD                RMDRules                `yaml:"rmd" json:"rmd"`
}

// RegulatoryMetadata describes the vintage of the regulatory data.
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// StatusAmounts holds one dollar amount per filing status.
type StatusAmounts struct {
	Single               decimal.Decimal `yaml:"single" json:"single"`
	MarriedFilingJointly decimal.Decimal `yaml:"married_filing_jointly" json:"married_filing_jointly"`
	HeadOfHousehold      decimal.Decimal `yaml:"head_of_household" json:"head_of_household"`
}

// ForStatus returns the amount for the given filing status.
func (sa StatusAmounts) ForStatus(fs FilingStatus) decimal.Decimal {
	switch fs {
	case FilingStatusMarriedFilingJointly:
		return sa.MarriedFilingJointly
	case FilingStatusHeadOfHousehold:
		return sa.HeadOfHousehold
	default:
		return sa.Single
	}
}

// StatusBrackets holds one bracket table per filing status.
type StatusBrackets struct {
	Single               []TaxBracket `yaml:"single" json:"single"`
	MarriedFilingJointly []TaxBracket `yaml:"married_filing_jointly" json:"married_filing_jointly"`
	HeadOfHousehold      []TaxBracket `yaml:"head_of_household" json:"head_of_household"`
}

// ForStatus returns the bracket table for the given filing status.
func (sb StatusBrackets) ForStatus(fs FilingStatus) []TaxBracket {
	switch fs {
	case FilingStatusMarriedFilingJointly:
		return sb.MarriedFilingJointly
	case FilingStatusHeadOfHousehold:
		return sb.HeadOfHousehold
	default:
		return sb.Single
	}
}

// SeniorDeductionRules model the senior bonus deduction: a per-person
// deduction for filers 65 and older that phases out above a MAGI start.
// The thresholds are hand-tuned planning constants, kept configurable
// pending confirmation against published tables.
type SeniorDeductionRules struct {
	Enabled       bool            `yaml:"enabled" json:"enabled"`
	AmountPer65   decimal.Decimal `yaml:"amount_per_65" json:"amount_per_65"`
	PhaseOutStart StatusAmounts   `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutRate  decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
}

// FederalTaxRules contains the ordinary-income side of federal tax law:
// standard deductions, the age-65 additions, and the bracket tables for
// current law and for the post-TCJA-sunset law used for 2026+ projections
// when the sunset flag is set.
type FederalTaxRules struct {
	StandardDeduction       StatusAmounts        `yaml:"standard_deduction" json:"standard_deduction"`
	AdditionalDeduction65   StatusAmounts        `yaml:"additional_deduction_65" json:"additional_deduction_65"`
	SeniorDeduction         SeniorDeductionRules `yaml:"senior_deduction" json:"senior_deduction"`
	Brackets                StatusBrackets       `yaml:"brackets" json:"brackets"`
	SunsetStandardDeduction StatusAmounts        `yaml:"sunset_standard_deduction" json:"sunset_standard_deduction"`
	SunsetBrackets          StatusBrackets       `yaml:"sunset_brackets" json:"sunset_brackets"`
	SunsetEffectiveYear     int                  `yaml:"sunset_effective_year" json:"sunset_effective_year"`
}

// CapitalGainsRules contains the preferential-rate bracket tables used for
// long-term gains and qualified dividends.
type CapitalGainsRules struct {
	Brackets StatusBrackets `yaml:"brackets" json:"brackets"`
}

// SocialSecurityTaxRules contains the two provisional-income thresholds
// that drive benefit taxability, per filing status.
type SocialSecurityTaxRules struct {
	Tier1Threshold StatusAmounts `yaml:"tier1_threshold" json:"tier1_threshold"`
	Tier2Threshold StatusAmounts `yaml:"tier2_threshold" json:"tier2_threshold"`
}

// FICARules contains payroll tax rates and the Social Security wage base.
type FICARules struct {
	SocialSecurityRate     decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase decimal.Decimal `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate           decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
}

// NIITRules contains the net-investment-income surtax rate and its MAGI
// thresholds.
type NIITRules struct {
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	MAGIThreshold StatusAmounts   `yaml:"magi_threshold" json:"magi_threshold"`
}

// AdditionalMedicareRules contains the 0.9% earned-income surtax rate and
// thresholds. The thresholds are the published per-status values; they are
// never derived by halving or doubling another status.
type AdditionalMedicareRules struct {
	Rate            decimal.Decimal `yaml:"rate" json:"rate"`
	EarnedThreshold StatusAmounts   `yaml:"earned_threshold" json:"earned_threshold"`
}

// AMTRules contains the parallel minimum tax parameters.
type AMTRules struct {
	Exemption      StatusAmounts   `yaml:"exemption" json:"exemption"`
	PhaseOutStart  StatusAmounts   `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutRate   decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
	LowRate        decimal.Decimal `yaml:"low_rate" json:"low_rate"`
	HighRate       decimal.Decimal `yaml:"high_rate" json:"high_rate"`
	RateBreakpoint decimal.Decimal `yaml:"rate_breakpoint" json:"rate_breakpoint"`
}

// MedicareIRMAATier is one IRMAA income tier with its Part B and Part D
// monthly surcharges per covered person.
type MedicareIRMAATier struct {
	IncomeThresholdSingle decimal.Decimal `yaml:"income_threshold_single" json:"income_threshold_single"`
	IncomeThresholdJoint  decimal.Decimal `yaml:"income_threshold_joint" json:"income_threshold_joint"`
	PartBMonthlySurcharge decimal.Decimal `yaml:"part_b_monthly_surcharge" json:"part_b_monthly_surcharge"`
	PartDMonthlySurcharge decimal.Decimal `yaml:"part_d_monthly_surcharge" json:"part_d_monthly_surcharge"`
}

// MedicareRules contains the Part B base premium and the IRMAA tier table.
// ThresholdAdjustmentSingle is a hand-tuned planning offset applied to the
// single-filer thresholds; it defaults to zero and should only be set after
// confirming against the current CMS tables.
type MedicareRules struct {
	PartBBasePremium          decimal.Decimal     `yaml:"part_b_base_premium" json:"part_b_base_premium"`
	IRMAATiers                []MedicareIRMAATier `yaml:"irmaa_tiers" json:"irmaa_tiers"`
	ThresholdAdjustmentSingle decimal.Decimal     `yaml:"threshold_adjustment_single" json:"threshold_adjustment_single"`
}

// StateRules contains the flat-rate state regime plus the homestead
// property tax credit parameters. Only Michigan is populated by default.
type StateRules struct {
	Rate                     decimal.Decimal `yaml:"rate" json:"rate"`
	PersonalExemption        decimal.Decimal `yaml:"personal_exemption" json:"personal_exemption"`
	HomesteadIncomeCeiling   decimal.Decimal `yaml:"homestead_income_ceiling" json:"homestead_income_ceiling"`
	HomesteadThresholdRate   decimal.Decimal `yaml:"homestead_threshold_rate" json:"homestead_threshold_rate"`
	HomesteadMaxCredit       decimal.Decimal `yaml:"homestead_max_credit" json:"homestead_max_credit"`
	HomesteadResidencyMonths int             `yaml:"homestead_residency_months" json:"homestead_residency_months"`
}

// RMDRules contains the required-minimum-distribution start age and the
// age-to-life-expectancy-factor table.
type RMDRules struct {
	StartAge int             `yaml:"start_age" json:"start_age"`
	Factors  map[int]float64 `yaml:"factors" json:"factors"`
}

func bracket(min, max int64, rate float64) TaxBracket {
	return TaxBracket{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max), Rate: decimal.NewFromFloat(rate)}
}

func topBracket(min int64, rate float64) TaxBracket {
	return TaxBracket{Min: decimal.NewFromInt(min), Max: UnboundedBracketMax, Rate: decimal.NewFromFloat(rate)}
}

func statusAmounts(single, mfj, hoh int64) StatusAmounts {
	return StatusAmounts{
		Single:               decimal.NewFromInt(single),
		MarriedFilingJointly: decimal.NewFromInt(mfj),
		HeadOfHousehold:      decimal.NewFromInt(hoh),
	}
}

// DefaultRegulatory2025 returns the built-in regulatory constants for tax
// year 2025. Values without an official published source are planning
// estimates and are overridable from regulatory.yaml.
func DefaultRegulatory2025() *RegulatoryConfig {
	return &RegulatoryConfig{
		Metadata: RegulatoryMetadata{
			DataYear:    2025,
			LastUpdated: "2025-01-15",
			Description: "2025 federal, Michigan, and Medicare planning constants",
		},
		FederalTax: FederalTaxRules{
			StandardDeduction:     statusAmounts(15000, 30000, 22500),
			AdditionalDeduction65: statusAmounts(2000, 1600, 2000),
			SeniorDeduction: SeniorDeductionRules{
				Enabled:       true,
				AmountPer65:   decimal.NewFromInt(6000),
				PhaseOutStart: statusAmounts(75000, 150000, 75000),
				PhaseOutRate:  decimal.NewFromFloat(0.06),
			},
			Brackets: StatusBrackets{
				Single: []TaxBracket{
					bracket(0, 11925, 0.10),
					bracket(11925, 48475, 0.12),
					bracket(48475, 103350, 0.22),
					bracket(103350, 197300, 0.24),
					bracket(197300, 250525, 0.32),
					bracket(250525, 626350, 0.35),
					topBracket(626350, 0.37),
				},
				MarriedFilingJointly: []TaxBracket{
					bracket(0, 23850, 0.10),
					bracket(23850, 96950, 0.12),
					bracket(96950, 206700, 0.22),
					bracket(206700, 394600, 0.24),
					bracket(394600, 501050, 0.32),
					bracket(501050, 751600, 0.35),
					topBracket(751600, 0.37),
				},
				HeadOfHousehold: []TaxBracket{
					bracket(0, 17000, 0.10),
					bracket(17000, 64850, 0.12),
					bracket(64850, 103350, 0.22),
					bracket(103350, 197300, 0.24),
					bracket(197300, 250500, 0.32),
					bracket(250500, 626350, 0.35),
					topBracket(626350, 0.37),
				},
			},
			SunsetStandardDeduction: statusAmounts(8350, 16700, 12250),
			SunsetBrackets: StatusBrackets{
				Single: []TaxBracket{
					bracket(0, 11925, 0.10),
					bracket(11925, 48475, 0.15),
					bracket(48475, 117350, 0.25),
					bracket(117350, 244700, 0.28),
					bracket(244700, 531900, 0.33),
					bracket(531900, 640500, 0.35),
					topBracket(640500, 0.396),
				},
				MarriedFilingJointly: []TaxBracket{
					bracket(0, 23850, 0.10),
					bracket(23850, 96950, 0.15),
					bracket(96950, 195750, 0.25),
					bracket(195750, 298300, 0.28),
					bracket(298300, 531900, 0.33),
					bracket(531900, 640500, 0.35),
					topBracket(640500, 0.396),
				},
				HeadOfHousehold: []TaxBracket{
					bracket(0, 17000, 0.10),
					bracket(17000, 64850, 0.15),
					bracket(64850, 167650, 0.25),
					bracket(167650, 271550, 0.28),
					bracket(271550, 531900, 0.33),
					bracket(531900, 640500, 0.35),
					topBracket(640500, 0.396),
				},
			},
			SunsetEffectiveYear: 2026,
		},
		CapitalGains: CapitalGainsRules{
			Brackets: StatusBrackets{
				Single: []TaxBracket{
					bracket(0, 48350, 0.0),
					bracket(48350, 533400, 0.15),
					topBracket(533400, 0.20),
				},
				MarriedFilingJointly: []TaxBracket{
					bracket(0, 96700, 0.0),
					bracket(96700, 600050, 0.15),
					topBracket(600050, 0.20),
				},
				HeadOfHousehold: []TaxBracket{
					bracket(0, 64750, 0.0),
					bracket(64750, 566700, 0.15),
					topBracket(566700, 0.20),
				},
			},
		},
		SocialSecurity: SocialSecurityTaxRules{
			Tier1Threshold: statusAmounts(25000, 32000, 25000),
			Tier2Threshold: statusAmounts(34000, 44000, 34000),
		},
		FICA: FICARules{
			SocialSecurityRate:     decimal.NewFromFloat(0.062),
			SocialSecurityWageBase: decimal.NewFromInt(176100),
			MedicareRate:           decimal.NewFromFloat(0.0145),
		},
		NIIT: NIITRules{
			Rate:          decimal.NewFromFloat(0.038),
			MAGIThreshold: statusAmounts(200000, 250000, 200000),
		},
		AdditionalMedicare: AdditionalMedicareRules{
			Rate:            decimal.NewFromFloat(0.009),
			EarnedThreshold: statusAmounts(200000, 250000, 200000),
		},
		AMT: AMTRules{
			Exemption:      statusAmounts(88100, 137000, 88100),
			PhaseOutStart:  statusAmounts(626350, 1252700, 626350),
			PhaseOutRate:   decimal.NewFromFloat(0.25),
			LowRate:        decimal.NewFromFloat(0.26),
			HighRate:       decimal.NewFromFloat(0.28),
			RateBreakpoint: decimal.NewFromInt(239100),
		},
		Medicare: MedicareRules{
			PartBBasePremium: decimal.NewFromFloat(185.00),
			IRMAATiers: []MedicareIRMAATier{
				{
					IncomeThresholdSingle: decimal.NewFromInt(106000),
					IncomeThresholdJoint:  decimal.NewFromInt(212000),
					PartBMonthlySurcharge: decimal.NewFromFloat(74.00),
					PartDMonthlySurcharge: decimal.NewFromFloat(13.70),
				},
				{
					IncomeThresholdSingle: decimal.NewFromInt(133000),
					IncomeThresholdJoint:  decimal.NewFromInt(266000),
					PartBMonthlySurcharge: decimal.NewFromFloat(185.00),
					PartDMonthlySurcharge: decimal.NewFromFloat(35.30),
				},
				{
					IncomeThresholdSingle: decimal.NewFromInt(167000),
					IncomeThresholdJoint:  decimal.NewFromInt(334000),
					PartBMonthlySurcharge: decimal.NewFromFloat(295.90),
					PartDMonthlySurcharge: decimal.NewFromFloat(57.00),
				},
				{
					IncomeThresholdSingle: decimal.NewFromInt(200000),
					IncomeThresholdJoint:  decimal.NewFromInt(400000),
					PartBMonthlySurcharge: decimal.NewFromFloat(406.90),
					PartDMonthlySurcharge: decimal.NewFromFloat(78.60),
				},
				{
					IncomeThresholdSingle: decimal.NewFromInt(500000),
					IncomeThresholdJoint:  decimal.NewFromInt(750000),
					PartBMonthlySurcharge: decimal.NewFromFloat(443.90),
					PartDMonthlySurcharge: decimal.NewFromFloat(85.80),
				},
			},
		},
		States: map[string]StateRules{
			"MI": {
				Rate:                     decimal.NewFromFloat(0.0425),
				PersonalExemption:        decimal.NewFromInt(5800),
				HomesteadIncomeCeiling:   decimal.NewFromInt(69700),
				HomesteadThresholdRate:   decimal.NewFromFloat(0.032),
				HomesteadMaxCredit:       decimal.NewFromInt(1800),
				HomesteadResidencyMonths: 6,
			},
		},
		RMD: RMDRules{
			StartAge: 73,
			Factors:  UniformLifetimeFactors(),
		},
	}
}

// UniformLifetimeFactors returns the IRS Uniform Lifetime Table (Pub 590-B,
// Table III) used for RMD computation when the sole beneficiary is not a
// spouse more than ten years younger.
func UniformLifetimeFactors() map[int]float64 {
	return map[int]float64{
		72: 27.4, 73: 26.5, 74: 25.5, 75: 24.6, 76: 23.7, 77: 22.9,
		78: 22.0, 79: 21.1, 80: 20.2, 81: 19.4, 82: 18.5, 83: 17.7,
		84: 16.8, 85: 16.0, 86: 15.2, 87: 14.4, 88: 13.7, 89: 12.9,
		90: 12.2, 91: 11.5, 92: 10.8, 93: 10.1, 94: 9.5, 95: 8.9,
		96: 8.4, 97: 7.8, 98: 7.3, 99: 6.8, 100: 6.4, 101: 6.0,
		102: 5.6, 103: 5.2, 104: 4.9, 105: 4.6, 106: 4.3, 107: 4.1,
		108: 3.9, 109: 3.7, 110: 3.5, 111: 3.4, 112: 3.3, 113: 3.1,
		114: 3.0, 115: 2.9, 116: 2.8, 117: 2.7, 118: 2.5, 119: 2.3,
		120: 2.0,
	}
}
