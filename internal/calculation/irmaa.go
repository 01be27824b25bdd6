package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// IRMAAWarningDistance is how close MAGI can get to the next tier
	// before the risk status moves to warning.
	IRMAAWarningDistance = 10000

	IRMAARiskSafe    = "safe"
	IRMAARiskWarning = "warning"
	IRMAARiskBreach  = "breached"
)

// IRMAACalculator resolves the Medicare premium surcharge tier from MAGI
// and the household's Part B / Part D enrollment.
type IRMAACalculator struct {
	Rules domain.MedicareRules
}

// NewIRMAACalculator2025 creates an IRMAA calculator with the 2025 tier
// table.
func NewIRMAACalculator2025() *IRMAACalculator {
	return NewIRMAACalculator(domain.DefaultRegulatory2025().Medicare)
}

// NewIRMAACalculator creates an IRMAA calculator from regulatory config.
func NewIRMAACalculator(rules domain.MedicareRules) *IRMAACalculator {
	return &IRMAACalculator{Rules: rules}
}

// threshold returns the tier's income threshold for the filing status,
// including the configurable single-filer adjustment.
func (ic *IRMAACalculator) threshold(tier domain.MedicareIRMAATier, fs domain.FilingStatus) decimal.Decimal {
	if fs == domain.FilingStatusMarriedFilingJointly {
		return tier.IncomeThresholdJoint
	}
	return tier.IncomeThresholdSingle.Add(ic.Rules.ThresholdAdjustmentSingle)
}

// Calculate walks the tier table and reports the tier the household lands
// in, the monthly surcharges for the coverage it carries, and the distance
// to the next tier. coveredB and coveredD count persons enrolled in each
// part.
func (ic *IRMAACalculator) Calculate(magi decimal.Decimal, fs domain.FilingStatus, coveredB, coveredD int) domain.IRMAABreakdown {
	breakdown := domain.IRMAABreakdown{
		MAGI:       magi,
		RiskStatus: IRMAARiskSafe,
	}
	if len(ic.Rules.IRMAATiers) == 0 || (coveredB == 0 && coveredD == 0) {
		return breakdown
	}

	var partB, partD decimal.Decimal
	tierLevel := 0
	nextThreshold := decimal.Zero

	for i, tier := range ic.Rules.IRMAATiers {
		threshold := ic.threshold(tier, fs)
		if magi.GreaterThan(threshold) {
			partB = tier.PartBMonthlySurcharge
			partD = tier.PartDMonthlySurcharge
			tierLevel = i + 1
			nextThreshold = decimal.Zero
		} else {
			nextThreshold = threshold
			break
		}
	}

	breakdown.TierLevel = tierLevel
	if tierLevel > 0 {
		breakdown.RiskStatus = IRMAARiskBreach
		if coveredB > 0 {
			breakdown.MonthlyPartB = partB.Mul(decimal.NewFromInt(int64(coveredB)))
		}
		if coveredD > 0 {
			breakdown.MonthlyPartD = partD.Mul(decimal.NewFromInt(int64(coveredD)))
		}
		breakdown.AnnualSurcharge = breakdown.MonthlyPartB.Add(breakdown.MonthlyPartD).Mul(decimal.NewFromInt(12))
	}

	if !nextThreshold.IsZero() {
		breakdown.DistanceToNextTier = nextThreshold.Sub(magi)
		if tierLevel == 0 && breakdown.DistanceToNextTier.LessThanOrEqual(decimal.NewFromInt(IRMAAWarningDistance)) {
			breakdown.RiskStatus = IRMAARiskWarning
		}
	}

	return breakdown
}
