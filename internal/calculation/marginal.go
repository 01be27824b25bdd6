package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// Threshold causes reported by the rate-change search.
const (
	CauseFederalBracket     = "federal-bracket"
	CauseCapitalGains       = "capital-gains-bracket"
	CauseSocialSecurity     = "social-security-taxability"
	CauseNIIT               = "niit"
	CauseAdditionalMedicare = "additional-medicare"
)

// ErrMarginalAnalysis wraps failures of the forward-looking search so the
// caller can substitute the bracket-only estimate.
var ErrMarginalAnalysis = errors.New("marginal analysis unavailable")

// rateEpsilon filters finite-difference noise when comparing marginal
// rates on either side of a candidate threshold.
var rateEpsilon = decimal.NewFromFloat(0.0001)

// searchHorizon bounds how far above current income the search walks.
var searchHorizon = decimal.NewFromInt(1000000)

// MarginalRateAnalyzer finds the income thresholds at which the
// household's marginal rate changes: bracket edges, Social Security tiers,
// surtax thresholds, and capital gains bracket edges.
type MarginalRateAnalyzer struct {
	Engine *CalculationEngine
}

// NewMarginalRateAnalyzer creates an analyzer over an engine.
func NewMarginalRateAnalyzer(engine *CalculationEngine) *MarginalRateAnalyzer {
	return &MarginalRateAnalyzer{Engine: engine}
}

// candidate is one potential crossing in extra-income space.
type candidate struct {
	Extra decimal.Decimal
	Cause string
}

// Analyze walks income forward from the current total and records up to
// maxChanges marginal-rate changes. Simultaneous crossings are reported at
// the same step, one entry per cause. An internal failure is returned as
// an ErrMarginalAnalysis wrap so the caller can degrade to BasicEstimate.
func (mra *MarginalRateAnalyzer) Analyze(hh *domain.Household, sources []domain.IncomeSource, deductions domain.Deductions, settings domain.AppSettings, maxChanges int) (analysis *domain.MarginalAnalysis, err error) {
	if mra.Engine == nil {
		return nil, fmt.Errorf("%w: no engine", ErrMarginalAnalysis)
	}
	if maxChanges <= 0 {
		maxChanges = 3
	}
	defer func() {
		if r := recover(); r != nil {
			analysis = nil
			err = fmt.Errorf("%w: %v", ErrMarginalAnalysis, r)
		}
	}()

	base := mra.Engine.Calculate(hh, sources, deductions, settings)
	probeEarned := base.EarnedIncome.GreaterThan(decimal.Zero)

	fs := domain.FilingStatusSingle
	if hh != nil && domain.KnownFilingStatus(hh.FilingStatus) {
		fs = hh.FilingStatus
	}

	// Adjacent candidates probe overlapping income levels; cache each
	// level's tax so the engine runs once per distinct amount.
	taxCache := make(map[string]decimal.Decimal)
	taxAt := func(extra decimal.Decimal) decimal.Decimal {
		key := extra.String()
		if tax, ok := taxCache[key]; ok {
			return tax
		}
		tax := mra.taxWithExtra(hh, sources, deductions, settings, extra, probeEarned)
		taxCache[key] = tax
		return tax
	}

	one := decimal.NewFromInt(1)
	currentRate := taxAt(one).Sub(taxAt(decimal.Zero))

	analysis = &domain.MarginalAnalysis{CurrentRate: currentRate}

	candidates := mra.candidates(base, settings, fs, probeEarned)
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].Extra.Equal(candidates[j].Extra) {
			return candidates[i].Extra.LessThan(candidates[j].Extra)
		}
		return candidates[i].Cause < candidates[j].Cause
	})

	for _, cand := range candidates {
		if len(analysis.RateChanges) >= maxChanges {
			break
		}
		if cand.Extra.LessThanOrEqual(decimal.Zero) || cand.Extra.GreaterThan(searchHorizon) {
			continue
		}

		fromRate := taxAt(cand.Extra).Sub(taxAt(cand.Extra.Sub(one)))
		toRate := taxAt(cand.Extra.Add(one)).Sub(taxAt(cand.Extra))
		if toRate.Sub(fromRate).Abs().LessThanOrEqual(rateEpsilon) {
			continue
		}

		change := domain.RateChange{
			AmountToChange:  cand.Extra,
			ThresholdIncome: base.TotalIncome.Add(cand.Extra),
			FromRate:        fromRate,
			ToRate:          toRate,
			Cause:           cand.Cause,
			ChangeType:      domain.RateChangeIncrease,
		}
		if toRate.LessThan(fromRate) {
			change.ChangeType = domain.RateChangeDecrease
		}
		analysis.RateChanges = append(analysis.RateChanges, change)
	}

	return analysis, nil
}

// candidates collects the threshold crossings every subsystem could
// contribute, expressed as extra income above the current base.
func (mra *MarginalRateAnalyzer) candidates(base *domain.CalculationResult, settings domain.AppSettings, fs domain.FilingStatus, probeEarned bool) []candidate {
	var out []candidate

	ordinaryBrackets, _ := mra.Engine.bracketsAndDeduction(settings, fs)
	preferential := base.CapitalGains.LongTerm.Add(base.CapitalGains.QualifiedDividends)
	ordinaryTaxable := base.FederalTaxableIncome.Sub(preferential)
	if ordinaryTaxable.LessThan(decimal.Zero) {
		ordinaryTaxable = decimal.Zero
	}

	for _, edge := range mra.Engine.Brackets.Boundaries(ordinaryBrackets) {
		if edge.GreaterThan(ordinaryTaxable) {
			out = append(out, candidate{Extra: edge.Sub(ordinaryTaxable), Cause: CauseFederalBracket})
		}
	}

	// Capital gains brackets matter only when preferential income sits on
	// the stack; extra ordinary income pushes that layer upward.
	if preferential.GreaterThan(decimal.Zero) {
		stackTop := ordinaryTaxable.Add(preferential)
		for _, edge := range mra.Engine.Brackets.Boundaries(mra.Engine.CapGains.Brackets.ForStatus(fs)) {
			if edge.GreaterThan(stackTop) {
				out = append(out, candidate{Extra: edge.Sub(stackTop), Cause: CauseCapitalGains})
			}
		}
	}

	if base.SocialSecurity.GrossBenefits.GreaterThan(decimal.Zero) {
		provisional := base.SocialSecurity.ProvisionalIncome
		for _, tier := range []decimal.Decimal{
			mra.Engine.SSTax.Tier1.ForStatus(fs),
			mra.Engine.SSTax.Tier2.ForStatus(fs),
		} {
			if tier.GreaterThan(provisional) {
				out = append(out, candidate{Extra: tier.Sub(provisional), Cause: CauseSocialSecurity})
			}
		}
	}

	if base.NIIT.NetInvestmentIncome.GreaterThan(decimal.Zero) {
		threshold := mra.Engine.NIITCalc.Threshold.ForStatus(fs)
		if threshold.GreaterThan(base.FederalMAGI) {
			out = append(out, candidate{Extra: threshold.Sub(base.FederalMAGI), Cause: CauseNIIT})
		}
	}

	if probeEarned && settings.FICAEnabled {
		threshold := mra.Engine.FICATax.Additional.Threshold.ForStatus(fs)
		if threshold.GreaterThan(base.EarnedIncome) {
			out = append(out, candidate{Extra: threshold.Sub(base.EarnedIncome), Cause: CauseAdditionalMedicare})
		}
	}

	return out
}

// taxWithExtra recomputes total tax with a probe source added. The probe
// is wages when the household already has earned income (so payroll
// thresholds move with it), otherwise plain ordinary income.
func (mra *MarginalRateAnalyzer) taxWithExtra(hh *domain.Household, sources []domain.IncomeSource, deductions domain.Deductions, settings domain.AppSettings, extra decimal.Decimal, earned bool) decimal.Decimal {
	if extra.LessThanOrEqual(decimal.Zero) {
		return mra.Engine.Calculate(hh, sources, deductions, settings).TotalTax
	}

	probeType := domain.IncomeTypeOther
	if earned {
		probeType = domain.IncomeTypeWages
	}
	probe := domain.IncomeSource{
		ID:        "marginal-probe",
		Name:      "Marginal probe",
		Type:      probeType,
		Amount:    extra,
		Owner:     domain.OwnerTaxpayer,
		Enabled:   true,
		Frequency: domain.FrequencyYearly,
	}

	augmented := make([]domain.IncomeSource, 0, len(sources)+1)
	augmented = append(augmented, sources...)
	augmented = append(augmented, probe)
	return mra.Engine.Calculate(hh, augmented, deductions, settings).TotalTax
}

// BasicEstimate is the bracket-only fallback used when Analyze fails: the
// current federal marginal rate and the next ordinary bracket edge,
// nothing else.
func (mra *MarginalRateAnalyzer) BasicEstimate(base *domain.CalculationResult) *domain.MarginalAnalysis {
	analysis := &domain.MarginalAnalysis{
		CurrentRate:   base.FederalMarginalRate,
		BasicEstimate: true,
	}
	if base.AmountToNextBracket.GreaterThan(decimal.Zero) {
		analysis.RateChanges = append(analysis.RateChanges, domain.RateChange{
			AmountToChange:  base.AmountToNextBracket,
			ThresholdIncome: base.TotalIncome.Add(base.AmountToNextBracket),
			FromRate:        base.FederalMarginalRate,
			ChangeType:      domain.RateChangeIncrease,
			Cause:           CauseFederalBracket,
		})
	}
	return analysis
}
