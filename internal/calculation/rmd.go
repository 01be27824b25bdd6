package calculation

import (
	"fmt"
	"sort"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// RMDCalculator estimates required minimum distributions from qualified
// account balances using the age-to-life-expectancy-factor table.
type RMDCalculator struct {
	StartAge int
	Factors  map[int]float64
}

// NewRMDCalculator2025 creates an RMD calculator using the SECURE 2.0 start
// age and the IRS Uniform Lifetime Table.
func NewRMDCalculator2025() *RMDCalculator {
	return NewRMDCalculator(domain.DefaultRegulatory2025().RMD)
}

// NewRMDCalculator creates an RMD calculator from regulatory config.
func NewRMDCalculator(rules domain.RMDRules) *RMDCalculator {
	return &RMDCalculator{StartAge: rules.StartAge, Factors: rules.Factors}
}

// Factor returns the life-expectancy factor for an age, or false when the
// age is below the RMD start age. Ages beyond the table's end use the
// table's final factor.
func (rc *RMDCalculator) Factor(age int) (decimal.Decimal, bool) {
	if age < rc.StartAge || len(rc.Factors) == 0 {
		return decimal.Zero, false
	}
	if f, ok := rc.Factors[age]; ok {
		return decimal.NewFromFloat(f), true
	}

	maxAge := 0
	for a := range rc.Factors {
		if a > maxAge {
			maxAge = a
		}
	}
	if age > maxAge {
		return decimal.NewFromFloat(rc.Factors[maxAge]), true
	}
	return decimal.Zero, false
}

// RequiredAmount computes round(balance / factor(age)) in whole dollars.
// A zero or missing factor yields an error rather than a division panic.
func (rc *RMDCalculator) RequiredAmount(balance decimal.Decimal, age int) (decimal.Decimal, error) {
	factor, ok := rc.Factor(age)
	if !ok {
		return decimal.Zero, fmt.Errorf("no life expectancy factor for age %d", age)
	}
	if factor.IsZero() {
		return decimal.Zero, fmt.Errorf("zero life expectancy factor for age %d", age)
	}
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	return balance.Div(factor).Round(0), nil
}

// OwnerAges carries the derived ages used to test RMD eligibility per
// account owner. A false Known flag means the birth date was never
// entered; sources owned by that person are skipped.
type OwnerAges struct {
	Taxpayer      int
	TaxpayerKnown bool
	Spouse        int
	SpouseKnown   bool
}

// ForOwner resolves the age for a source owner. Jointly held accounts use
// the taxpayer's age.
func (oa OwnerAges) ForOwner(owner domain.Owner) (int, bool) {
	if owner == domain.OwnerSpouse {
		return oa.Spouse, oa.SpouseKnown
	}
	return oa.Taxpayer, oa.TaxpayerKnown
}

// AnyKnown reports whether at least one household member has a usable age.
func (oa OwnerAges) AnyKnown() bool {
	return oa.TaxpayerKnown || oa.SpouseKnown
}

// Synthesize walks the qualified-account sources and appends a synthetic
// estimated-rmd source for each whose current distribution falls short of
// the required amount. Each source is tested against its own owner's age,
// so a spouse-owned account distributes on the spouse's schedule. Manually
// entered sources are never altered. The override fields on a source's RMD
// details recompute the same formula with user-supplied inputs.
func (rc *RMDCalculator) Synthesize(sources []domain.IncomeSource, ages OwnerAges, logger Logger) ([]domain.IncomeSource, []domain.RMDEstimate) {
	if logger == nil {
		logger = NopLogger{}
	}

	out := StripSynthetic(sources)
	var estimates []domain.RMDEstimate

	for _, src := range out {
		if src.Type != domain.IncomeTypeTraditionalIRA || src.RMD == nil || !src.Enabled {
			continue
		}

		age, ageKnown := ages.ForOwner(src.Owner)
		if !ageKnown {
			logger.Debugf("rmd: skipping source %s: owner %q has no birth date", src.ID, src.Owner)
			continue
		}

		balance := src.RMD.AccountBalance
		if src.RMD.OverrideBalance != nil {
			balance = *src.RMD.OverrideBalance
		}

		var required decimal.Decimal
		if src.RMD.OverrideAmount != nil {
			required = *src.RMD.OverrideAmount
		} else {
			var err error
			required, err = rc.RequiredAmount(balance, age)
			if err != nil {
				logger.Debugf("rmd: skipping source %s: %v", src.ID, err)
				continue
			}
		}
		if required.LessThanOrEqual(decimal.Zero) {
			continue
		}

		existing := src.AnnualAmount()
		if existing.GreaterThanOrEqual(required) {
			continue
		}
		shortfall := required.Sub(existing)

		factor, _ := rc.Factor(age)
		estimates = append(estimates, domain.RMDEstimate{
			SourceID:        src.ID,
			Age:             age,
			Factor:          factor,
			AccountBalance:  balance,
			RequiredAmount:  required,
			ExistingAmount:  existing,
			ShortfallAmount: shortfall,
		})

		out = append(out, domain.IncomeSource{
			ID:        "rmd-" + src.ID,
			Name:      "Estimated RMD (" + src.Name + ")",
			Type:      domain.IncomeTypeEstimatedRMD,
			Amount:    shortfall,
			Owner:     src.Owner,
			Enabled:   true,
			Frequency: domain.FrequencyYearly,
			Synthetic: true,
			RMD: &domain.RMDDetails{
				AccountBalance:  balance,
				ShortfallAmount: shortfall,
				SourceID:        src.ID,
			},
		})
	}

	sort.SliceStable(estimates, func(i, j int) bool { return estimates[i].SourceID < estimates[j].SourceID })
	return out, estimates
}

// StripSynthetic removes every synthetic estimated-rmd source, leaving
// manually entered sources untouched. Disabling the RMD feature reduces to
// exactly this call.
func StripSynthetic(sources []domain.IncomeSource) []domain.IncomeSource {
	out := make([]domain.IncomeSource, 0, len(sources))
	for _, src := range sources {
		if src.Synthetic {
			continue
		}
		out = append(out, src)
	}
	return out
}
