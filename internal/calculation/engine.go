package calculation

import (
	"time"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates every tax subsystem into one reconciled
// result. It is a pure function of its inputs: no member is mutated during
// Calculate, and identical inputs always produce identical output.
type CalculationEngine struct {
	Brackets   *BracketEngine
	SSTax      *SSTaxCalculator
	CapGains   *CapitalGainsCalculator
	FICATax    *FICACalculator
	NIITCalc   *NIITCalculator
	AMTCalc    *AMTCalculator
	StateTax   *StateTaxCalculator
	RMDCalc    *RMDCalculator
	IRMAACalc  *IRMAACalculator
	Regulatory *domain.RegulatoryConfig
	Logger     Logger

	// Now supplies the reference date for age derivation. Tests pin it.
	Now func() time.Time
}

// NewCalculationEngine creates an engine with the built-in 2025 regulatory
// data.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultRegulatory2025())
}

// NewCalculationEngineWithConfig creates an engine from regulatory config.
func NewCalculationEngineWithConfig(reg *domain.RegulatoryConfig) *CalculationEngine {
	if reg == nil {
		reg = domain.DefaultRegulatory2025()
	}
	return &CalculationEngine{
		Brackets:   NewBracketEngine(),
		SSTax:      NewSSTaxCalculator(reg.SocialSecurity),
		CapGains:   NewCapitalGainsCalculator(reg.CapitalGains),
		FICATax:    NewFICACalculator(reg.FICA, reg.AdditionalMedicare),
		NIITCalc:   NewNIITCalculator(reg.NIIT),
		AMTCalc:    NewAMTCalculator(reg.AMT),
		StateTax:   NewStateTaxCalculator(reg.States),
		RMDCalc:    NewRMDCalculator(reg.RMD),
		IRMAACalc:  NewIRMAACalculator(reg.Medicare),
		Regulatory: reg,
		Logger:     NopLogger{},
		Now:        time.Now,
	}
}

// SetLogger installs a logger; nil restores the no-op default.
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = logger
}

// incomePartition is the per-type decomposition of the enabled, annualized
// income sources.
type incomePartition struct {
	Earned            decimal.Decimal
	SocialSecurity    decimal.Decimal
	LongTermGains     decimal.Decimal
	ShortTermGains    decimal.Decimal
	QualifiedDividend decimal.Decimal
	TaxExemptInterest decimal.Decimal
	OrdinaryOther     decimal.Decimal
	Investment        decimal.Decimal
	Total             decimal.Decimal
}

// partition decomposes the income sources. Disabled sources contribute
// zero to every bucket; AnnualAmount enforces that and the monthly
// annualization.
func partition(sources []domain.IncomeSource) incomePartition {
	var p incomePartition
	for i := range sources {
		src := &sources[i]
		amount := src.AnnualAmount()
		if amount.IsZero() {
			continue
		}
		p.Total = p.Total.Add(amount)

		switch src.Type {
		case domain.IncomeTypeSocialSecurity:
			p.SocialSecurity = p.SocialSecurity.Add(amount)
		case domain.IncomeTypeLongTermCapGains:
			p.LongTermGains = p.LongTermGains.Add(amount)
		case domain.IncomeTypeShortTermCapGains:
			p.ShortTermGains = p.ShortTermGains.Add(amount)
		case domain.IncomeTypeQualifiedDividends:
			p.QualifiedDividend = p.QualifiedDividend.Add(amount)
		case domain.IncomeTypeTaxExemptInterest:
			p.TaxExemptInterest = p.TaxExemptInterest.Add(amount)
		case domain.IncomeTypeRothIRA, domain.IncomeTypeLifeInsurance:
			// Tax-free distributions: counted in total income only.
		default:
			if src.IsOrdinaryTaxable() {
				p.OrdinaryOther = p.OrdinaryOther.Add(amount)
			}
		}

		if src.IsEarned() {
			p.Earned = p.Earned.Add(amount)
		}
		if src.IsInvestment() {
			p.Investment = p.Investment.Add(amount)
		}
	}
	return p
}

// bracketsAndDeduction picks the ordinary bracket table and base standard
// deduction, honoring the TCJA sunset flag for years at or past the
// sunset.
func (ce *CalculationEngine) bracketsAndDeduction(settings domain.AppSettings, fs domain.FilingStatus) ([]domain.TaxBracket, decimal.Decimal) {
	ft := ce.Regulatory.FederalTax
	if settings.TCJASunsetting && ft.SunsetEffectiveYear > 0 && settings.TaxYear >= ft.SunsetEffectiveYear {
		return ft.SunsetBrackets.ForStatus(fs), ft.SunsetStandardDeduction.ForStatus(fs)
	}
	return ft.Brackets.ForStatus(fs), ft.StandardDeduction.ForStatus(fs)
}

// standardDeduction builds the full standard deduction: base plus the
// age-65 additions plus the senior bonus deduction with its MAGI phase-out.
func (ce *CalculationEngine) standardDeduction(base decimal.Decimal, fs domain.FilingStatus, magi decimal.Decimal, seniors int) decimal.Decimal {
	ft := ce.Regulatory.FederalTax
	deduction := base
	for i := 0; i < seniors; i++ {
		deduction = deduction.Add(ft.AdditionalDeduction65.ForStatus(fs))
	}

	sd := ft.SeniorDeduction
	if sd.Enabled && seniors > 0 {
		bonus := sd.AmountPer65.Mul(decimal.NewFromInt(int64(seniors)))
		start := sd.PhaseOutStart.ForStatus(fs)
		if magi.GreaterThan(start) {
			bonus = bonus.Sub(magi.Sub(start).Mul(sd.PhaseOutRate))
		}
		if bonus.GreaterThan(decimal.Zero) {
			deduction = deduction.Add(bonus)
		}
	}
	return deduction
}

// safely runs one sub-calculator, converting a panic into a degraded
// (zero-valued) section instead of propagating.
func (ce *CalculationEngine) safely(result *domain.CalculationResult, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ce.Logger.Errorf("calculation: %s failed, substituting zeros: %v", name, r)
			result.Degraded = append(result.Degraded, name)
		}
	}()
	fn()
}

// Calculate runs the full pipeline: partition income, resolve Social
// Security taxability, deduct, tax ordinary income, stack capital gains,
// run AMT in parallel, add the surtaxes, then state tax and rates. Partial
// input (nil household, missing ages, empty sources) degrades to defaults
// rather than failing.
func (ce *CalculationEngine) Calculate(hh *domain.Household, sources []domain.IncomeSource, deductions domain.Deductions, settings domain.AppSettings) *domain.CalculationResult {
	if hh == nil {
		hh = &domain.Household{FilingStatus: domain.FilingStatusSingle}
	}
	fs := hh.FilingStatus
	if !domain.KnownFilingStatus(fs) {
		fs = domain.FilingStatusSingle
	}
	if settings.TaxYear == 0 {
		// A zero tax year means no settings were supplied; take the
		// defaults but keep any Medicare enrollment the caller did set.
		medicare := settings.TaxpayerMedicare
		spouseMedicare := settings.SpouseMedicare
		settings = domain.DefaultSettings()
		settings.TaxpayerMedicare = medicare
		settings.SpouseMedicare = spouseMedicare
	}

	now := ce.Now()
	taxpayerAge, taxpayerAgeKnown := hh.Taxpayer.Age(now)
	spouseAge, spouseAgeKnown := hh.Spouse.Age(now)
	ages := OwnerAges{
		Taxpayer:      taxpayerAge,
		TaxpayerKnown: taxpayerAgeKnown,
		Spouse:        spouseAge,
		SpouseKnown:   spouseAgeKnown,
	}

	result := &domain.CalculationResult{TaxYear: settings.TaxYear}

	// RMD synthesis happens before partitioning so the shortfall sources
	// flow through every downstream total. Each source is tested against
	// its owner's age. Disabling the feature strips synthetic sources and
	// touches nothing else.
	if settings.RMDEnabled && ages.AnyKnown() {
		ce.safely(result, "rmd", func() {
			sources, result.RMDEstimates = ce.RMDCalc.Synthesize(sources, ages, ce.Logger)
		})
	} else {
		sources = StripSynthetic(sources)
	}

	p := partition(sources)
	result.TotalIncome = p.Total
	result.EarnedIncome = p.Earned

	// Other income for the Social Security resolver: everything except the
	// benefits themselves. Tax-exempt interest enters provisional income
	// separately.
	otherIncome := p.OrdinaryOther.Add(p.LongTermGains).Add(p.ShortTermGains).Add(p.QualifiedDividend)

	ce.safely(result, "social-security", func() {
		result.SocialSecurity = ce.SSTax.Resolve(p.SocialSecurity, otherIncome, p.TaxExemptInterest, fs)
	})

	agi := otherIncome.Add(result.SocialSecurity.TaxableSocialSecurity)
	magi := agi.Add(p.TaxExemptInterest)
	result.FederalAGI = agi
	result.FederalMAGI = magi

	seniors := 0
	if taxpayerAgeKnown && taxpayerAge >= 65 {
		seniors++
	}
	if spouseAgeKnown && spouseAge >= 65 {
		seniors++
	}

	brackets, baseDeduction := ce.bracketsAndDeduction(settings, fs)
	standard := ce.standardDeduction(baseDeduction, fs, magi, seniors)
	itemized := deductions.ItemizedTotal(agi)

	result.DeductionUsed = decimal.Max(standard, itemized)
	result.ItemizedUsed = itemized.GreaterThan(standard)

	taxable := agi.Sub(result.DeductionUsed)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}
	result.FederalTaxableIncome = taxable

	// Split taxable income into the ordinary layer and the preferential
	// layer. The deduction consumes preferential income last, so the
	// preferential layer is capped at what remains taxable.
	preferential := decimal.Min(p.LongTermGains.Add(p.QualifiedDividend), taxable)
	ordinaryTaxable := taxable.Sub(preferential)

	ce.safely(result, "federal-ordinary", func() {
		result.FederalOrdinaryTax = ce.Brackets.Tax(ordinaryTaxable, brackets)
	})

	ce.safely(result, "capital-gains", func() {
		ltcgShare, qdShare := prorate(p.LongTermGains, p.QualifiedDividend, preferential)
		result.CapitalGains = ce.CapGains.Calculate(ltcgShare, p.ShortTermGains, qdShare, ordinaryTaxable, fs)
		stcgTaxable := decimal.Min(p.ShortTermGains, ordinaryTaxable)
		result.CapitalGains.ShortTermTax = ce.CapGains.ShortTermTax(stcgTaxable, ordinaryTaxable.Sub(stcgTaxable), brackets)
	})

	regularTax := result.FederalOrdinaryTax.Add(result.CapitalGains.Tax)

	ce.safely(result, "amt", func() {
		result.AMT = ce.AMTCalc.Calculate(taxable, result.DeductionUsed, deductions, result.ItemizedUsed, regularTax, fs)
	})

	result.FederalTotalTax = regularTax.Add(result.AMT.AdditionalTax)

	ce.safely(result, "niit", func() {
		result.NIIT = ce.NIITCalc.Calculate(magi, p.Investment, fs)
	})

	if settings.FICAEnabled {
		ce.safely(result, "fica", func() {
			result.FICA = ce.FICATax.Calculate(p.Earned, fs)
			result.AdditionalMedicare = ce.FICATax.Additional.Calculate(p.Earned, fs)
		})
	}

	ce.safely(result, "state", func() {
		exemptions := 1
		if hh.Spouse != nil {
			exemptions = 2
		}
		result.State = ce.StateTax.Calculate(agi, hh, deductions.State, exemptions)
		result.StateTotalTax = result.State.StateTax.Sub(result.State.HomesteadCredit)
		if result.StateTotalTax.LessThan(decimal.Zero) {
			result.StateTotalTax = decimal.Zero
		}
	})

	ce.safely(result, "irmaa", func() {
		coveredB, coveredD := 0, 0
		if settings.TaxpayerMedicare.PartB {
			coveredB++
		}
		if settings.TaxpayerMedicare.PartD {
			coveredD++
		}
		if hh.Spouse != nil {
			if settings.SpouseMedicare.PartB {
				coveredB++
			}
			if settings.SpouseMedicare.PartD {
				coveredD++
			}
		}
		result.IRMAA = ce.IRMAACalc.Calculate(magi, fs, coveredB, coveredD)
	})

	result.TotalTax = result.FederalTotalTax.
		Add(result.StateTotalTax).
		Add(result.NIIT.Tax).
		Add(result.FICA.TotalFICA)

	result.FederalMarginalRate = ce.Brackets.MarginalRate(ordinaryTaxable, brackets)
	result.AmountToNextBracket = ce.Brackets.AmountToNextBracket(ordinaryTaxable, brackets)

	// The total marginal rate adds the flat employee-side FICA rate when
	// FICA applies. A planning convention, not a derived combined rate.
	result.TotalMarginalRate = result.FederalMarginalRate
	if settings.FICAEnabled && p.Earned.GreaterThan(decimal.Zero) {
		result.TotalMarginalRate = result.TotalMarginalRate.Add(ce.FICATax.FlatMarginalRate())
	}

	if result.TotalIncome.GreaterThan(decimal.Zero) {
		result.EffectiveRateTotal = result.TotalTax.Div(result.TotalIncome)
	}

	return result
}

// prorate splits a capped preferential layer back into its long-term-gain
// and qualified-dividend components in proportion to their gross amounts.
func prorate(ltcg, qd, capped decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	gross := ltcg.Add(qd)
	if gross.LessThanOrEqual(decimal.Zero) || capped.GreaterThanOrEqual(gross) {
		return ltcg, qd
	}
	ltcgShare := capped.Mul(ltcg).Div(gross)
	return ltcgShare, capped.Sub(ltcgShare)
}
