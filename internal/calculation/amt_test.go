package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

func TestAMTCalculator_NoAMTAtModestIncome(t *testing.T) {
	ac := NewAMTCalculator2025()
	be := NewBracketEngine()

	taxable := decimal.NewFromInt(45000)
	regular := be.Tax(taxable, singleBrackets2025())

	got := ac.Calculate(taxable, decimal.NewFromInt(15000), domain.Deductions{}, false, regular, domain.FilingStatusSingle)
	assert.True(t, got.AdditionalTax.IsZero(),
		"no AMT expected at modest income, got %s", got.AdditionalTax)
	// AMTI adds the standard deduction back
	assert.True(t, got.AMTIncome.Equal(decimal.NewFromInt(60000)))
	// full exemption wipes out the AMT base below the phase-out
	assert.True(t, got.AMTTaxableIncome.IsZero())
}

func TestAMTCalculator_ItemizedAddBacks(t *testing.T) {
	ac := NewAMTCalculator2025()

	deductions := domain.Deductions{
		Itemized: domain.ItemizedDeductions{
			StateAndLocalTaxes: decimal.NewFromInt(30000),
			MortgageInterest:   decimal.NewFromInt(12000),
			Other:              decimal.NewFromInt(4000),
		},
	}

	got := ac.Calculate(decimal.NewFromInt(300000), decimal.NewFromInt(26000), deductions, true, decimal.NewFromInt(70000), domain.FilingStatusSingle)
	// SALT is added back as capped, mortgage interest is not added back
	assert.True(t, got.Adjustments.Equal(decimal.NewFromInt(14000)),
		"adjustments = %s, want capped SALT 10000 + other 4000", got.Adjustments)
	assert.True(t, got.AMTIncome.Equal(decimal.NewFromInt(314000)))
}

func TestAMTCalculator_ExemptionPhaseOut(t *testing.T) {
	ac := NewAMTCalculator2025()

	tests := []struct {
		name          string
		amtIncome     int64
		fs            domain.FilingStatus
		wantExemption decimal.Decimal
	}{
		{"below phase-out keeps full exemption", 500000, domain.FilingStatusSingle, decimal.NewFromInt(88100)},
		{"at phase-out start keeps full exemption", 626350, domain.FilingStatusSingle, decimal.NewFromInt(88100)},
		{"100k over loses a quarter of it", 726350, domain.FilingStatusSingle, decimal.NewFromInt(63100)},
		{"deep phase-out floors at zero", 2000000, domain.FilingStatusSingle, decimal.Zero},
		{"joint phase-out starts higher", 1252700, domain.FilingStatusMarriedFilingJointly, decimal.NewFromInt(137000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// zero deduction so AMTI equals taxable income
			got := ac.Calculate(decimal.NewFromInt(tt.amtIncome), decimal.Zero, domain.Deductions{}, false, decimal.NewFromInt(10000000), tt.fs)
			assert.True(t, got.Exemption.Equal(tt.wantExemption),
				"exemption = %s, want %s", got.Exemption, tt.wantExemption)
		})
	}
}

func TestAMTCalculator_AdditionalTaxIsExcessOnly(t *testing.T) {
	ac := NewAMTCalculator2025()

	taxable := decimal.NewFromInt(400000)
	got := ac.Calculate(taxable, decimal.Zero, domain.Deductions{}, false, decimal.Zero, domain.FilingStatusSingle)

	// AMTI 400000, full exemption 88100, base 311900:
	// 239100 at 26% plus 72800 at 28%
	wantTentative := decimal.NewFromFloat(62166).Add(decimal.NewFromFloat(20384))
	assert.True(t, got.TentativeAMT.Equal(wantTentative),
		"tentative = %s, want %s", got.TentativeAMT, wantTentative)

	// regular tax above tentative means no additional tax
	high := ac.Calculate(taxable, decimal.Zero, domain.Deductions{}, false, decimal.NewFromInt(100000), domain.FilingStatusSingle)
	assert.True(t, high.AdditionalTax.IsZero())

	// regular tax below tentative yields exactly the difference
	low := ac.Calculate(taxable, decimal.Zero, domain.Deductions{}, false, decimal.NewFromInt(60000), domain.FilingStatusSingle)
	assert.True(t, low.AdditionalTax.Equal(wantTentative.Sub(decimal.NewFromInt(60000))))
}
