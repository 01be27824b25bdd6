package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

func TestIRMAACalculator_Tiers(t *testing.T) {
	ic := NewIRMAACalculator2025()

	tests := []struct {
		name      string
		magi      int64
		fs        domain.FilingStatus
		wantTier  int
		wantRisk  string
		wantPartB decimal.Decimal
	}{
		{
			name:     "well under first threshold",
			magi:     80000,
			fs:       domain.FilingStatusSingle,
			wantTier: 0,
			wantRisk: IRMAARiskSafe,
		},
		{
			name:     "within warning distance of first tier",
			magi:     98000,
			fs:       domain.FilingStatusSingle,
			wantTier: 0,
			wantRisk: IRMAARiskWarning,
		},
		{
			name:     "exactly at threshold stays below the tier",
			magi:     106000,
			fs:       domain.FilingStatusSingle,
			wantTier: 0,
			wantRisk: IRMAARiskWarning,
		},
		{
			name:      "first tier breached",
			magi:      110000,
			fs:        domain.FilingStatusSingle,
			wantTier:  1,
			wantRisk:  IRMAARiskBreach,
			wantPartB: decimal.NewFromFloat(74.00),
		},
		{
			name:      "top tier single",
			magi:      600000,
			fs:        domain.FilingStatusSingle,
			wantTier:  5,
			wantRisk:  IRMAARiskBreach,
			wantPartB: decimal.NewFromFloat(443.90),
		},
		{
			name:     "joint thresholds are doubled",
			magi:     180000,
			fs:       domain.FilingStatusMarriedFilingJointly,
			wantTier: 0,
			wantRisk: IRMAARiskSafe,
		},
		{
			name:      "joint second tier",
			magi:      250000,
			fs:        domain.FilingStatusMarriedFilingJointly,
			wantTier:  1,
			wantRisk:  IRMAARiskBreach,
			wantPartB: decimal.NewFromFloat(74.00),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ic.Calculate(decimal.NewFromInt(tt.magi), tt.fs, 1, 1)
			assert.Equal(t, tt.wantTier, got.TierLevel)
			assert.Equal(t, tt.wantRisk, got.RiskStatus)
			if !tt.wantPartB.IsZero() {
				assert.True(t, got.MonthlyPartB.Equal(tt.wantPartB),
					"monthly Part B = %s, want %s", got.MonthlyPartB, tt.wantPartB)
			}
		})
	}
}

func TestIRMAACalculator_CoverageScaling(t *testing.T) {
	ic := NewIRMAACalculator2025()
	magi := decimal.NewFromInt(250000)

	both := ic.Calculate(magi, domain.FilingStatusMarriedFilingJointly, 2, 2)
	assert.True(t, both.MonthlyPartB.Equal(decimal.NewFromFloat(148.00)),
		"two covered persons double the Part B surcharge, got %s", both.MonthlyPartB)
	assert.True(t, both.MonthlyPartD.Equal(decimal.NewFromFloat(27.40)))

	wantAnnual := both.MonthlyPartB.Add(both.MonthlyPartD).Mul(decimal.NewFromInt(12))
	assert.True(t, both.AnnualSurcharge.Equal(wantAnnual))

	partBOnly := ic.Calculate(magi, domain.FilingStatusMarriedFilingJointly, 1, 0)
	assert.True(t, partBOnly.MonthlyPartD.IsZero())
	assert.True(t, partBOnly.MonthlyPartB.Equal(decimal.NewFromFloat(74.00)))
}

func TestIRMAACalculator_NoCoverageNoSurcharge(t *testing.T) {
	ic := NewIRMAACalculator2025()
	got := ic.Calculate(decimal.NewFromInt(600000), domain.FilingStatusSingle, 0, 0)
	assert.Equal(t, 0, got.TierLevel)
	assert.True(t, got.AnnualSurcharge.IsZero())
	assert.Equal(t, IRMAARiskSafe, got.RiskStatus)
}

func TestIRMAACalculator_DistanceToNextTier(t *testing.T) {
	ic := NewIRMAACalculator2025()
	got := ic.Calculate(decimal.NewFromInt(100000), domain.FilingStatusSingle, 1, 0)
	assert.True(t, got.DistanceToNextTier.Equal(decimal.NewFromInt(6000)),
		"distance = %s", got.DistanceToNextTier)
}

func TestIRMAACalculator_SingleThresholdAdjustment(t *testing.T) {
	rules := domain.DefaultRegulatory2025().Medicare
	rules.ThresholdAdjustmentSingle = decimal.NewFromInt(2000)
	ic := NewIRMAACalculator(rules)

	// 107000 would breach the unadjusted 106000 threshold
	got := ic.Calculate(decimal.NewFromInt(107000), domain.FilingStatusSingle, 1, 0)
	assert.Equal(t, 0, got.TierLevel)
}
