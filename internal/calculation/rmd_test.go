package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

func TestRMDCalculator_Factor(t *testing.T) {
	rc := NewRMDCalculator2025()

	_, ok := rc.Factor(72)
	assert.False(t, ok, "no RMD before the start age")

	f, ok := rc.Factor(73)
	require.True(t, ok)
	assert.True(t, f.Equal(decimal.NewFromFloat(26.5)))

	f, ok = rc.Factor(80)
	require.True(t, ok)
	assert.True(t, f.Equal(decimal.NewFromFloat(20.2)))

	// ages beyond the table reuse the final factor
	f, ok = rc.Factor(130)
	require.True(t, ok)
	assert.True(t, f.Equal(decimal.NewFromFloat(2.0)))
}

func TestRMDCalculator_RequiredAmount(t *testing.T) {
	rc := NewRMDCalculator2025()

	// 500000 / 26.5 rounds to 18868
	amount, err := rc.RequiredAmount(decimal.NewFromInt(500000), 73)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(18868)), "required = %s", amount)

	_, err = rc.RequiredAmount(decimal.NewFromInt(500000), 70)
	assert.Error(t, err, "below start age must error, not divide")

	amount, err = rc.RequiredAmount(decimal.NewFromInt(-100), 73)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func TestRMDCalculator_RequiredAmountCustomTable(t *testing.T) {
	rc := NewRMDCalculator(domain.RMDRules{
		StartAge: 72,
		Factors:  map[int]float64{72: 25.6},
	})

	amount, err := rc.RequiredAmount(decimal.NewFromInt(100000), 72)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(3906)), "required = %s", amount)
}

func iraSource(id string, balance, currentAnnual decimal.Decimal) domain.IncomeSource {
	return domain.IncomeSource{
		ID:        id,
		Name:      "IRA " + id,
		Type:      domain.IncomeTypeTraditionalIRA,
		Amount:    currentAnnual,
		Owner:     domain.OwnerTaxpayer,
		Enabled:   true,
		Frequency: domain.FrequencyYearly,
		RMD:       &domain.RMDDetails{AccountBalance: balance},
	}
}

func taxpayerAged(age int) OwnerAges {
	return OwnerAges{Taxpayer: age, TaxpayerKnown: true}
}

func TestRMDCalculator_Synthesize(t *testing.T) {
	rc := NewRMDCalculator2025()

	t.Run("shortfall adds a synthetic source", func(t *testing.T) {
		sources := []domain.IncomeSource{iraSource("ira-1", decimal.NewFromInt(500000), decimal.NewFromInt(10000))}
		out, estimates := rc.Synthesize(sources, taxpayerAged(73), nil)

		require.Len(t, out, 2)
		require.Len(t, estimates, 1)
		synthetic := out[1]
		assert.True(t, synthetic.Synthetic)
		assert.Equal(t, "rmd-ira-1", synthetic.ID)
		assert.Equal(t, domain.IncomeTypeEstimatedRMD, synthetic.Type)
		assert.True(t, synthetic.Amount.Equal(decimal.NewFromInt(8868)),
			"shortfall = %s, want required 18868 minus existing 10000", synthetic.Amount)
		assert.True(t, estimates[0].ShortfallAmount.Equal(decimal.NewFromInt(8868)))
	})

	t.Run("existing distributions already cover the requirement", func(t *testing.T) {
		sources := []domain.IncomeSource{iraSource("ira-1", decimal.NewFromInt(500000), decimal.NewFromInt(25000))}
		out, estimates := rc.Synthesize(sources, taxpayerAged(73), nil)
		assert.Len(t, out, 1)
		assert.Empty(t, estimates)
	})

	t.Run("under start age produces nothing", func(t *testing.T) {
		sources := []domain.IncomeSource{iraSource("ira-1", decimal.NewFromInt(500000), decimal.Zero)}
		out, estimates := rc.Synthesize(sources, taxpayerAged(65), nil)
		assert.Len(t, out, 1)
		assert.Empty(t, estimates)
	})

	t.Run("disabled source skipped", func(t *testing.T) {
		src := iraSource("ira-1", decimal.NewFromInt(500000), decimal.Zero)
		src.Enabled = false
		out, estimates := rc.Synthesize([]domain.IncomeSource{src}, taxpayerAged(73), nil)
		assert.Len(t, out, 1)
		assert.Empty(t, estimates)
	})

	t.Run("balance override recomputes the requirement", func(t *testing.T) {
		src := iraSource("ira-1", decimal.NewFromInt(500000), decimal.Zero)
		override := decimal.NewFromInt(265000)
		src.RMD.OverrideBalance = &override
		_, estimates := rc.Synthesize([]domain.IncomeSource{src}, taxpayerAged(73), nil)
		require.Len(t, estimates, 1)
		assert.True(t, estimates[0].RequiredAmount.Equal(decimal.NewFromInt(10000)),
			"required = %s", estimates[0].RequiredAmount)
	})

	t.Run("amount override wins over the table", func(t *testing.T) {
		src := iraSource("ira-1", decimal.NewFromInt(500000), decimal.Zero)
		override := decimal.NewFromInt(12345)
		src.RMD.OverrideAmount = &override
		_, estimates := rc.Synthesize([]domain.IncomeSource{src}, taxpayerAged(73), nil)
		require.Len(t, estimates, 1)
		assert.True(t, estimates[0].RequiredAmount.Equal(override))
	})

	t.Run("spouse-owned account uses the spouse's age", func(t *testing.T) {
		src := iraSource("ira-sp", decimal.NewFromInt(500000), decimal.Zero)
		src.Owner = domain.OwnerSpouse
		ages := OwnerAges{Spouse: 75, SpouseKnown: true}
		out, estimates := rc.Synthesize([]domain.IncomeSource{src}, ages, nil)

		require.Len(t, estimates, 1)
		assert.Equal(t, 75, estimates[0].Age)
		// 500000 / 24.6 rounds to 20325
		assert.True(t, estimates[0].RequiredAmount.Equal(decimal.NewFromInt(20325)),
			"required = %s", estimates[0].RequiredAmount)
		require.Len(t, out, 2)
		assert.Equal(t, domain.OwnerSpouse, out[1].Owner)
	})

	t.Run("jointly owned account defaults to the taxpayer's age", func(t *testing.T) {
		src := iraSource("ira-jt", decimal.NewFromInt(500000), decimal.Zero)
		src.Owner = domain.OwnerJoint
		ages := OwnerAges{Taxpayer: 73, TaxpayerKnown: true, Spouse: 80, SpouseKnown: true}
		_, estimates := rc.Synthesize([]domain.IncomeSource{src}, ages, nil)

		require.Len(t, estimates, 1)
		assert.Equal(t, 73, estimates[0].Age)
		assert.True(t, estimates[0].RequiredAmount.Equal(decimal.NewFromInt(18868)))
	})

	t.Run("owner without a birth date is skipped", func(t *testing.T) {
		src := iraSource("ira-sp", decimal.NewFromInt(500000), decimal.Zero)
		src.Owner = domain.OwnerSpouse
		out, estimates := rc.Synthesize([]domain.IncomeSource{src}, taxpayerAged(75), nil)
		assert.Len(t, out, 1)
		assert.Empty(t, estimates)
	})

	t.Run("resynthesis replaces prior synthetic sources", func(t *testing.T) {
		sources := []domain.IncomeSource{iraSource("ira-1", decimal.NewFromInt(500000), decimal.NewFromInt(10000))}
		once, _ := rc.Synthesize(sources, taxpayerAged(73), nil)
		twice, _ := rc.Synthesize(once, taxpayerAged(73), nil)
		assert.Len(t, twice, 2, "synthesize must be idempotent")
	})
}

func TestStripSynthetic(t *testing.T) {
	manual := iraSource("ira-1", decimal.NewFromInt(500000), decimal.NewFromInt(10000))
	synthetic := domain.IncomeSource{ID: "rmd-ira-1", Type: domain.IncomeTypeEstimatedRMD, Synthetic: true}

	out := StripSynthetic([]domain.IncomeSource{manual, synthetic})
	require.Len(t, out, 1)
	assert.Equal(t, "ira-1", out[0].ID)
}
