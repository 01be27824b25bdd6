package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

func singleBrackets2025() []domain.TaxBracket {
	return domain.DefaultRegulatory2025().FederalTax.Brackets.Single
}

func TestBracketEngine_Tax(t *testing.T) {
	be := NewBracketEngine()
	brackets := singleBrackets2025()

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero},
		{"negative income", decimal.NewFromInt(-5000), decimal.Zero},
		{"inside first bracket", decimal.NewFromInt(10000), decimal.NewFromInt(1000)},
		{"first boundary", decimal.NewFromInt(11925), decimal.NewFromFloat(1192.50)},
		{"45k taxable", decimal.NewFromInt(45000), decimal.NewFromFloat(5161.50)},
		{"second boundary", decimal.NewFromInt(48475), decimal.NewFromFloat(5578.50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := be.Tax(tt.income, brackets)
			assert.True(t, tax.Equal(tt.expected),
				"tax(%s) = %s, want %s", tt.income, tax, tt.expected)
		})
	}
}

func TestBracketEngine_TaxMonotonic(t *testing.T) {
	be := NewBracketEngine()
	brackets := singleBrackets2025()

	prev := decimal.Zero
	for income := int64(0); income <= 700000; income += 2500 {
		tax := be.Tax(decimal.NewFromInt(income), brackets)
		assert.True(t, tax.GreaterThanOrEqual(prev),
			"tax must be non-decreasing, dropped at income %d", income)
		prev = tax
	}
}

func TestBracketEngine_ContinuityAtBoundaries(t *testing.T) {
	be := NewBracketEngine()
	brackets := singleBrackets2025()
	cent := decimal.NewFromFloat(0.01)

	for _, edge := range be.Boundaries(brackets) {
		below := be.Tax(edge.Sub(cent), brackets)
		at := be.Tax(edge, brackets)
		jump := at.Sub(below)
		assert.True(t, jump.LessThanOrEqual(cent),
			"discontinuity at bracket edge %s: jump %s", edge, jump)
	}
}

func TestBracketEngine_MarginalRate(t *testing.T) {
	be := NewBracketEngine()
	brackets := singleBrackets2025()

	tests := []struct {
		income int64
		rate   float64
	}{
		{0, 0.10},
		{11924, 0.10},
		{11925, 0.12},
		{48475, 0.22},
		{700000, 0.37},
	}

	for _, tt := range tests {
		rate := be.MarginalRate(decimal.NewFromInt(tt.income), brackets)
		assert.True(t, rate.Equal(decimal.NewFromFloat(tt.rate)),
			"marginalRate(%d) = %s, want %v", tt.income, rate, tt.rate)
	}

	prev := decimal.Zero
	for income := int64(0); income <= 700000; income += 1000 {
		rate := be.MarginalRate(decimal.NewFromInt(income), brackets)
		assert.True(t, rate.GreaterThanOrEqual(prev),
			"marginal rate must be non-decreasing, dropped at %d", income)
		prev = rate
	}
}

func TestBracketEngine_AmountToNextBracket(t *testing.T) {
	be := NewBracketEngine()
	brackets := singleBrackets2025()

	amount := be.AmountToNextBracket(decimal.NewFromInt(10000), brackets)
	assert.True(t, amount.Equal(decimal.NewFromInt(1925)),
		"10000 is 1925 below the first edge, got %s", amount)

	top := be.AmountToNextBracket(decimal.NewFromInt(700000), brackets)
	assert.True(t, top.IsZero(), "top bracket has no next edge, got %s", top)
}

func TestBracketEngine_EmptyTable(t *testing.T) {
	be := NewBracketEngine()

	require.True(t, be.Tax(decimal.NewFromInt(1000), nil).IsZero())
	require.True(t, be.MarginalRate(decimal.NewFromInt(1000), nil).IsZero())
	require.True(t, be.AmountToNextBracket(decimal.NewFromInt(1000), nil).IsZero())
}
