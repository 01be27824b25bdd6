package calculation

import (
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// BracketEngine computes progressive tax over any ordered bracket table.
// It is shared by the ordinary-income, capital-gains, and AMT paths.
type BracketEngine struct{}

// NewBracketEngine creates a new bracket engine.
func NewBracketEngine() *BracketEngine {
	return &BracketEngine{}
}

// Tax returns the progressive tax on taxableIncome. Each bracket
// contributes rate * (min(taxableIncome, max) - min); brackets entirely
// above taxableIncome contribute nothing. Non-positive income yields zero.
func (be *BracketEngine) Tax(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, b := range brackets {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		inBracket := decimal.Min(taxableIncome, b.Max).Sub(b.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			total = total.Add(inBracket.Mul(b.Rate))
		}
	}
	return total
}

// MarginalRate returns the rate of the bracket containing income. Income at
// an exact boundary belongs to the higher bracket. Non-positive income
// takes the bottom bracket's rate; an empty table yields zero.
func (be *BracketEngine) MarginalRate(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	if income.LessThanOrEqual(decimal.Zero) {
		return brackets[0].Rate
	}
	for _, b := range brackets {
		if income.GreaterThanOrEqual(b.Min) && income.LessThan(b.Max) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// AmountToNextBracket returns how much more income fits in the current
// bracket before the marginal rate rises. Income in the top bracket
// returns zero.
func (be *BracketEngine) AmountToNextBracket(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	if income.LessThan(decimal.Zero) {
		income = decimal.Zero
	}
	for i, b := range brackets {
		if income.GreaterThanOrEqual(b.Min) && income.LessThan(b.Max) {
			if i == len(brackets)-1 {
				return decimal.Zero
			}
			return b.Max.Sub(income)
		}
	}
	return decimal.Zero
}

// Boundaries returns the interior bracket edges in ascending order. The
// unbounded top edge is excluded.
func (be *BracketEngine) Boundaries(brackets []domain.TaxBracket) []decimal.Decimal {
	var edges []decimal.Decimal
	for i, b := range brackets {
		if i == 0 {
			continue
		}
		edges = append(edges, b.Min)
	}
	return edges
}
