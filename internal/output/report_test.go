package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

func sampleResult() *domain.CalculationResult {
	return &domain.CalculationResult{
		TaxYear:              2025,
		TotalIncome:          decimal.NewFromInt(60000),
		EarnedIncome:         decimal.NewFromInt(60000),
		FederalAGI:           decimal.NewFromInt(60000),
		DeductionUsed:        decimal.NewFromInt(15000),
		FederalTaxableIncome: decimal.NewFromInt(45000),
		FederalOrdinaryTax:   decimal.NewFromFloat(5161.50),
		FederalTotalTax:      decimal.NewFromFloat(5161.50),
		TotalTax:             decimal.NewFromFloat(9751.50),
		FederalMarginalRate:  decimal.NewFromFloat(0.12),
		TotalMarginalRate:    decimal.NewFromFloat(0.1965),
		EffectiveRateTotal:   decimal.NewFromFloat(0.1625),
		AmountToNextBracket:  decimal.NewFromInt(3475),
	}
}

func TestReportGenerator_Console(t *testing.T) {
	rg := NewReportGenerator()
	var buf bytes.Buffer

	require.NoError(t, rg.Generate(&buf, sampleResult(), "console"))
	out := buf.String()

	assert.Contains(t, out, "TAX SUMMARY (2025)")
	assert.Contains(t, out, "$5,161.50")
	assert.Contains(t, out, "Deduction (standard)")
	assert.Contains(t, out, "12.00%")
	assert.NotContains(t, out, "Social Security", "empty sections stay hidden")
}

func TestReportGenerator_ConsoleDegradedWarning(t *testing.T) {
	rg := NewReportGenerator()
	var buf bytes.Buffer

	result := sampleResult()
	result.Degraded = []string{"state"}
	require.NoError(t, rg.Console(&buf, result))
	assert.Contains(t, buf.String(), "degraded sections")
}

func TestReportGenerator_JSON(t *testing.T) {
	rg := NewReportGenerator()
	var buf bytes.Buffer

	require.NoError(t, rg.Generate(&buf, sampleResult(), "json"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "45000", decoded["federalTaxableIncome"])
}

func TestReportGenerator_UnsupportedFormat(t *testing.T) {
	rg := NewReportGenerator()
	var buf bytes.Buffer
	assert.Error(t, rg.Generate(&buf, sampleResult(), "xml"))
}

func TestReportGenerator_MarginalReport(t *testing.T) {
	rg := NewReportGenerator()
	var buf bytes.Buffer

	analysis := &domain.MarginalAnalysis{
		CurrentRate: decimal.NewFromFloat(0.1965),
		RateChanges: []domain.RateChange{
			{
				AmountToChange:  decimal.NewFromInt(3475),
				ThresholdIncome: decimal.NewFromInt(63475),
				FromRate:        decimal.NewFromFloat(0.1965),
				ToRate:          decimal.NewFromFloat(0.2965),
				ChangeType:      domain.RateChangeIncrease,
				Cause:           "federal-bracket",
			},
		},
	}

	require.NoError(t, rg.MarginalReport(&buf, analysis))
	out := buf.String()
	assert.Contains(t, out, "$3,475.00")
	assert.Contains(t, out, "federal-bracket")
	assert.Contains(t, out, "increase")
}
