package config

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

// captureLogger records warnings so tests can assert coercions were
// reported.
type captureLogger struct {
	warnings []string
}

func (cl *captureLogger) Debugf(format string, args ...interface{}) {}
func (cl *captureLogger) Infof(format string, args ...interface{})  {}
func (cl *captureLogger) Warnf(format string, args ...interface{}) {
	cl.warnings = append(cl.warnings, fmt.Sprintf(format, args...))
}
func (cl *captureLogger) Errorf(format string, args ...interface{}) {}

func TestInputParser_LoadValidSnapshot(t *testing.T) {
	yaml := `
household:
  taxpayer:
    name: "Pat"
    birth_date: "1960-04-15"
  filing_status: "single"
  state: "MI"
  owns_home: true
  months_in_state: 12
  property_taxes_paid: 3200
income_sources:
  - id: "wages-1"
    name: "Salary"
    type: "wages"
    amount: 85000
    enabled: true
    frequency: "yearly"
settings:
  tax_year: 2025
  rmd_enabled: true
  fica_enabled: true
`
	parser := NewInputParser()
	snapshot, err := parser.Load([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "Pat", snapshot.Household.Taxpayer.Name)
	require.NotNil(t, snapshot.Household.Taxpayer.BirthDate)
	assert.Equal(t, domain.FilingStatusSingle, snapshot.Household.FilingStatus)
	assert.Equal(t, "MI", snapshot.Household.State)
	assert.True(t, snapshot.Household.PropertyTaxesPaid.Equal(decimal.NewFromInt(3200)))

	require.Len(t, snapshot.IncomeSources, 1)
	assert.Equal(t, domain.IncomeTypeWages, snapshot.IncomeSources[0].Type)
	assert.Equal(t, 2025, snapshot.Settings.TaxYear)
}

func TestInputParser_LoadFromFile(t *testing.T) {
	parser := NewInputParser()
	snapshot, err := parser.LoadFromFile("testdata/snapshot.yaml")
	require.NoError(t, err)

	assert.Equal(t, domain.FilingStatusMarriedFilingJointly, snapshot.Household.FilingStatus)
	require.NotNil(t, snapshot.Household.Spouse)
	require.Len(t, snapshot.IncomeSources, 3)

	ss := snapshot.IncomeSources[0]
	assert.Equal(t, domain.IncomeTypeSocialSecurity, ss.Type)
	assert.Equal(t, domain.FrequencyMonthly, ss.Frequency)
	assert.True(t, ss.AnnualAmount().Equal(decimal.NewFromInt(33600)))

	ira := snapshot.IncomeSources[1]
	require.NotNil(t, ira.RMD)
	assert.True(t, ira.RMD.AccountBalance.Equal(decimal.NewFromInt(410000)))

	assert.True(t, snapshot.Settings.TaxpayerMedicare.PartB)

	_, err = parser.LoadFromFile("testdata/absent.yaml")
	require.Error(t, err)
}

func TestInputParser_MalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Load([]byte("household: [not a mapping"))
	require.Error(t, err)
}

func TestInputParser_MalformedBirthDateCoerced(t *testing.T) {
	logger := &captureLogger{}
	parser := &InputParser{Logger: logger}

	snapshot, err := parser.Load([]byte(`
household:
  taxpayer:
    name: "Pat"
    birth_date: "not-a-date"
  filing_status: "single"
`))
	require.NoError(t, err, "a bad date must not fail the file")
	assert.Nil(t, snapshot.Household.Taxpayer.BirthDate)
	assert.NotEmpty(t, logger.warnings)
}

func TestInputParser_AlternateDateLayouts(t *testing.T) {
	parser := NewInputParser()
	snapshot, err := parser.Load([]byte(`
household:
  taxpayer:
    birth_date: "04/15/1960"
`))
	require.NoError(t, err)
	require.NotNil(t, snapshot.Household.Taxpayer.BirthDate)
	assert.Equal(t, 1960, snapshot.Household.Taxpayer.BirthDate.Year())
}

func TestInputParser_Coercions(t *testing.T) {
	logger := &captureLogger{}
	parser := &InputParser{Logger: logger}

	snapshot, err := parser.Load([]byte(`
household:
  taxpayer:
    name: "Pat"
  filing_status: "married"
income_sources:
  - name: "Mystery"
    type: "lottery"
    amount: -500
    enabled: true
    frequency: "weekly"
  - id: "wages-1"
    type: "wages"
    amount: 50000
    enabled: true
  - id: "wages-1"
    type: "wages"
    amount: 1000
    enabled: true
`))
	require.NoError(t, err)

	// unknown filing status falls back to single
	assert.Equal(t, domain.FilingStatusSingle, snapshot.Household.FilingStatus)

	first := snapshot.IncomeSources[0]
	assert.Equal(t, "source-1", first.ID, "missing id gets a positional one")
	assert.Equal(t, domain.IncomeTypeOther, first.Type)
	assert.True(t, first.Amount.IsZero(), "negative amount coerces to zero")
	assert.Equal(t, domain.FrequencyYearly, first.Frequency)

	assert.Equal(t, "wages-1", snapshot.IncomeSources[1].ID)
	assert.Equal(t, "wages-1-dup", snapshot.IncomeSources[2].ID)

	assert.GreaterOrEqual(t, len(logger.warnings), 4,
		"every coercion must be reported: %v", logger.warnings)
}

func TestInputParser_DefaultSettingsWhenOmitted(t *testing.T) {
	parser := NewInputParser()
	snapshot, err := parser.Load([]byte(`
household:
  taxpayer:
    name: "Pat"
`))
	require.NoError(t, err)

	assert.Equal(t, 2025, snapshot.Settings.TaxYear)
	assert.True(t, snapshot.Settings.RMDEnabled)
	assert.True(t, snapshot.Settings.FICAEnabled)
}

func TestInputParser_SpouseParsed(t *testing.T) {
	parser := NewInputParser()
	snapshot, err := parser.Load([]byte(`
household:
  taxpayer:
    name: "Pat"
    birth_date: "1960-04-15"
  spouse:
    name: "Sam"
    birth_date: "1962-08-01"
  filing_status: "marriedFilingJointly"
`))
	require.NoError(t, err)
	require.NotNil(t, snapshot.Household.Spouse)
	assert.Equal(t, "Sam", snapshot.Household.Spouse.Name)
	assert.Equal(t, domain.FilingStatusMarriedFilingJointly, snapshot.Household.FilingStatus)
}
