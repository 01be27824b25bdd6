package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cdenuyl/tax-planning-pro/internal/calculation"
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Snapshot is the full engine input: the household, its income sources,
// deductions, and settings. Collaborators persist and restore snapshots;
// results are always recomputed, never stored.
type Snapshot struct {
	Household     domain.Household      `yaml:"household" json:"household"`
	IncomeSources []domain.IncomeSource `yaml:"income_sources" json:"income_sources"`
	Deductions    domain.Deductions     `yaml:"deductions" json:"deductions"`
	Settings      domain.AppSettings    `yaml:"settings" json:"settings"`
}

// rawPerson accepts the birth date as free text so a malformed date
// coerces to an unknown age instead of failing the whole file.
type rawPerson struct {
	Name      string `yaml:"name"`
	BirthDate string `yaml:"birth_date"`
}

type rawHousehold struct {
	Taxpayer          rawPerson       `yaml:"taxpayer"`
	Spouse            *rawPerson      `yaml:"spouse"`
	FilingStatus      string          `yaml:"filing_status"`
	State             string          `yaml:"state"`
	OwnsHome          bool            `yaml:"owns_home"`
	MonthsInState     int             `yaml:"months_in_state"`
	PropertyTaxesPaid decimal.Decimal `yaml:"property_taxes_paid"`
}

type rawSnapshot struct {
	Household     rawHousehold          `yaml:"household"`
	IncomeSources []domain.IncomeSource `yaml:"income_sources"`
	Deductions    domain.Deductions     `yaml:"deductions"`
	Settings      domain.AppSettings    `yaml:"settings"`
}

// InputParser loads household snapshots. Malformed field values are
// coerced to safe defaults with a warning, never surfaced as errors, so a
// partially entered plan still computes.
type InputParser struct {
	Logger calculation.Logger
}

// NewInputParser creates a parser with the no-op logger.
func NewInputParser() *InputParser {
	return &InputParser{Logger: calculation.NopLogger{}}
}

// LoadFromFile loads and normalizes a snapshot from a YAML file. Only an
// unreadable or structurally invalid file is an error.
func (ip *InputParser) LoadFromFile(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses and normalizes a snapshot from YAML bytes.
func (ip *InputParser) Load(data []byte) (*Snapshot, error) {
	var raw rawSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	snapshot := &Snapshot{
		Household: domain.Household{
			Taxpayer:          ip.normalizePerson(raw.Household.Taxpayer, "taxpayer"),
			FilingStatus:      domain.FilingStatus(raw.Household.FilingStatus),
			State:             raw.Household.State,
			OwnsHome:          raw.Household.OwnsHome,
			MonthsInState:     raw.Household.MonthsInState,
			PropertyTaxesPaid: raw.Household.PropertyTaxesPaid,
		},
		IncomeSources: raw.IncomeSources,
		Deductions:    raw.Deductions,
		Settings:      raw.Settings,
	}
	if raw.Household.Spouse != nil {
		spouse := ip.normalizePerson(*raw.Household.Spouse, "spouse")
		snapshot.Household.Spouse = &spouse
	}

	ip.Normalize(snapshot)
	return snapshot, nil
}

// dateLayouts are the accepted birth date spellings, most specific first.
var dateLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

func (ip *InputParser) normalizePerson(raw rawPerson, role string) domain.Person {
	person := domain.Person{Name: raw.Name}
	if raw.BirthDate == "" {
		return person
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw.BirthDate); err == nil {
			person.BirthDate = &t
			return person
		}
	}
	ip.logger().Warnf("config: %s birth date %q is malformed, age left unknown", role, raw.BirthDate)
	return person
}

// Normalize coerces field-level problems in place: negative amounts to
// zero, unknown income types to "other", unknown filing status to single,
// missing frequencies and owners to their defaults, zero settings to the
// defaults. Each coercion logs a warning.
func (ip *InputParser) Normalize(snapshot *Snapshot) {
	log := ip.logger()

	if !domain.KnownFilingStatus(snapshot.Household.FilingStatus) {
		if snapshot.Household.FilingStatus != "" {
			log.Warnf("config: unknown filing status %q, using single", snapshot.Household.FilingStatus)
		}
		snapshot.Household.FilingStatus = domain.FilingStatusSingle
	}

	seen := map[string]bool{}
	for i := range snapshot.IncomeSources {
		src := &snapshot.IncomeSources[i]

		if src.ID == "" {
			src.ID = fmt.Sprintf("source-%d", i+1)
		}
		for seen[src.ID] {
			src.ID += "-dup"
			log.Warnf("config: duplicate income source id, renamed to %q", src.ID)
		}
		seen[src.ID] = true

		if !domain.KnownIncomeType(src.Type) {
			log.Warnf("config: income source %s has unknown type %q, using %q", src.ID, src.Type, domain.IncomeTypeOther)
			src.Type = domain.IncomeTypeOther
		}
		if src.Amount.LessThan(decimal.Zero) {
			log.Warnf("config: income source %s has negative amount %s, using 0", src.ID, src.Amount)
			src.Amount = decimal.Zero
		}
		switch src.Frequency {
		case domain.FrequencyYearly, domain.FrequencyMonthly:
		case "":
			src.Frequency = domain.FrequencyYearly
		default:
			log.Warnf("config: income source %s has unknown frequency %q, using yearly", src.ID, src.Frequency)
			src.Frequency = domain.FrequencyYearly
		}
		switch src.Owner {
		case domain.OwnerTaxpayer, domain.OwnerSpouse, domain.OwnerJoint:
		default:
			src.Owner = domain.OwnerTaxpayer
		}
	}

	// A zero tax year means the settings block was never filled in; the
	// whole block takes the defaults, Medicare enrollment included.
	if snapshot.Settings.TaxYear == 0 {
		medicare := snapshot.Settings.TaxpayerMedicare
		spouseMedicare := snapshot.Settings.SpouseMedicare
		snapshot.Settings = domain.DefaultSettings()
		snapshot.Settings.TaxpayerMedicare = medicare
		snapshot.Settings.SpouseMedicare = spouseMedicare
	}
}

func (ip *InputParser) logger() calculation.Logger {
	if ip.Logger == nil {
		return calculation.NopLogger{}
	}
	return ip.Logger
}
