package config

import (
	"fmt"
	"os"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadRegulatory reads a regulatory.yaml overlay and merges it over the
// built-in 2025 defaults: any section the file leaves empty keeps its
// default.
func LoadRegulatory(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", filename, err)
	}

	var overlay domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}

	merged := domain.DefaultRegulatory2025()
	mergeRegulatory(merged, &overlay)
	return merged, nil
}

// mergeRegulatory copies the sections the overlay actually populated.
// Sections are replaced whole; there is no per-field merge inside a
// section.
func mergeRegulatory(base, overlay *domain.RegulatoryConfig) {
	if overlay.Metadata.DataYear != 0 {
		base.Metadata = overlay.Metadata
	}
	if len(overlay.FederalTax.Brackets.Single) > 0 {
		base.FederalTax = overlay.FederalTax
	}
	if len(overlay.CapitalGains.Brackets.Single) > 0 {
		base.CapitalGains = overlay.CapitalGains
	}
	if !overlay.SocialSecurity.Tier1Threshold.Single.IsZero() {
		base.SocialSecurity = overlay.SocialSecurity
	}
	if !overlay.FICA.SocialSecurityRate.IsZero() {
		base.FICA = overlay.FICA
	}
	if !overlay.NIIT.Rate.IsZero() {
		base.NIIT = overlay.NIIT
	}
	if !overlay.AdditionalMedicare.Rate.IsZero() {
		base.AdditionalMedicare = overlay.AdditionalMedicare
	}
	if !overlay.AMT.LowRate.IsZero() {
		base.AMT = overlay.AMT
	}
	if len(overlay.Medicare.IRMAATiers) > 0 {
		base.Medicare = overlay.Medicare
	}
	if len(overlay.States) > 0 {
		base.States = overlay.States
	}
	if overlay.RMD.StartAge != 0 {
		base.RMD = overlay.RMD
	}
}
