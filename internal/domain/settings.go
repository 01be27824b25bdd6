package domain

// MedicareCoverage holds the Part B / Part D enrollment flags for one
// person. The IRMAA calculator only surcharges parts the person is
// enrolled in.
type MedicareCoverage struct {
	PartB bool `yaml:"part_b" json:"part_b"`
	PartD bool `yaml:"part_d" json:"part_d"`
}

// AppSettings are the feature gates the caller supplies with every
// invocation. They decide which calculators run; they never alter another
// calculator's arithmetic.
type AppSettings struct {
	TaxYear        int  `yaml:"tax_year" json:"tax_year"`
	TCJASunsetting bool `yaml:"tcja_sunsetting" json:"tcja_sunsetting"`
	RMDEnabled     bool `yaml:"rmd_enabled" json:"rmd_enabled"`
	FICAEnabled    bool `yaml:"fica_enabled" json:"fica_enabled"`

	TaxpayerMedicare MedicareCoverage `yaml:"taxpayer_medicare" json:"taxpayer_medicare"`
	SpouseMedicare   MedicareCoverage `yaml:"spouse_medicare" json:"spouse_medicare"`
}

// DefaultSettings returns the settings used when the caller supplies none.
func DefaultSettings() AppSettings {
	return AppSettings{
		TaxYear:     2025,
		RMDEnabled:  true,
		FICAEnabled: true,
	}
}
