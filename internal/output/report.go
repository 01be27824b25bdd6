package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warnStyle    = lipgloss.NewStyle().Faint(true)
)

// ReportGenerator renders a CalculationResult for the CLI. It reads the
// result only; nothing here feeds back into tax logic.
type ReportGenerator struct{}

// NewReportGenerator creates a report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate writes the result in the requested format.
func (rg *ReportGenerator) Generate(w io.Writer, result *domain.CalculationResult, format string) error {
	switch format {
	case "console", "":
		return rg.Console(w, result)
	case "json":
		return rg.JSON(w, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// JSON writes the result as indented JSON.
func (rg *ReportGenerator) JSON(w io.Writer, result *domain.CalculationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Console writes a sectioned plain-text report.
func (rg *ReportGenerator) Console(w io.Writer, result *domain.CalculationResult) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("TAX SUMMARY (%d)", result.TaxYear)) + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	sb.WriteString(sectionStyle.Render("Income") + "\n")
	row(&sb, "Total income", FormatCurrency(result.TotalIncome))
	row(&sb, "Earned income", FormatCurrency(result.EarnedIncome))
	row(&sb, "Federal AGI", FormatCurrency(result.FederalAGI))
	deduction := "standard"
	if result.ItemizedUsed {
		deduction = "itemized"
	}
	row(&sb, fmt.Sprintf("Deduction (%s)", deduction), FormatCurrency(result.DeductionUsed))
	row(&sb, "Federal taxable income", FormatCurrency(result.FederalTaxableIncome))
	sb.WriteString("\n")

	if result.SocialSecurity.GrossBenefits.GreaterThan(decimal.Zero) {
		sb.WriteString(sectionStyle.Render("Social Security") + "\n")
		row(&sb, "Gross benefits", FormatCurrency(result.SocialSecurity.GrossBenefits))
		row(&sb, "Provisional income", FormatCurrency(result.SocialSecurity.ProvisionalIncome))
		row(&sb, fmt.Sprintf("Taxable (tier %d)", result.SocialSecurity.Tier), FormatCurrency(result.SocialSecurity.TaxableSocialSecurity))
		sb.WriteString("\n")
	}

	sb.WriteString(sectionStyle.Render("Federal tax") + "\n")
	row(&sb, "Ordinary income tax", FormatCurrency(result.FederalOrdinaryTax))
	row(&sb, "Capital gains tax", FormatCurrency(result.CapitalGains.Tax))
	if result.AMT.AdditionalTax.GreaterThan(decimal.Zero) {
		row(&sb, "AMT (additional)", FormatCurrency(result.AMT.AdditionalTax))
	}
	if result.NIIT.Applies {
		row(&sb, "Net investment income tax", FormatCurrency(result.NIIT.Tax))
	}
	if result.FICA.TotalFICA.GreaterThan(decimal.Zero) {
		row(&sb, "FICA", FormatCurrency(result.FICA.TotalFICA))
	}
	row(&sb, "Federal total", FormatCurrency(result.FederalTotalTax))
	sb.WriteString("\n")

	if result.StateTotalTax.GreaterThan(decimal.Zero) || result.State.HomesteadCredit.GreaterThan(decimal.Zero) {
		sb.WriteString(sectionStyle.Render("State tax") + "\n")
		row(&sb, "State taxable income", FormatCurrency(result.State.StateTaxableIncome))
		row(&sb, "State tax", FormatCurrency(result.State.StateTax))
		if result.State.CreditEligible {
			row(&sb, "Homestead credit", "-"+FormatCurrency(result.State.HomesteadCredit))
		}
		sb.WriteString("\n")
	}

	if result.IRMAA.TierLevel > 0 || result.IRMAA.RiskStatus != "" {
		sb.WriteString(sectionStyle.Render("Medicare IRMAA") + "\n")
		row(&sb, "MAGI", FormatCurrency(result.IRMAA.MAGI))
		row(&sb, "Status", result.IRMAA.RiskStatus)
		if result.IRMAA.TierLevel > 0 {
			row(&sb, fmt.Sprintf("Tier %d annual surcharge", result.IRMAA.TierLevel), FormatCurrency(result.IRMAA.AnnualSurcharge))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(sectionStyle.Render("Rates") + "\n")
	row(&sb, "Total tax", FormatCurrency(result.TotalTax))
	row(&sb, "Federal marginal rate", FormatPercent(result.FederalMarginalRate))
	row(&sb, "Total marginal rate", FormatPercent(result.TotalMarginalRate))
	row(&sb, "Effective rate", FormatPercent(result.EffectiveRateTotal))
	row(&sb, "Amount to next bracket", FormatCurrency(result.AmountToNextBracket))

	if len(result.Degraded) > 0 {
		sb.WriteString("\n")
		sb.WriteString(warnStyle.Render(fmt.Sprintf("Warning: degraded sections (shown as zero): %s", strings.Join(result.Degraded, ", "))) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// MarginalReport writes the rate-change walk.
func (rg *ReportGenerator) MarginalReport(w io.Writer, analysis *domain.MarginalAnalysis) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("MARGINAL RATE OUTLOOK") + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	row(&sb, "Current marginal rate", FormatPercent(analysis.CurrentRate))
	if analysis.BasicEstimate {
		sb.WriteString(warnStyle.Render("Full analysis unavailable; bracket-only estimate shown.") + "\n")
	}
	sb.WriteString("\n")

	if len(analysis.RateChanges) == 0 {
		sb.WriteString("No rate changes within the search horizon.\n")
	}
	for i, change := range analysis.RateChanges {
		sb.WriteString(fmt.Sprintf("%d. +%s (at %s total income): %s -> %s [%s, %s]\n",
			i+1,
			FormatCurrency(change.AmountToChange),
			FormatCurrency(change.ThresholdIncome),
			FormatPercent(change.FromRate),
			FormatPercent(change.ToRate),
			change.ChangeType,
			change.Cause))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func row(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("  %-28s %14s\n", label, value))
}
