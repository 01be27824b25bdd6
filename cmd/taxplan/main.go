package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/cdenuyl/tax-planning-pro/internal/calculation"
	"github.com/cdenuyl/tax-planning-pro/internal/config"
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
	"github.com/cdenuyl/tax-planning-pro/internal/memo"
	"github.com/cdenuyl/tax-planning-pro/internal/output"
)

// cliLogger implements calculation.Logger using the standard log package.
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...interface{}) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...interface{})  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...interface{})  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...interface{}) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taxplan",
	Short: "Household tax planning calculator",
	Long:  "Computes federal, state, and surtax liabilities with marginal rate projections from a household snapshot",
}

// loadInputs reads the snapshot and the optional regulatory overlay, then
// builds the engine behind its memoizing front. Commands that run the
// engine more than once per snapshot go through the memo calculator.
func loadInputs(cmd *cobra.Command, snapshotFile string) (*config.Snapshot, *memo.Calculator, *calculation.CalculationEngine, error) {
	parser := config.NewInputParser()
	parser.Logger = cliLogger{}

	snapshot, err := parser.LoadFromFile(snapshotFile)
	if err != nil {
		return nil, nil, nil, err
	}

	regulatory := domain.DefaultRegulatory2025()
	if regulatoryFile, _ := cmd.Flags().GetString("regulatory-config"); regulatoryFile != "" {
		regulatory, err = config.LoadRegulatory(regulatoryFile)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	engine := calculation.NewCalculationEngineWithConfig(regulatory)
	engine.SetLogger(cliLogger{})

	calc, err := memo.NewCalculator(engine)
	if err != nil {
		return nil, nil, nil, err
	}
	return snapshot, calc, engine, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [snapshot-file]",
		Short: "Compute the full tax result for a household snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, calc, _, err := loadInputs(cmd, args[0])
			if err != nil {
				return err
			}

			result := calc.Calculate(snapshot)

			format, _ := cmd.Flags().GetString("format")
			return output.NewReportGenerator().Generate(os.Stdout, result, format)
		},
	}
	cmd.Flags().String("format", "console", "Output format: console or json")
	return cmd
}

func marginalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marginal [snapshot-file]",
		Short: "Project upcoming marginal rate changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, calc, engine, err := loadInputs(cmd, args[0])
			if err != nil {
				return err
			}

			maxChanges, _ := cmd.Flags().GetInt("max-changes")
			analyzer := calculation.NewMarginalRateAnalyzer(engine)

			analysis, err := analyzer.Analyze(&snapshot.Household, snapshot.IncomeSources, snapshot.Deductions, snapshot.Settings, maxChanges)
			if err != nil {
				// Degrade to the bracket-only estimate instead of failing.
				log.Printf("WARN: %v; falling back to bracket-only estimate", err)
				analysis = analyzer.BasicEstimate(calc.Calculate(snapshot))
			}

			return output.NewReportGenerator().MarginalReport(os.Stdout, analysis)
		},
	}
	cmd.Flags().Int("max-changes", 3, "Maximum rate changes to report")
	return cmd
}

func rmdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmd [snapshot-file]",
		Short: "Show estimated required minimum distribution shortfalls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, calc, _, err := loadInputs(cmd, args[0])
			if err != nil {
				return err
			}

			snapshot.Settings.RMDEnabled = true
			result := calc.Calculate(snapshot)

			if len(result.RMDEstimates) == 0 {
				fmt.Println("No RMD shortfalls estimated.")
				return nil
			}
			for _, est := range result.RMDEstimates {
				fmt.Printf("%s: age %d, balance %s, required %s, existing %s, shortfall %s\n",
					est.SourceID, est.Age,
					output.FormatCurrency(est.AccountBalance),
					output.FormatCurrency(est.RequiredAmount),
					output.FormatCurrency(est.ExistingAmount),
					output.FormatCurrency(est.ShortfallAmount))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxplan %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	rootCmd.PersistentFlags().String("regulatory-config", "", "Path to a regulatory.yaml overlay")
	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(marginalCmd())
	rootCmd.AddCommand(rmdCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
