// itrcalc — Indian income-tax computation engine CLI.
//
// Loads a taxpayer's return from YAML, computes liability under the old and
// new regimes, and renders the result through a pluggable formatter.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxgo/itr-calculator/internal/calculation"
	"github.com/taxgo/itr-calculator/internal/config"
	"github.com/taxgo/itr-calculator/internal/domain"
	"github.com/taxgo/itr-calculator/internal/output"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "itrcalc",
	Short: "Income-tax liability calculator for the old and new regimes",
	Long: `itrcalc computes Indian income-tax liability from a YAML tax return:
slab tax with age-banded tables, capital gains by asset class and holding
period, the Section 87A rebate, surcharge with marginal relief, and cess.`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exampleCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("itrcalc %s (%s)\n", version, commit)
	},
}

// buildEngine assembles the engine from the shared flags.
func buildEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile != "" {
		rules, err := config.LoadRuleSet(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load rule set: %w", err)
		}
		return calculation.NewEngineWithRules(rules), nil
	}
	return calculation.NewEngine(), nil
}

func loadReturn(cmd *cobra.Command) (*domain.TaxReturn, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return nil, fmt.Errorf("--input is required")
	}
	return config.NewInputParser().LoadFromFile(input)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute tax liability for one regime",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		ret, err := loadReturn(cmd)
		if err != nil {
			return err
		}

		regimeFlag, _ := cmd.Flags().GetString("regime")
		regime := domain.Regime(strings.ToLower(regimeFlag))
		if regime != domain.RegimeOld && regime != domain.RegimeNew {
			return fmt.Errorf("unknown regime %q (want old or new)", regimeFlag)
		}

		res := engine.ComputeTax(ret, regime)
		fmt.Printf("Regime:              %s\n", res.Regime)
		fmt.Printf("Taxable income:      %s\n", res.TaxableIncomeNormal.StringFixed(0))
		for _, e := range res.SlabBreakdown {
			fmt.Printf("  %-26s %12s @ %3s%% = %12s\n",
				e.RangeLabel, e.TaxableAmount.StringFixed(0), e.RatePercent.StringFixed(0), e.Tax.StringFixed(2))
		}
		fmt.Printf("Tax on STCG:         %s\n", res.TaxOnSTCG.StringFixed(2))
		fmt.Printf("Tax on LTCG:         %s\n", res.TaxOnLTCG.StringFixed(2))
		fmt.Printf("Rebate:              %s\n", res.Rebate.StringFixed(2))
		fmt.Printf("Surcharge:           %s\n", res.Surcharge.StringFixed(2))
		fmt.Printf("Cess:                %s\n", res.Cess.StringFixed(2))
		fmt.Printf("Total tax liability: %s\n", res.TotalTaxLiability.StringFixed(0))
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the old and new regimes and recommend the cheaper one",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		ret, err := loadReturn(cmd)
		if err != nil {
			return err
		}

		cmp := engine.Recompute(ret)

		formatName, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(formatName)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (available: %s)",
				formatName, strings.Join(output.FormatterNames(), ", "))
		}

		save, _ := cmd.Flags().GetBool("save")
		if save {
			name, err := output.WriteFormatted(formatter, cmp)
			if err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", name)
			return nil
		}

		data, err := formatter.Format(cmp)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example tax return YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "tax_return_example.yaml"
		if len(args) == 1 {
			filename = args[0]
		}
		if err := config.NewInputParser().WriteExampleFile(filename); err != nil {
			return err
		}
		fmt.Printf("Example tax return written to %s\n", filename)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{calculateCmd, compareCmd} {
		c.Flags().String("input", "", "path to the tax return YAML file")
		c.Flags().String("rules", "", "optional rule-set override YAML file")
	}
	calculateCmd.Flags().String("regime", "new", "regime to compute (old or new)")
	compareCmd.Flags().String("format", "console", "output format (console, json, csv)")
	compareCmd.Flags().Bool("save", false, "write the report to a timestamped file")
}
