package output

import (
	"fmt"
	"strings"

	shopdecimal "github.com/shopspring/decimal"

	"github.com/taxgo/itr-calculator/internal/domain"
	"github.com/taxgo/itr-calculator/pkg/decimal"
)

// ConsoleFormatter renders a plain-text regime comparison report with the
// slab-wise breakdown for each regime.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Extension() string { return "txt" }

func (ConsoleFormatter) Format(cmp *domain.RegimeComparison) ([]byte, error) {
	var b strings.Builder

	b.WriteString("INCOME TAX REGIME COMPARISON\n")
	b.WriteString(strings.Repeat("=", 64) + "\n\n")

	writeRegime(&b, "OLD REGIME", cmp.Old)
	b.WriteString("\n")
	writeRegime(&b, "NEW REGIME", cmp.New)

	b.WriteString("\n" + strings.Repeat("-", 64) + "\n")
	fmt.Fprintf(&b, "Recommended regime: %s (saves %s)\n",
		strings.ToUpper(string(cmp.Recommended)), rupees(cmp.Savings))

	return []byte(b.String()), nil
}

func writeRegime(b *strings.Builder, title string, res *domain.TaxComputationResult) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
	fmt.Fprintf(b, "Taxable income (normal): %s\n", rupees(res.TaxableIncomeNormal))
	fmt.Fprintf(b, "Taxable income (total):  %s\n", rupees(res.TaxableIncome))

	if len(res.SlabBreakdown) > 0 {
		fmt.Fprintf(b, "%-28s %14s %8s %14s\n", "Slab", "Amount", "Rate", "Tax")
		for _, e := range res.SlabBreakdown {
			fmt.Fprintf(b, "%-28s %14s %7s%% %14s\n",
				e.RangeLabel, rupees(e.TaxableAmount), e.RatePercent.StringFixed(0), rupees(e.Tax))
		}
	}

	fmt.Fprintf(b, "Tax on normal income:    %s\n", rupees(res.TaxOnNormalIncome))
	fmt.Fprintf(b, "Tax on STCG:             %s\n", rupees(res.TaxOnSTCG))
	fmt.Fprintf(b, "Tax on LTCG:             %s\n", rupees(res.TaxOnLTCG))
	fmt.Fprintf(b, "Rebate (87A):            %s\n", rupees(res.Rebate))
	fmt.Fprintf(b, "Surcharge:               %s\n", rupees(res.Surcharge))
	fmt.Fprintf(b, "Cess:                    %s\n", rupees(res.Cess))
	fmt.Fprintf(b, "TOTAL LIABILITY:         %s\n", rupees(res.TotalTaxLiability))
}

func rupees(d shopdecimal.Decimal) string {
	return decimal.NewMoneyFromDecimal(d).Format()
}
