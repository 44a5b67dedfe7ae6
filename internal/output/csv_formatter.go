package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	shopdecimal "github.com/shopspring/decimal"

	"github.com/taxgo/itr-calculator/internal/domain"
)

// CSVFormatter renders one row per regime with the headline figures.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Extension() string { return "csv" }

func (CSVFormatter) Format(cmp *domain.RegimeComparison) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"regime", "taxable_income_normal", "taxable_income",
		"tax_on_normal_income", "tax_on_stcg", "tax_on_ltcg",
		"rebate", "surcharge", "cess", "total_tax_liability", "recommended",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, res := range []*domain.TaxComputationResult{cmp.Old, cmp.New} {
		row := []string{
			string(res.Regime),
			plain(res.TaxableIncomeNormal),
			plain(res.TaxableIncome),
			plain(res.TaxOnNormalIncome),
			plain(res.TaxOnSTCG),
			plain(res.TaxOnLTCG),
			plain(res.Rebate),
			plain(res.Surcharge),
			plain(res.Cess),
			plain(res.TotalTaxLiability),
			fmt.Sprintf("%t", res.Regime == cmp.Recommended),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func plain(d shopdecimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
