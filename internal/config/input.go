package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxgo/itr-calculator/internal/domain"
	"github.com/taxgo/itr-calculator/pkg/dateutil"
)

// InputParser handles parsing of taxpayer input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a tax return from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxReturn, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var ret domain.TaxReturn
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateReturn(&ret); err != nil {
		return nil, fmt.Errorf("tax return validation failed: %w", err)
	}

	return &ret, nil
}

// ValidateReturn performs structural validation only. Numeric amounts are
// deliberately not range-checked: the engine's contract is to accept any
// numeric input and still return a number. Unknown asset classes are the
// one thing that cannot be computed sensibly, so they are rejected here at
// the boundary.
func (ip *InputParser) ValidateReturn(ret *domain.TaxReturn) error {
	for i, tx := range ret.CapitalGains {
		if tx.AssetType == "" {
			// Upstream parsers omit the field for unclassified rows;
			// treat those as miscellaneous assets.
			ret.CapitalGains[i].AssetType = domain.OtherAsset
			continue
		}
		if !tx.AssetType.Valid() {
			return fmt.Errorf("transaction %s: unknown asset type %q", tx.ID, tx.AssetType)
		}
	}

	if ret.DateOfBirth != "" {
		if _, err := dateutil.ParseDate(ret.DateOfBirth); err != nil {
			// Not fatal: the engine falls back to a default age. Flagging
			// it at load time gives the caller a chance to fix the input.
			return fmt.Errorf("date of birth %q is not a valid YYYY-MM-DD date", ret.DateOfBirth)
		}
	}

	return nil
}

// CreateExampleReturn creates an example tax return for documentation and
// for the `example` CLI command.
func (ip *InputParser) CreateExampleReturn() *domain.TaxReturn {
	purchase, _ := dateutil.ParseDate("2016-05-10")
	sale, _ := dateutil.ParseDate("2024-11-20")
	fmv := decimal.NewFromInt(480000)

	stPurchase, _ := dateutil.ParseDate("2024-04-01")
	stSale, _ := dateutil.ParseDate("2024-12-15")

	return &domain.TaxReturn{
		Name:        "Asha Prabhu",
		DateOfBirth: "1988-07-22",
		Income: domain.Income{
			Salary:         decimal.NewFromInt(1850000),
			InterestIncome: decimal.NewFromInt(42000),
			OtherIncome:    decimal.NewFromInt(15000),
			FnoIncome:      decimal.NewFromInt(120000),
		},
		Deductions: domain.Deductions{
			Section80C:     decimal.NewFromInt(150000),
			Section80CCD1B: decimal.NewFromInt(50000),
			Section80D:     decimal.NewFromInt(25000),
			Section80TTA:   decimal.NewFromInt(10000),
		},
		CapitalGains: []domain.CapitalGainsTransaction{
			{
				ID:            "txn-001",
				AssetType:     domain.ListedEquity,
				PurchaseDate:  &purchase,
				SaleDate:      &sale,
				PurchasePrice: decimal.NewFromInt(300000),
				SalePrice:     decimal.NewFromInt(750000),
				Expenses:      decimal.NewFromInt(2500),
				FMV2018:       &fmv,
			},
			{
				ID:            "txn-002",
				AssetType:     domain.EquityMutualFund,
				PurchaseDate:  &stPurchase,
				SaleDate:      &stSale,
				PurchasePrice: decimal.NewFromInt(200000),
				SalePrice:     decimal.NewFromInt(230000),
				Expenses:      decimal.NewFromInt(500),
			},
		},
	}
}

// WriteExampleFile writes the example tax return as YAML to filename.
func (ip *InputParser) WriteExampleFile(filename string) error {
	ret := ip.CreateExampleReturn()
	data, err := yaml.Marshal(exampleYAML(ret))
	if err != nil {
		return fmt.Errorf("failed to marshal example return: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// exampleYAML converts a TaxReturn to the float/string shape the input
// format uses (the domain types unmarshal from that shape; marshalling back
// goes through the same representation so the round trip is loadable).
func exampleYAML(ret *domain.TaxReturn) map[string]any {
	txns := make([]map[string]any, 0, len(ret.CapitalGains))
	for _, tx := range ret.CapitalGains {
		m := map[string]any{
			"id":             tx.ID,
			"asset_type":     string(tx.AssetType),
			"purchase_price": tx.PurchasePrice.InexactFloat64(),
			"sale_price":     tx.SalePrice.InexactFloat64(),
			"expenses":       tx.Expenses.InexactFloat64(),
		}
		if tx.PurchaseDate != nil {
			m["purchase_date"] = tx.PurchaseDate.Format(dateutil.DateLayout)
		}
		if tx.SaleDate != nil {
			m["sale_date"] = tx.SaleDate.Format(dateutil.DateLayout)
		}
		if tx.FMV2018 != nil {
			m["fmv_2018"] = tx.FMV2018.InexactFloat64()
		}
		txns = append(txns, m)
	}

	return map[string]any{
		"name":          ret.Name,
		"date_of_birth": ret.DateOfBirth,
		"income": map[string]any{
			"salary":             ret.Income.Salary.InexactFloat64(),
			"interest_income":    ret.Income.InterestIncome.InexactFloat64(),
			"other_income":       ret.Income.OtherIncome.InexactFloat64(),
			"business_income":    ret.Income.BusinessIncome.InexactFloat64(),
			"speculation_income": ret.Income.SpeculationIncome.InexactFloat64(),
			"fno_income":         ret.Income.FnoIncome.InexactFloat64(),
		},
		"deductions": map[string]any{
			"section_80c":      ret.Deductions.Section80C.InexactFloat64(),
			"section_80ccd_1b": ret.Deductions.Section80CCD1B.InexactFloat64(),
			"section_80ccd_2":  ret.Deductions.Section80CCD2.InexactFloat64(),
			"section_80d":      ret.Deductions.Section80D.InexactFloat64(),
			"section_80tta":    ret.Deductions.Section80TTA.InexactFloat64(),
			"section_80ttb":    ret.Deductions.Section80TTB.InexactFloat64(),
			"section_80g":      ret.Deductions.Section80G.InexactFloat64(),
			"section_24b":      ret.Deductions.Section24B.InexactFloat64(),
		},
		"capital_gains_transactions": txns,
	}
}
