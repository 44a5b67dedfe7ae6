package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxgo/itr-calculator/pkg/dateutil"
)

// Income holds the taxpayer's income under each head for the financial year.
// Absent heads default to zero; negative amounts are passed through to the
// engine unvalidated.
type Income struct {
	Salary            decimal.Decimal `yaml:"salary" json:"salary"`
	InterestIncome    decimal.Decimal `yaml:"interest_income" json:"interest_income"`
	OtherIncome       decimal.Decimal `yaml:"other_income" json:"other_income"`
	BusinessIncome    decimal.Decimal `yaml:"business_income" json:"business_income"`
	SpeculationIncome decimal.Decimal `yaml:"speculation_income" json:"speculation_income"`
	FnoIncome         decimal.Decimal `yaml:"fno_income" json:"fno_income"`

	// CapitalGains is the aggregate reported by the upstream parser. It is
	// informational only; the engine recomputes gains from the transaction
	// list and never reads this field.
	CapitalGains decimal.Decimal `yaml:"capital_gains" json:"capital_gains"`
}

// GrossTotal sums the slab-taxable income heads. Capital gains are excluded;
// they are taxed separately from the transaction list.
func (in Income) GrossTotal() decimal.Decimal {
	return in.Salary.
		Add(in.InterestIncome).
		Add(in.OtherIncome).
		Add(in.BusinessIncome).
		Add(in.SpeculationIncome).
		Add(in.FnoIncome)
}

// Deductions holds the amounts claimed under each statutory section. The
// engine applies regime-dependent caps; the model stores claims as-is.
type Deductions struct {
	Section80C     decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80CCD1B decimal.Decimal `yaml:"section_80ccd_1b" json:"section_80ccd_1b"`
	Section80CCD2  decimal.Decimal `yaml:"section_80ccd_2" json:"section_80ccd_2"`
	Section80D     decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	Section80TTA   decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	Section80TTB   decimal.Decimal `yaml:"section_80ttb" json:"section_80ttb"`
	Section80G     decimal.Decimal `yaml:"section_80g" json:"section_80g"`
	Section24B     decimal.Decimal `yaml:"section_24b" json:"section_24b"`
}

// AssetClass is the closed set of asset categories a capital-gains
// transaction can fall into. The string values match the upstream parser's
// vocabulary.
type AssetClass string

const (
	ListedEquity     AssetClass = "equity_listed"
	EquityMutualFund AssetClass = "equity_mf"
	Property         AssetClass = "property"
	UnlistedShares   AssetClass = "unlisted_shares"
	OtherAsset       AssetClass = "other"
)

// Valid reports whether the asset class is one of the known categories.
func (a AssetClass) Valid() bool {
	switch a {
	case ListedEquity, EquityMutualFund, Property, UnlistedShares, OtherAsset:
		return true
	}
	return false
}

// IsEquity reports whether the asset is taxed under the equity holding-period
// and rate rules.
func (a AssetClass) IsEquity() bool {
	return a == ListedEquity || a == EquityMutualFund
}

// CapitalGainsTransaction records one realized disposal event. The engine
// treats transactions as immutable inputs; computing tax never mutates them.
type CapitalGainsTransaction struct {
	ID            string          `yaml:"id" json:"id"`
	AssetType     AssetClass      `yaml:"asset_type" json:"asset_type"`
	PurchaseDate  *time.Time      `yaml:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	SaleDate      *time.Time      `yaml:"sale_date,omitempty" json:"sale_date,omitempty"`
	PurchasePrice decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	SalePrice     decimal.Decimal `yaml:"sale_price" json:"sale_price"`
	Expenses      decimal.Decimal `yaml:"expenses" json:"expenses"`

	// FMV2018 is the fair market value as on 31 Jan 2018, used for the
	// grandfathered cost-basis step-up on assets acquired before that date.
	FMV2018 *decimal.Decimal `yaml:"fmv_2018,omitempty" json:"fmv_2018,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for CapitalGainsTransaction.
// Dates arrive as YYYY-MM-DD strings and monetary fields as plain numbers;
// unparseable dates are left nil so the engine can skip the transaction.
func (tx *CapitalGainsTransaction) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		ID            string   `yaml:"id"`
		AssetType     string   `yaml:"asset_type"`
		PurchaseDate  string   `yaml:"purchase_date"`
		SaleDate      string   `yaml:"sale_date"`
		PurchasePrice float64  `yaml:"purchase_price"`
		SalePrice     float64  `yaml:"sale_price"`
		Expenses      float64  `yaml:"expenses"`
		FMV2018       *float64 `yaml:"fmv_2018"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	tx.ID = aux.ID
	tx.AssetType = AssetClass(aux.AssetType)
	if t, err := dateutil.ParseDate(aux.PurchaseDate); err == nil {
		tx.PurchaseDate = &t
	}
	if t, err := dateutil.ParseDate(aux.SaleDate); err == nil {
		tx.SaleDate = &t
	}
	tx.PurchasePrice = decimal.NewFromFloat(aux.PurchasePrice)
	tx.SalePrice = decimal.NewFromFloat(aux.SalePrice)
	tx.Expenses = decimal.NewFromFloat(aux.Expenses)
	if aux.FMV2018 != nil {
		fmv := decimal.NewFromFloat(*aux.FMV2018)
		tx.FMV2018 = &fmv
	}
	return nil
}

// TaxReturn aggregates everything the engine needs for one taxpayer and one
// financial year, plus the two cached regime totals.
type TaxReturn struct {
	Name         string                    `yaml:"name" json:"name"`
	DateOfBirth  string                    `yaml:"date_of_birth" json:"date_of_birth"`
	Income       Income                    `yaml:"income" json:"income"`
	Deductions   Deductions                `yaml:"deductions" json:"deductions"`
	CapitalGains []CapitalGainsTransaction `yaml:"capital_gains_transactions" json:"capital_gains_transactions"`

	// TaxOldRegime and TaxNewRegime cache the engine's output for display
	// and persistence. They are overwritten on every recomputation and are
	// never authoritative on their own.
	TaxOldRegime decimal.Decimal `yaml:"tax_old_regime" json:"tax_old_regime"`
	TaxNewRegime decimal.Decimal `yaml:"tax_new_regime" json:"tax_new_regime"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Income so that plain
// numeric yaml scalars land in decimal fields.
func (in *Income) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Salary            float64 `yaml:"salary"`
		InterestIncome    float64 `yaml:"interest_income"`
		OtherIncome       float64 `yaml:"other_income"`
		BusinessIncome    float64 `yaml:"business_income"`
		SpeculationIncome float64 `yaml:"speculation_income"`
		FnoIncome         float64 `yaml:"fno_income"`
		CapitalGains      float64 `yaml:"capital_gains"`
	}
	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	in.Salary = decimal.NewFromFloat(aux.Salary)
	in.InterestIncome = decimal.NewFromFloat(aux.InterestIncome)
	in.OtherIncome = decimal.NewFromFloat(aux.OtherIncome)
	in.BusinessIncome = decimal.NewFromFloat(aux.BusinessIncome)
	in.SpeculationIncome = decimal.NewFromFloat(aux.SpeculationIncome)
	in.FnoIncome = decimal.NewFromFloat(aux.FnoIncome)
	in.CapitalGains = decimal.NewFromFloat(aux.CapitalGains)
	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Deductions.
func (d *Deductions) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Section80C     float64 `yaml:"section_80c"`
		Section80CCD1B float64 `yaml:"section_80ccd_1b"`
		Section80CCD2  float64 `yaml:"section_80ccd_2"`
		Section80D     float64 `yaml:"section_80d"`
		Section80TTA   float64 `yaml:"section_80tta"`
		Section80TTB   float64 `yaml:"section_80ttb"`
		Section80G     float64 `yaml:"section_80g"`
		Section24B     float64 `yaml:"section_24b"`
	}
	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	d.Section80C = decimal.NewFromFloat(aux.Section80C)
	d.Section80CCD1B = decimal.NewFromFloat(aux.Section80CCD1B)
	d.Section80CCD2 = decimal.NewFromFloat(aux.Section80CCD2)
	d.Section80D = decimal.NewFromFloat(aux.Section80D)
	d.Section80TTA = decimal.NewFromFloat(aux.Section80TTA)
	d.Section80TTB = decimal.NewFromFloat(aux.Section80TTB)
	d.Section80G = decimal.NewFromFloat(aux.Section80G)
	d.Section24B = decimal.NewFromFloat(aux.Section24B)
	return nil
}
