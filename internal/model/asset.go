package model

// AssetClass identifies a product family in the backend's asset universe.
type AssetClass string

// Asset classes offered by the backend.
const (
	AssetParking      AssetClass = "parking"
	AssetYouthSavings AssetClass = "youth_savings"
	AssetISADeposit   AssetClass = "isa_deposit"
	AssetTimeDeposit  AssetClass = "time_deposit"
	AssetBondETF3Y    AssetClass = "bond_etf_3y"
	AssetBondETF10Y   AssetClass = "bond_etf_10y"
)

// TaxBenefit describes how an asset's interest is taxed.
type TaxBenefit string

// Tax treatments.
const (
	TaxNone        TaxBenefit = "none"
	TaxFree        TaxBenefit = "tax_free"
	TaxSeparateISA TaxBenefit = "separate_tax"
)

// Asset is one investable product the optimizer may allocate to.
type Asset struct {
	MonthlyLimit *float64   `json:"monthly_limit"`
	AnnualLimit  *float64   `json:"annual_limit"`
	Name         string     `json:"name"`
	AssetClass   AssetClass `json:"asset_class"`
	TaxBenefit   TaxBenefit `json:"tax_benefit"`
	GrossReturn  float64    `json:"gross_return"`
	Duration     float64    `json:"duration"`
}
