// Package models defines data structures for Folio
package models

import (
	"errors"
	"strings"
	"time"
)

// ErrFundNotFound is returned by the fund reference when a scheme code is
// unknown. It is a recoverable condition; callers degrade, not abort.
var ErrFundNotFound = errors.New("fund not found")

// AssetClass is the coarse allocation bucket for a fund.
type AssetClass string

const (
	AssetClassEquity        AssetClass = "equity"
	AssetClassDebt          AssetClass = "debt"
	AssetClassHybrid        AssetClass = "hybrid"
	AssetClassGold          AssetClass = "gold"
	AssetClassInternational AssetClass = "international"
	AssetClassLiquid        AssetClass = "liquid"
)

// AssetClasses is the canonical iteration order for the six asset classes.
var AssetClasses = []AssetClass{
	AssetClassEquity,
	AssetClassDebt,
	AssetClassHybrid,
	AssetClassGold,
	AssetClassInternational,
	AssetClassLiquid,
}

// IsValid reports whether the asset class is one of the six canonical buckets.
func (c AssetClass) IsValid() bool {
	switch c {
	case AssetClassEquity, AssetClassDebt, AssetClassHybrid,
		AssetClassGold, AssetClassInternational, AssetClassLiquid:
		return true
	}
	return false
}

// Title returns the asset class with the first letter capitalized
// (e.g. "debt" -> "Debt"), used for synthesized fund names.
func (c AssetClass) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Fund is an immutable snapshot of fund metadata from the registry.
type Fund struct {
	SchemeCode   int        `json:"scheme_code"`
	SchemeName   string     `json:"scheme_name"`
	FundHouse    string     `json:"fund_house,omitempty"`
	Category     string     `json:"category"`
	AssetClass   AssetClass `json:"asset_class,omitempty"`
	NAV          float64    `json:"nav"`
	Return1Y     *float64   `json:"return_1y,omitempty"`
	Return3Y     *float64   `json:"return_3y,omitempty"`
	Return5Y     *float64   `json:"return_5y,omitempty"`
	Volatility   *float64   `json:"volatility,omitempty"`
	SharpeRatio  *float64   `json:"sharpe_ratio,omitempty"`
	ExpenseRatio *float64   `json:"expense_ratio,omitempty"`
	LastUpdated  time.Time  `json:"last_updated,omitempty"`
}

// ResolvedAssetClass returns the fund's declared asset class when present,
// otherwise the class implied by its category. The declared value is passed
// through verbatim (lowercased) even if it is outside the six-class taxonomy;
// allocation sums silently exclude such funds.
func (f *Fund) ResolvedAssetClass() AssetClass {
	if f.AssetClass != "" {
		return AssetClass(strings.ToLower(string(f.AssetClass)))
	}
	return AssetClassForCategory(f.Category)
}

// categoryAssetClass maps SEBI-style fund categories to asset classes.
var categoryAssetClass = map[string]AssetClass{
	// Equity
	"Large Cap":       AssetClassEquity,
	"Mid Cap":         AssetClassEquity,
	"Small Cap":       AssetClassEquity,
	"Flexi Cap":       AssetClassEquity,
	"Large & Mid Cap": AssetClassEquity,
	"Multi Cap":       AssetClassEquity,
	"Focused":         AssetClassEquity,
	"ELSS":            AssetClassEquity,
	"Sectoral":        AssetClassEquity,
	"Thematic":        AssetClassEquity,
	"Index":           AssetClassEquity,
	"Contra":          AssetClassEquity,
	"Value":           AssetClassEquity,
	"Dividend Yield":  AssetClassEquity,
	"Equity":          AssetClassEquity,
	// Debt
	"Liquid":                  AssetClassLiquid,
	"Overnight":               AssetClassLiquid,
	"Ultra Short Duration":    AssetClassDebt,
	"Low Duration":            AssetClassDebt,
	"Short Duration":          AssetClassDebt,
	"Medium Duration":         AssetClassDebt,
	"Medium to Long Duration": AssetClassDebt,
	"Long Duration":           AssetClassDebt,
	"Dynamic Bond":            AssetClassDebt,
	"Corporate Bond":          AssetClassDebt,
	"Credit Risk":             AssetClassDebt,
	"Banking & PSU":           AssetClassDebt,
	"Gilt":                    AssetClassDebt,
	"10 Yr Gilt":              AssetClassDebt,
	"Floater":                 AssetClassDebt,
	"Income":                  AssetClassDebt,
	// Hybrid
	"Balanced Advantage":       AssetClassHybrid,
	"Aggressive Hybrid":        AssetClassHybrid,
	"Conservative Hybrid":      AssetClassHybrid,
	"Dynamic Asset Allocation": AssetClassHybrid,
	"Multi Asset Allocation":   AssetClassHybrid,
	"Multi Asset":              AssetClassHybrid,
	"Equity Savings":           AssetClassHybrid,
	"Arbitrage":                AssetClassHybrid,
	// Alternatives
	"Gold":                AssetClassGold,
	"Gold ETF":            AssetClassGold,
	"Silver":              AssetClassGold,
	"FOF - International": AssetClassInternational,
	"International":       AssetClassInternational,
	"Other":               AssetClassEquity,
}

// AssetClassForCategory maps a fund category name to an asset class,
// defaulting to equity for unrecognized categories.
func AssetClassForCategory(category string) AssetClass {
	if c, ok := categoryAssetClass[category]; ok {
		return c
	}
	return AssetClassEquity
}
