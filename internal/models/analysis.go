package models

// TaxStatus is the Indian capital-gains classification of a tax lot.
type TaxStatus string

const (
	TaxStatusLTCG TaxStatus = "LTCG"
	TaxStatusSTCG TaxStatus = "STCG"
)

// ActionType is the kind of rebalancing transaction.
type ActionType string

const (
	ActionSell   ActionType = "SELL"
	ActionBuy    ActionType = "BUY"
	ActionHold   ActionType = "HOLD"
	ActionAddNew ActionType = "ADD_NEW"
)

// Priority ranks rebalancing actions.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank returns the sort rank for a priority (HIGH first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// HoldingInput is one holding of the caller's current portfolio.
// Exactly one value method applies: amount wins when both are supplied.
type HoldingInput struct {
	SchemeCode int    `json:"scheme_code"`
	SchemeName string `json:"scheme_name,omitempty"`

	Amount *float64 `json:"amount,omitempty"` // current value in INR
	Units  *float64 `json:"units,omitempty"`

	PurchaseDate   string   `json:"purchase_date,omitempty"` // ISO date (2006-01-02)
	PurchasePrice  *float64 `json:"purchase_price,omitempty"`
	PurchaseAmount *float64 `json:"purchase_amount,omitempty"`
}

// Allocation holds a fraction per asset class. Used both for targets
// (caller-supplied, not required to sum to 1) and the derived current
// allocation (sums to <=1).
type Allocation struct {
	Equity        float64 `json:"equity"`
	Debt          float64 `json:"debt"`
	Hybrid        float64 `json:"hybrid"`
	Gold          float64 `json:"gold"`
	International float64 `json:"international"`
	Liquid        float64 `json:"liquid"`
}

// Get returns the fraction for an asset class; 0 for out-of-taxonomy classes.
func (a Allocation) Get(c AssetClass) float64 {
	switch c {
	case AssetClassEquity:
		return a.Equity
	case AssetClassDebt:
		return a.Debt
	case AssetClassHybrid:
		return a.Hybrid
	case AssetClassGold:
		return a.Gold
	case AssetClassInternational:
		return a.International
	case AssetClassLiquid:
		return a.Liquid
	}
	return 0
}

// Add accumulates v into the asset class bucket. Out-of-taxonomy classes are
// silently dropped, so a portfolio holding such funds sums to <1.
func (a *Allocation) Add(c AssetClass, v float64) {
	switch c {
	case AssetClassEquity:
		a.Equity += v
	case AssetClassDebt:
		a.Debt += v
	case AssetClassHybrid:
		a.Hybrid += v
	case AssetClassGold:
		a.Gold += v
	case AssetClassInternational:
		a.International += v
	case AssetClassLiquid:
		a.Liquid += v
	}
}

// EnrichedHolding is a holding joined with registry data, valuation,
// portfolio weight, and tax-lot status.
type EnrichedHolding struct {
	SchemeCode   int        `json:"scheme_code"`
	SchemeName   string     `json:"scheme_name"`
	Category     string     `json:"category"`
	AssetClass   AssetClass `json:"asset_class"`
	CurrentValue float64    `json:"current_value"`
	Weight       float64    `json:"weight"`
	Units        *float64   `json:"units,omitempty"`
	NAV          *float64   `json:"nav,omitempty"`
	Return1Y     *float64   `json:"return_1y,omitempty"`
	Return3Y     *float64   `json:"return_3y,omitempty"`
	Volatility   *float64   `json:"volatility,omitempty"`
	SharpeRatio  *float64   `json:"sharpe_ratio,omitempty"`

	HoldingPeriodDays *int      `json:"holding_period_days,omitempty"`
	TaxStatus         TaxStatus `json:"tax_status,omitempty"`
	PurchaseAmount    *float64  `json:"purchase_amount,omitempty"`
	UnrealizedGain    *float64  `json:"unrealized_gain,omitempty"`
}

// RebalancingAction is one fund-level transaction of the rebalancing roadmap.
// Actions are created once by the generator and never mutated after emission.
type RebalancingAction struct {
	Action   ActionType `json:"action"`
	Priority Priority   `json:"priority"`

	SchemeCode int        `json:"scheme_code"`
	SchemeName string     `json:"scheme_name"`
	Category   string     `json:"category"`
	AssetClass AssetClass `json:"asset_class"`

	CurrentValue  *float64 `json:"current_value,omitempty"`
	CurrentWeight *float64 `json:"current_weight,omitempty"`
	CurrentUnits  *float64 `json:"current_units,omitempty"`

	TargetValue  float64 `json:"target_value"`
	TargetWeight float64 `json:"target_weight"`

	TransactionAmount float64  `json:"transaction_amount"` // negative for SELL
	TransactionUnits  *float64 `json:"transaction_units,omitempty"`

	TaxStatus         TaxStatus `json:"tax_status,omitempty"`
	HoldingPeriodDays *int      `json:"holding_period_days,omitempty"`
	EstimatedGain     *float64  `json:"estimated_gain,omitempty"`
	TaxNote           string    `json:"tax_note,omitempty"`

	Reason string `json:"reason"`
}

// CategoryStat is one entry of the per-category portfolio breakdown.
type CategoryStat struct {
	Allocation float64 `json:"allocation"`
	Count      int     `json:"count"`
	Value      float64 `json:"value"`
}

// CurrentMetrics holds weighted portfolio-level metrics. A weighted metric is
// nil unless at least one holding supplied the underlying value.
type CurrentMetrics struct {
	TotalValue         float64                  `json:"total_value"`
	TotalHoldings      int                      `json:"total_holdings"`
	WeightedReturn1Y   *float64                 `json:"weighted_return_1y,omitempty"`
	WeightedReturn3Y   *float64                 `json:"weighted_return_3y,omitempty"`
	WeightedVolatility *float64                 `json:"weighted_volatility,omitempty"`
	WeightedSharpe     *float64                 `json:"weighted_sharpe,omitempty"`
	CategoryBreakdown  map[string]*CategoryStat `json:"category_breakdown"`
}

// AnalysisSummary condenses the roadmap into an at-a-glance verdict.
type AnalysisSummary struct {
	IsAligned        bool     `json:"is_aligned"`
	AlignmentScore   float64  `json:"alignment_score"`
	PrimaryIssues    []string `json:"primary_issues"`
	TotalSellAmount  float64  `json:"total_sell_amount"`
	TotalBuyAmount   float64  `json:"total_buy_amount"`
	NetTransaction   float64  `json:"net_transaction"` // negative = net new cash required
	TaxImpactSummary string   `json:"tax_impact_summary"`
}

// AnalysisRequest is the input for one portfolio analysis.
// Profile is opaque to the analyzer; it is reserved for upstream
// persona/risk components.
type AnalysisRequest struct {
	RequestID        string                 `json:"request_id,omitempty"`
	Holdings         []HoldingInput         `json:"holdings"`
	TargetAllocation Allocation             `json:"target_allocation"`
	Profile          map[string]interface{} `json:"profile,omitempty"`
}

// AnalysisResponse is the complete result of one portfolio analysis.
type AnalysisResponse struct {
	RequestID          string                 `json:"request_id,omitempty"`
	CurrentAllocation  Allocation             `json:"current_allocation"`
	TargetAllocation   Allocation             `json:"target_allocation"`
	AllocationGaps     map[AssetClass]float64 `json:"allocation_gaps"`
	CurrentMetrics     *CurrentMetrics        `json:"current_metrics"`
	Holdings           []*EnrichedHolding     `json:"holdings"`
	RebalancingActions []*RebalancingAction   `json:"rebalancing_actions"`
	Summary            *AnalysisSummary       `json:"summary"`
	ModelVersion       string                 `json:"model_version"`
	LatencyMS          float64                `json:"latency_ms"`
}
