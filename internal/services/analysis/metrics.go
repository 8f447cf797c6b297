package analysis

import (
	"math"

	"github.com/rupeeworks/folio/internal/models"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// calculateMetrics computes weighted portfolio metrics and a category
// breakdown. Each weighted metric is reported only when at least one
// holding supplied the underlying value; the breakdown is always built.
func calculateMetrics(holdings []*models.EnrichedHolding, totalValue float64) *models.CurrentMetrics {
	breakdown := make(map[string]*models.CategoryStat)

	var return1y, return3y, volatility, sharpe float64
	var seen1y, seen3y, seenVol, seenSharpe bool

	for _, h := range holdings {
		stat, ok := breakdown[h.Category]
		if !ok {
			stat = &models.CategoryStat{}
			breakdown[h.Category] = stat
		}
		stat.Allocation += h.Weight
		stat.Count++
		stat.Value += h.CurrentValue

		if h.Return1Y != nil {
			return1y += *h.Return1Y * h.Weight
			seen1y = true
		}
		if h.Return3Y != nil {
			return3y += *h.Return3Y * h.Weight
			seen3y = true
		}
		if h.Volatility != nil {
			volatility += *h.Volatility * h.Weight
			seenVol = true
		}
		if h.SharpeRatio != nil {
			sharpe += *h.SharpeRatio * h.Weight
			seenSharpe = true
		}
	}

	metrics := &models.CurrentMetrics{
		TotalValue:        totalValue,
		TotalHoldings:     len(holdings),
		CategoryBreakdown: breakdown,
	}
	if seen1y {
		v := round2(return1y)
		metrics.WeightedReturn1Y = &v
	}
	if seen3y {
		v := round2(return3y)
		metrics.WeightedReturn3Y = &v
	}
	if seenVol {
		v := round2(volatility)
		metrics.WeightedVolatility = &v
	}
	if seenSharpe {
		v := round2(sharpe)
		metrics.WeightedSharpe = &v
	}
	return metrics
}
