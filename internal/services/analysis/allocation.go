package analysis

import "github.com/rupeeworks/folio/internal/models"

// currentAllocation sums holding values into asset-class fractions.
// Out-of-taxonomy classes are dropped by Allocation.Add, so portfolios
// holding such funds sum to under 1.
func currentAllocation(holdings []*models.EnrichedHolding, totalValue float64) models.Allocation {
	var current models.Allocation
	if totalValue <= 0 {
		return current
	}
	for _, h := range holdings {
		current.Add(h.AssetClass, h.CurrentValue/totalValue)
	}
	return current
}

// allocationGaps computes current minus target per asset class.
// Positive means overweight.
func allocationGaps(current, target models.Allocation) map[models.AssetClass]float64 {
	gaps := make(map[models.AssetClass]float64, len(models.AssetClasses))
	for _, c := range models.AssetClasses {
		gaps[c] = current.Get(c) - target.Get(c)
	}
	return gaps
}
