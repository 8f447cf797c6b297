package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rupeeworks/folio/internal/models"
)

// generateActions turns per-class allocation gaps into a prioritized
// list of fund-level transactions. Overweight classes are walked in
// descending gap order and sold down tax-efficiently; underweight
// classes are walked in ascending gap order and topped up or seeded
// with new funds.
func (s *Service) generateActions(
	ctx context.Context,
	holdings []*models.EnrichedHolding,
	gaps map[models.AssetClass]float64,
	target models.Allocation,
	totalValue float64,
) ([]*models.RebalancingAction, error) {
	var actions []*models.RebalancingAction

	byClass := make(map[models.AssetClass][]*models.EnrichedHolding)
	for _, h := range holdings {
		byClass[h.AssetClass] = append(byClass[h.AssetClass], h)
	}

	actions = append(actions, s.sellActions(byClass, gaps, target, totalValue)...)

	buys, err := s.buyActions(ctx, byClass, gaps, target, totalValue)
	if err != nil {
		return nil, err
	}
	actions = append(actions, buys...)

	sort.SliceStable(actions, func(i, j int) bool {
		ri, rj := actions[i].Priority.Rank(), actions[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return math.Abs(actions[i].TransactionAmount) > math.Abs(actions[j].TransactionAmount)
	})

	return actions, nil
}

type classGap struct {
	class models.AssetClass
	gap   float64
}

// overweightClasses returns classes more than the minor-gap threshold
// above target, largest overweight first.
func overweightClasses(gaps map[models.AssetClass]float64) []classGap {
	var out []classGap
	for _, c := range models.AssetClasses {
		if gaps[c] > minorGapIgnore {
			out = append(out, classGap{class: c, gap: gaps[c]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].gap > out[j].gap })
	return out
}

// underweightClasses returns classes more than the minor-gap threshold
// below target, most underweight first.
func underweightClasses(gaps map[models.AssetClass]float64) []classGap {
	var out []classGap
	for _, c := range models.AssetClasses {
		if gaps[c] < -minorGapIgnore {
			out = append(out, classGap{class: c, gap: gaps[c]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].gap < out[j].gap })
	return out
}

// sellActions walks each overweight class and sells down to target,
// consuming holdings in tax-efficiency order: realized losses first,
// then LTCG-eligible lots, then the largest position.
func (s *Service) sellActions(
	byClass map[models.AssetClass][]*models.EnrichedHolding,
	gaps map[models.AssetClass]float64,
	target models.Allocation,
	totalValue float64,
) []*models.RebalancingAction {
	var actions []*models.RebalancingAction

	for _, cg := range overweightClasses(gaps) {
		classHoldings := byClass[cg.class]
		if len(classHoldings) == 0 {
			continue
		}

		sort.SliceStable(classHoldings, func(i, j int) bool {
			ki, kj := sellKey(classHoldings[i]), sellKey(classHoldings[j])
			if ki.lossRank != kj.lossRank {
				return ki.lossRank < kj.lossRank
			}
			if ki.ltcgRank != kj.ltcgRank {
				return ki.ltcgRank < kj.ltcgRank
			}
			return ki.negValue < kj.negValue
		})

		targetValue := target.Get(cg.class) * totalValue
		var classValue float64
		for _, h := range classHoldings {
			classValue += h.CurrentValue
		}
		amountToSell := classValue - targetValue
		if amountToSell <= 0 {
			continue
		}

		remaining := amountToSell
		for _, h := range classHoldings {
			if remaining <= 0 {
				break
			}

			sellAmount := math.Min(h.CurrentValue, remaining)
			newValue := h.CurrentValue - sellAmount
			var newWeight float64
			if totalValue > 0 {
				newWeight = newValue / totalValue
			}

			priority := determinePriority(cg.gap, h.Weight)

			var estimatedGain *float64
			if h.PurchaseAmount != nil {
				var gainRatio float64
				if h.CurrentValue > 0 {
					gainRatio = sellAmount / h.CurrentValue
				}
				var unrealized float64
				if h.UnrealizedGain != nil {
					unrealized = *h.UnrealizedGain
				}
				g := unrealized * gainRatio
				estimatedGain = &g
			}

			// A lot close to LTCG eligibility is deferred rather than
			// sold, as long as it covers less than half the class's
			// total reduction need. The share is measured against the
			// class's original sell amount, not what remains.
			if h.HoldingPeriodDays != nil && *h.HoldingPeriodDays < ltcgThresholdDays {
				daysToLTCG := ltcgThresholdDays - *h.HoldingPeriodDays
				if daysToLTCG < deferralWindowDays && sellAmount < amountToSell*deferralShare {
					cv, cw := h.CurrentValue, h.Weight
					actions = append(actions, &models.RebalancingAction{
						Action:            models.ActionHold,
						Priority:          models.PriorityLow,
						SchemeCode:        h.SchemeCode,
						SchemeName:        h.SchemeName,
						Category:          h.Category,
						AssetClass:        h.AssetClass,
						CurrentValue:      &cv,
						CurrentWeight:     &cw,
						TargetValue:       newValue,
						TargetWeight:      newWeight,
						TransactionAmount: -sellAmount,
						TaxStatus:         h.TaxStatus,
						HoldingPeriodDays: h.HoldingPeriodDays,
						EstimatedGain:     estimatedGain,
						TaxNote:           s.deferralNote(daysToLTCG),
						Reason:            fmt.Sprintf("Recently purchased (%d days); defer sale if possible for LTCG treatment", *h.HoldingPeriodDays),
					})
					continue
				}
			}

			var transactionUnits *float64
			if h.NAV != nil && *h.NAV > 0 {
				u := sellAmount / *h.NAV
				transactionUnits = &u
			}

			cv, cw := h.CurrentValue, h.Weight
			actions = append(actions, &models.RebalancingAction{
				Action:            models.ActionSell,
				Priority:          priority,
				SchemeCode:        h.SchemeCode,
				SchemeName:        h.SchemeName,
				Category:          h.Category,
				AssetClass:        h.AssetClass,
				CurrentValue:      &cv,
				CurrentWeight:     &cw,
				CurrentUnits:      h.Units,
				TargetValue:       newValue,
				TargetWeight:      newWeight,
				TransactionAmount: -sellAmount,
				TransactionUnits:  transactionUnits,
				TaxStatus:         h.TaxStatus,
				HoldingPeriodDays: h.HoldingPeriodDays,
				EstimatedGain:     estimatedGain,
				TaxNote:           sellTaxNote(h),
				Reason: fmt.Sprintf("Reduce %s overweight (%.1f%%); %s eligible",
					cg.class, cg.gap*100, taxStatusOrUnknown(h.TaxStatus)),
			})

			remaining -= sellAmount
		}
	}

	return actions
}

// buyActions tops up underweight classes. Classes with existing
// holdings split the buy equally across them; empty classes get
// ADD_NEW suggestions from the fund scorer, or a generic placeholder
// when no candidates exist.
func (s *Service) buyActions(
	ctx context.Context,
	byClass map[models.AssetClass][]*models.EnrichedHolding,
	gaps map[models.AssetClass]float64,
	target models.Allocation,
	totalValue float64,
) ([]*models.RebalancingAction, error) {
	var actions []*models.RebalancingAction

	for _, cg := range underweightClasses(gaps) {
		targetValue := target.Get(cg.class) * totalValue
		var classValue float64
		for _, h := range byClass[cg.class] {
			classValue += h.CurrentValue
		}
		amountToBuy := targetValue - classValue
		if amountToBuy <= 0 {
			continue
		}

		priority := determinePriority(math.Abs(cg.gap), 0)

		existing := byClass[cg.class]
		if len(existing) > 0 {
			buyPerFund := amountToBuy / float64(len(existing))
			for _, h := range existing {
				newValue := h.CurrentValue + buyPerFund
				var newWeight float64
				if totalValue > 0 {
					newWeight = newValue / totalValue
				}

				var transactionUnits *float64
				if h.NAV != nil && *h.NAV > 0 {
					u := buyPerFund / *h.NAV
					transactionUnits = &u
				}

				cv, cw := h.CurrentValue, h.Weight
				actions = append(actions, &models.RebalancingAction{
					Action:            models.ActionBuy,
					Priority:          priority,
					SchemeCode:        h.SchemeCode,
					SchemeName:        h.SchemeName,
					Category:          h.Category,
					AssetClass:        h.AssetClass,
					CurrentValue:      &cv,
					CurrentWeight:     &cw,
					CurrentUnits:      h.Units,
					TargetValue:       newValue,
					TargetWeight:      newWeight,
					TransactionAmount: buyPerFund,
					TransactionUnits:  transactionUnits,
					Reason:            fmt.Sprintf("Increase %s allocation (gap: %.1f%%)", cg.class, cg.gap*100),
				})
			}
			continue
		}

		candidates, err := s.fundCandidates(ctx, cg.class)
		if err != nil {
			s.logger.Warn().Err(err).Str("asset_class", string(cg.class)).Msg("Fund candidate search failed")
			candidates = nil
		}

		if len(candidates) > 0 {
			buyPerFund := amountToBuy / float64(len(candidates))
			var currentPct float64
			if totalValue > 0 {
				currentPct = classValue / totalValue * 100
			}
			for _, cand := range candidates {
				var newWeight float64
				if totalValue > 0 {
					newWeight = buyPerFund / totalValue
				}
				actions = append(actions, &models.RebalancingAction{
					Action:            models.ActionAddNew,
					Priority:          priority,
					SchemeCode:        cand.SchemeCode,
					SchemeName:        cand.SchemeName,
					Category:          cand.Category,
					AssetClass:        cg.class,
					TargetValue:       buyPerFund,
					TargetWeight:      newWeight,
					TransactionAmount: buyPerFund,
					Reason: fmt.Sprintf("Add %s allocation (currently %.1f%% vs target %.1f%%)",
						cg.class, currentPct, target.Get(cg.class)*100),
				})
			}
			continue
		}

		var targetWeight float64
		if totalValue > 0 {
			targetWeight = amountToBuy / totalValue
		}
		actions = append(actions, &models.RebalancingAction{
			Action:            models.ActionAddNew,
			Priority:          priority,
			SchemeCode:        0,
			SchemeName:        fmt.Sprintf("Add %s Fund", cg.class.Title()),
			Category:          cg.class.Title(),
			AssetClass:        cg.class,
			TargetValue:       amountToBuy,
			TargetWeight:      targetWeight,
			TransactionAmount: amountToBuy,
			Reason: fmt.Sprintf("Add %s allocation (currently 0%% vs target %.1f%%)",
				cg.class, target.Get(cg.class)*100),
		})
	}

	return actions, nil
}

type sellSortKey struct {
	lossRank int // 0 when sitting on a loss
	ltcgRank int // 0 when LTCG eligible
	negValue float64
}

func sellKey(h *models.EnrichedHolding) sellSortKey {
	key := sellSortKey{lossRank: 1, ltcgRank: 1, negValue: -h.CurrentValue}
	if h.UnrealizedGain != nil && *h.UnrealizedGain < 0 {
		key.lossRank = 0
	}
	if h.TaxStatus == models.TaxStatusLTCG {
		key.ltcgRank = 0
	}
	return key
}

// determinePriority applies the shared priority rule: gap magnitude
// against the 15%/5% thresholds, escalated by fund or category
// concentration.
func determinePriority(gap, weight float64) models.Priority {
	if gap > highPriorityGap || weight > concentrationLimit {
		return models.PriorityHigh
	}
	if gap > mediumPriorityGap || weight > categoryConcentration {
		return models.PriorityMedium
	}
	return models.PriorityLow
}

func sellTaxNote(h *models.EnrichedHolding) string {
	if h.TaxStatus == "" {
		return ""
	}
	if h.UnrealizedGain != nil && *h.UnrealizedGain < 0 {
		return "Tax-loss harvesting opportunity"
	}
	if h.TaxStatus == models.TaxStatusLTCG {
		return "LTCG: 10% tax on gains above INR 1 lakh"
	}
	return "STCG: 15% tax on gains"
}

// deferralNote names the month the lot turns LTCG, padded a month out
// from the first of the current month.
func (s *Service) deferralNote(daysToLTCG int) string {
	firstOfMonth := s.today()
	firstOfMonth = time.Date(firstOfMonth.Year(), firstOfMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
	eligible := firstOfMonth.AddDate(0, 0, daysToLTCG+30)
	return fmt.Sprintf("STCG: Consider holding till %s for LTCG", eligible.Format("Jan 2006"))
}

func taxStatusOrUnknown(ts models.TaxStatus) string {
	if ts == "" {
		return "Unknown"
	}
	return string(ts)
}
