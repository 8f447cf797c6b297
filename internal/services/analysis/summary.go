package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/rupeeworks/folio/internal/models"
)

// generateSummary condenses the analysis into an alignment verdict, the
// top allocation issues, transaction totals, and a tax narrative.
func generateSummary(
	current models.Allocation,
	target models.Allocation,
	gaps map[models.AssetClass]float64,
	actions []*models.RebalancingAction,
) *models.AnalysisSummary {
	var totalGap float64
	for _, c := range models.AssetClasses {
		totalGap += math.Abs(gaps[c])
	}
	alignmentScore := math.Max(0, 1-totalGap/2)

	issues := make([]string, 0, maxPrimaryIssues)
	for _, c := range models.AssetClasses {
		gap := gaps[c]
		if math.Abs(gap) <= issueGapCutoff {
			continue
		}
		currentPct := current.Get(c) * 100
		targetPct := target.Get(c) * 100
		switch {
		case gap > 0:
			issues = append(issues, fmt.Sprintf("%.0f%% %s (target: %.0f%%)", currentPct, c, targetPct))
		case currentPct == 0:
			issues = append(issues, fmt.Sprintf("No %s allocation", c))
		default:
			issues = append(issues, fmt.Sprintf("Only %.0f%% %s (target: %.0f%%)", currentPct, c, targetPct))
		}
	}
	if len(issues) > maxPrimaryIssues {
		issues = issues[:maxPrimaryIssues]
	}

	var totalSell, totalBuy float64
	for _, a := range actions {
		switch a.Action {
		case models.ActionSell:
			totalSell += -a.TransactionAmount
		case models.ActionBuy, models.ActionAddNew:
			totalBuy += a.TransactionAmount
		}
	}

	return &models.AnalysisSummary{
		IsAligned:        alignmentScore >= alignedCutoff,
		AlignmentScore:   round2(alignmentScore),
		PrimaryIssues:    issues,
		TotalSellAmount:  totalSell,
		TotalBuyAmount:   totalBuy,
		NetTransaction:   totalBuy - totalSell,
		TaxImpactSummary: taxImpactSummary(actions),
	}
}

// taxImpactSummary estimates the tax bill on the realized gains of the
// proposed SELL actions, split by LTCG and STCG treatment.
func taxImpactSummary(actions []*models.RebalancingAction) string {
	var ltcgGain, stcgGain float64
	for _, a := range actions {
		if a.Action != models.ActionSell || a.EstimatedGain == nil || *a.EstimatedGain <= 0 {
			continue
		}
		switch a.TaxStatus {
		case models.TaxStatusLTCG:
			ltcgGain += *a.EstimatedGain
		case models.TaxStatusSTCG:
			stcgGain += *a.EstimatedGain
		}
	}

	var notes []string
	if ltcgGain > ltcgExemption {
		tax := (ltcgGain - ltcgExemption) * ltcgTaxRate
		notes = append(notes, fmt.Sprintf("Estimated INR %s LTCG tax (gains: INR %s above INR 1L exemption)",
			formatINR(tax), formatINR(ltcgGain)))
	}
	if stcgGain > 0 {
		tax := stcgGain * stcgTaxRate
		notes = append(notes, fmt.Sprintf("Estimated INR %s STCG tax (gains: INR %s)",
			formatINR(tax), formatINR(stcgGain)))
	}

	if len(notes) == 0 {
		return "No significant tax impact expected"
	}
	return strings.Join(notes, "; ")
}

// formatINR renders a rupee amount with no decimals and comma-grouped
// thousands, e.g. 1234567.8 -> "1,234,568".
func formatINR(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
