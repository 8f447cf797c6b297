package analysis

import (
	"context"
	"sort"

	"github.com/rupeeworks/folio/internal/models"
)

// fundCandidate is a scored ADD_NEW suggestion, used only for ranking
// within one asset class.
type fundCandidate struct {
	SchemeCode int
	SchemeName string
	Category   string
	Score      float64
}

// fundCandidates ranks catalog funds of the given asset class and
// returns the top two. An empty result means the caller should fall
// back to a generic placeholder action.
func (s *Service) fundCandidates(ctx context.Context, class models.AssetClass) ([]fundCandidate, error) {
	funds, err := s.funds.AllFunds(ctx)
	if err != nil {
		return nil, err
	}

	var matching []*models.Fund
	for _, f := range funds {
		if f.ResolvedAssetClass() == class {
			matching = append(matching, f)
		}
	}
	if len(matching) == 0 {
		return nil, nil
	}

	scored := make([]fundCandidate, 0, len(matching))
	for _, f := range matching {
		scored = append(scored, fundCandidate{
			SchemeCode: f.SchemeCode,
			SchemeName: f.SchemeName,
			Category:   f.Category,
			Score:      scoreFund(f),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > topCandidates {
		scored = scored[:topCandidates]
	}
	return scored, nil
}

// scoreFund rates a fund in roughly [0,1]. Each term contributes only
// when its input is present and positive, so funds with sparse metrics
// are not disqualified, just ranked lower.
func scoreFund(f *models.Fund) float64 {
	var score float64
	if f.SharpeRatio != nil && *f.SharpeRatio > 0 {
		score += min(*f.SharpeRatio/2, 1) * 0.3
	}
	if f.Return3Y != nil && *f.Return3Y > 0 {
		score += min(*f.Return3Y/30, 1) * 0.3
	}
	if f.ExpenseRatio != nil && *f.ExpenseRatio > 0 {
		score += max(0, 1-*f.ExpenseRatio/2) * 0.2
	}
	if f.Volatility != nil && *f.Volatility > 0 {
		score += max(0, 1-*f.Volatility/30) * 0.2
	}
	return score
}
