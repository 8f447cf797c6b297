package server

import (
	"math"
	"net/http"
	"sort"
	"time"
)

// fundView is the wire shape of one fund in the universe listing.
// Missing metrics are rendered as zero rather than omitted.
type fundView struct {
	SchemeCode   int     `json:"scheme_code"`
	SchemeName   string  `json:"scheme_name"`
	FundHouse    string  `json:"fund_house,omitempty"`
	Category     string  `json:"category"`
	AssetClass   string  `json:"asset_class"`
	NAV          float64 `json:"nav"`
	Return1Y     float64 `json:"return_1y"`
	Return3Y     float64 `json:"return_3y"`
	Return5Y     float64 `json:"return_5y"`
	Volatility   float64 `json:"volatility"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	ExpenseRatio float64 `json:"expense_ratio"`
	LastUpdated  string  `json:"last_updated,omitempty"`
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// handleFunds handles GET /api/funds with optional asset_class and
// category filters.
func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	funds, err := s.app.FundRef.AllFunds(r.Context())
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Fund catalog unavailable: "+err.Error())
		return
	}

	assetClassFilter := r.URL.Query().Get("asset_class")
	categoryFilter := r.URL.Query().Get("category")

	views := make([]fundView, 0, len(funds))
	categorySet := make(map[string]struct{})
	classSet := make(map[string]struct{})

	for _, f := range funds {
		class := string(f.ResolvedAssetClass())
		categorySet[f.Category] = struct{}{}
		classSet[class] = struct{}{}

		if assetClassFilter != "" && class != assetClassFilter {
			continue
		}
		if categoryFilter != "" && f.Category != categoryFilter {
			continue
		}

		view := fundView{
			SchemeCode:   f.SchemeCode,
			SchemeName:   f.SchemeName,
			FundHouse:    f.FundHouse,
			Category:     f.Category,
			AssetClass:   class,
			NAV:          f.NAV,
			Return1Y:     orZero(f.Return1Y),
			Return3Y:     orZero(f.Return3Y),
			Return5Y:     orZero(f.Return5Y),
			Volatility:   orZero(f.Volatility),
			SharpeRatio:  orZero(f.SharpeRatio),
			ExpenseRatio: orZero(f.ExpenseRatio),
		}
		if !f.LastUpdated.IsZero() {
			view.LastUpdated = f.LastUpdated.Format(time.RFC3339)
		}
		views = append(views, view)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"funds": views,
		"total": len(views),
		"filters": map[string][]string{
			"categories":    sortedKeys(categorySet),
			"asset_classes": sortedKeys(classSet),
		},
		"cache_expiry": cacheExpiryString(s.app.FundRef.CacheExpiry()),
	})
}

// handleFundStats handles GET /api/funds/stats.
func (s *Server) handleFundStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	funds, err := s.app.FundRef.AllFunds(r.Context())
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Fund catalog unavailable: "+err.Error())
		return
	}

	byClass := make(map[string]int)
	byCategory := make(map[string]int)
	var sum1y, sum3y, sumExpense float64
	var n1y, n3y, nExpense int

	for _, f := range funds {
		byClass[string(f.ResolvedAssetClass())]++
		byCategory[f.Category]++

		if f.Return1Y != nil {
			sum1y += *f.Return1Y
			n1y++
		}
		if f.Return3Y != nil {
			sum3y += *f.Return3Y
			n3y++
		}
		if f.ExpenseRatio != nil {
			sumExpense += *f.ExpenseRatio
			nExpense++
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total_funds":    len(funds),
		"by_asset_class": byClass,
		"by_category":    byCategory,
		"averages": map[string]float64{
			"return_1y":     avg2(sum1y, n1y),
			"return_3y":     avg2(sum3y, n3y),
			"expense_ratio": avg2(sumExpense, nExpense),
		},
	})
}

// handleFundRefresh handles POST /api/funds/refresh (admin endpoint).
func (s *Server) handleFundRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.app.FundRef.Refresh(r.Context(), true); err != nil {
		WriteError(w, http.StatusBadGateway, "Fund registry refresh failed: "+err.Error())
		return
	}

	funds, err := s.app.FundRef.AllFunds(r.Context())
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Fund catalog unavailable: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "refreshed",
		"total_funds":  len(funds),
		"cache_expiry": cacheExpiryString(s.app.FundRef.CacheExpiry()),
	})
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func avg2(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*100) / 100
}

func cacheExpiryString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
