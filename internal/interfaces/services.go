// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/rupeeworks/folio/internal/models"
)

// AnalysisService runs the portfolio analysis pipeline: enrichment,
// allocation/gap computation, weighted metrics, rebalancing actions,
// and the summary.
type AnalysisService interface {
	// AnalyzePortfolio analyzes current holdings against the target
	// allocation and returns a rebalancing roadmap. It never fails for
	// data-quality reasons: unknown funds and malformed holdings degrade
	// to placeholders.
	AnalyzePortfolio(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error)
}

// FundReference is the injected capability for fund metadata lookups.
// Implementations own their cache-refresh policy; lookups never block on
// upstream failures once any catalog (cached, snapshot, or fallback) exists.
type FundReference interface {
	// GetFund returns the snapshot for a scheme code, or models.ErrFundNotFound.
	GetFund(ctx context.Context, schemeCode int) (*models.Fund, error)

	// AllFunds returns every fund in the catalog, refreshing it first if stale.
	AllFunds(ctx context.Context) ([]*models.Fund, error)

	// Refresh re-fetches the catalog from the registry. When force is false,
	// a fresh catalog short-circuits the fetch.
	Refresh(ctx context.Context, force bool) error

	// CacheExpiry reports when the current catalog goes stale.
	CacheExpiry() time.Time
}
