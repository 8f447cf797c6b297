package analysis

import (
	"context"
	"time"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/interfaces"
	"github.com/rupeeworks/folio/internal/models"
)

// Service analyzes a portfolio against a target allocation and produces
// a tax-aware rebalancing roadmap. It is stateless across requests; the
// only collaborator is the fund reference.
type Service struct {
	funds  interfaces.FundReference
	logger *common.Logger
	now    func() time.Time
}

// NewService creates an analysis service.
func NewService(funds interfaces.FundReference, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		funds:  funds,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to pin
// holding-period boundaries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// today returns the service clock truncated to a UTC calendar date.
// Holding periods are calendar-day differences, not elapsed hours.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// AnalyzePortfolio runs the full pipeline: enrich holdings, compute the
// current allocation and its gaps against the target, derive weighted
// metrics, generate rebalancing actions, and summarize.
func (s *Service) AnalyzePortfolio(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	enriched, totalValue, err := s.enrichHoldings(ctx, req.Holdings)
	if err != nil {
		return nil, err
	}

	current := currentAllocation(enriched, totalValue)
	gaps := allocationGaps(current, req.TargetAllocation)
	metrics := calculateMetrics(enriched, totalValue)

	actions, err := s.generateActions(ctx, enriched, gaps, req.TargetAllocation, totalValue)
	if err != nil {
		return nil, err
	}

	summary := generateSummary(current, req.TargetAllocation, gaps, actions)

	s.logger.Debug().
		Int("holdings", len(enriched)).
		Float64("total_value", totalValue).
		Int("actions", len(actions)).
		Float64("alignment_score", summary.AlignmentScore).
		Msg("Portfolio analysis complete")

	return &models.AnalysisResponse{
		RequestID:          req.RequestID,
		CurrentAllocation:  current,
		TargetAllocation:   req.TargetAllocation,
		AllocationGaps:     gaps,
		CurrentMetrics:     metrics,
		Holdings:           enriched,
		RebalancingActions: actions,
		Summary:            summary,
		ModelVersion:       ModelVersion,
	}, nil
}
