package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rupeeworks/folio/internal/models"
)

// enrichHoldings joins each holding with fund reference data and values
// it. Lookups fan out concurrently; results land at their input index so
// the output order matches the caller's order. A holding whose fund is
// unknown degrades to a placeholder rather than failing the request.
func (s *Service) enrichHoldings(ctx context.Context, holdings []models.HoldingInput) ([]*models.EnrichedHolding, float64, error) {
	enriched := make([]*models.EnrichedHolding, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i := range holdings {
		i := i
		g.Go(func() error {
			h := &holdings[i]

			fund, err := s.funds.GetFund(gctx, h.SchemeCode)
			if err != nil {
				if !errors.Is(err, models.ErrFundNotFound) {
					s.logger.Warn().Err(err).Int("scheme_code", h.SchemeCode).Msg("Fund lookup failed")
				}
				enriched[i] = s.degradedHolding(h)
				return nil
			}

			enriched[i] = s.enrichHolding(h, fund)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var totalValue float64
	for _, h := range enriched {
		totalValue += h.CurrentValue
	}
	if totalValue > 0 {
		for _, h := range enriched {
			h.Weight = h.CurrentValue / totalValue
		}
	}

	return enriched, totalValue, nil
}

func (s *Service) enrichHolding(h *models.HoldingInput, fund *models.Fund) *models.EnrichedHolding {
	var currentValue float64
	var units *float64

	switch {
	case h.Amount != nil:
		currentValue = *h.Amount
		if fund.NAV > 0 {
			u := *h.Amount / fund.NAV
			units = &u
		}
	case h.Units != nil && fund.NAV > 0:
		currentValue = *h.Units * fund.NAV
		units = h.Units
	}

	var holdingPeriodDays *int
	var taxStatus models.TaxStatus
	if h.PurchaseDate != "" {
		if purchased, err := time.Parse("2006-01-02", h.PurchaseDate); err == nil {
			days := int(s.today().Sub(purchased).Hours() / 24)
			holdingPeriodDays = &days
			if days > ltcgThresholdDays {
				taxStatus = models.TaxStatusLTCG
			} else {
				taxStatus = models.TaxStatusSTCG
			}
		} else {
			s.logger.Warn().
				Int("scheme_code", h.SchemeCode).
				Str("purchase_date", h.PurchaseDate).
				Msg("Unparseable purchase date, skipping tax status")
		}
	}

	var unrealizedGain *float64
	if h.PurchaseAmount != nil && currentValue > 0 {
		gain := currentValue - *h.PurchaseAmount
		unrealizedGain = &gain
	}

	nav := fund.NAV
	return &models.EnrichedHolding{
		SchemeCode:        h.SchemeCode,
		SchemeName:        fund.SchemeName,
		Category:          fund.Category,
		AssetClass:        fund.ResolvedAssetClass(),
		CurrentValue:      currentValue,
		Units:             units,
		NAV:               &nav,
		Return1Y:          fund.Return1Y,
		Return3Y:          fund.Return3Y,
		Volatility:        fund.Volatility,
		SharpeRatio:       fund.SharpeRatio,
		HoldingPeriodDays: holdingPeriodDays,
		TaxStatus:         taxStatus,
		PurchaseAmount:    h.PurchaseAmount,
		UnrealizedGain:    unrealizedGain,
	}
}

// degradedHolding values an unknown fund from caller-supplied data only.
// It carries no NAV, metrics, or tax fields, so it contributes to value
// and allocation but nothing else.
func (s *Service) degradedHolding(h *models.HoldingInput) *models.EnrichedHolding {
	var currentValue float64
	if h.Amount != nil {
		currentValue = *h.Amount
	}

	name := h.SchemeName
	if name == "" {
		name = fmt.Sprintf("Unknown Fund (%d)", h.SchemeCode)
	}

	return &models.EnrichedHolding{
		SchemeCode:   h.SchemeCode,
		SchemeName:   name,
		Category:     "Unknown",
		AssetClass:   models.AssetClassEquity,
		CurrentValue: currentValue,
	}
}
