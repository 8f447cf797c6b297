// Package app wires configuration, clients, and services into a
// running application.
package app

import (
	"context"
	"time"

	"github.com/rupeeworks/folio/internal/clients/registry"
	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/interfaces"
	"github.com/rupeeworks/folio/internal/services/analysis"
	"github.com/rupeeworks/folio/internal/services/fundref"
	"github.com/rupeeworks/folio/internal/storage"
)

// App holds the wired application components.
type App struct {
	Config *common.Config
	Logger *common.Logger

	FundRef  interfaces.FundReference
	Analysis interfaces.AnalysisService

	cancel context.CancelFunc
	done   chan struct{}
}

// NewApp creates the application from configuration.
func NewApp(cfg *common.Config, logger *common.Logger) (*App, error) {
	client := registry.NewClient(
		registry.WithBaseURL(cfg.Registry.BaseURL),
		registry.WithLogger(logger),
		registry.WithRateLimit(cfg.Registry.RateLimit),
		registry.WithTimeout(cfg.Registry.GetTimeout()),
	)

	store, err := storage.NewCatalogStore(cfg.Catalog.Path, logger)
	if err != nil {
		return nil, err
	}

	funds := fundref.NewService(client, store, cfg.Catalog.GetRefresh(), logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		FundRef:  funds,
		Analysis: analysis.NewService(funds, logger),
		done:     make(chan struct{}),
	}, nil
}

// Start warms the fund catalog and keeps it fresh in the background.
// Warmup failures are non-fatal; the catalog falls back to the last
// snapshot or the static fund list.
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go func() {
		defer close(a.done)

		warmCtx, warmCancel := context.WithTimeout(ctx, a.Config.Registry.GetTimeout())
		if err := a.FundRef.Refresh(warmCtx, false); err != nil {
			a.Logger.Warn().Err(err).Msg("Fund catalog warmup failed")
		}
		warmCancel()

		interval := a.Config.Catalog.GetRefresh()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshCtx, refreshCancel := context.WithTimeout(ctx, a.Config.Registry.GetTimeout())
				if err := a.FundRef.Refresh(refreshCtx, false); err != nil {
					a.Logger.Warn().Err(err).Msg("Fund catalog refresh failed")
				}
				refreshCancel()
			}
		}
	}()
}

// Close stops background refresh and waits for it to finish.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
		<-a.done
	}
}
