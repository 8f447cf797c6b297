// Package fundref maintains the in-memory fund catalog used for
// portfolio analysis, refreshed from the fund registry.
package fundref

import (
	"context"
	"sync"
	"time"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/interfaces"
	"github.com/rupeeworks/folio/internal/models"
	"github.com/rupeeworks/folio/internal/storage"
)

// Service caches the fund catalog with TTL-based refresh. A failed
// refresh serves the previous catalog rather than failing the caller;
// on a cold start it falls back to the last disk snapshot, then to a
// small static catalog.
type Service struct {
	client  interfaces.FundRegistryClient
	store   *storage.CatalogStore
	logger  *common.Logger
	refresh time.Duration

	mu         sync.RWMutex
	refreshing bool
	byCode     map[int]*models.Fund
	funds      []*models.Fund
	fetchedAt  time.Time
	expiry     time.Duration
}

// NewService creates a fund reference service. store may be nil to
// disable snapshot persistence.
func NewService(client interfaces.FundRegistryClient, store *storage.CatalogStore, refresh time.Duration, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if refresh <= 0 {
		refresh = common.FreshnessFundCatalog
	}
	return &Service{
		client:  client,
		store:   store,
		logger:  logger,
		refresh: refresh,
	}
}

// GetFund returns the fund for a scheme code, or models.ErrFundNotFound.
func (s *Service) GetFund(ctx context.Context, schemeCode int) (*models.Fund, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	fund, ok := s.byCode[schemeCode]
	s.mu.RUnlock()

	if !ok {
		return nil, models.ErrFundNotFound
	}
	return fund, nil
}

// AllFunds returns the full catalog.
func (s *Service) AllFunds(ctx context.Context) ([]*models.Fund, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Fund, len(s.funds))
	copy(out, s.funds)
	return out, nil
}

// CacheExpiry reports when the current catalog goes stale.
func (s *Service) CacheExpiry() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fetchedAt.IsZero() {
		return time.Time{}
	}
	return s.fetchedAt.Add(s.expiry)
}

// Refresh fetches a fresh catalog from the registry. When force is
// false and the cache is still fresh it is a no-op. A fetch failure is
// only reported when forced; otherwise the stale catalog keeps serving.
func (s *Service) Refresh(ctx context.Context, force bool) error {
	s.mu.Lock()
	if !force && s.freshLocked() {
		s.mu.Unlock()
		return nil
	}
	if s.refreshing {
		s.mu.Unlock()
		return nil
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	funds, err := s.client.FetchFunds(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Fund registry fetch failed")
		s.recover(err)
		if force {
			return err
		}
		return nil
	}

	s.install(funds, time.Now(), s.refresh)

	if s.store != nil {
		if err := s.store.Save(funds); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to persist catalog snapshot")
		}
	}

	s.logger.Info().Int("funds", len(funds)).Msg("Fund catalog refreshed")
	return nil
}

// ensure guarantees some catalog is loaded, refreshing when stale.
func (s *Service) ensure(ctx context.Context) error {
	s.mu.RLock()
	fresh := s.freshLocked()
	s.mu.RUnlock()

	if fresh {
		return nil
	}
	return s.Refresh(ctx, false)
}

func (s *Service) freshLocked() bool {
	return s.byCode != nil && common.IsFresh(s.fetchedAt, s.expiry)
}

// recover fills the cache from the disk snapshot or the static fallback
// when a fetch fails and nothing is cached yet. An already populated
// cache is left in place for stale serving.
func (s *Service) recover(cause error) {
	s.mu.RLock()
	populated := s.byCode != nil
	s.mu.RUnlock()
	if populated {
		return
	}

	if s.store != nil {
		if funds, savedAt, err := s.store.Load(); err == nil && len(funds) > 0 {
			s.install(funds, savedAt, common.FreshnessFundCatalog)
			s.logger.Info().
				Int("funds", len(funds)).
				Time("saved_at", savedAt).
				Msg("Serving fund catalog from disk snapshot")
			return
		}
	}

	funds := fallbackFunds()
	s.install(funds, time.Now(), common.FreshnessFallback)
	s.logger.Warn().Err(cause).Int("funds", len(funds)).Msg("Serving static fallback fund catalog")
}

func (s *Service) install(funds []*models.Fund, fetchedAt time.Time, expiry time.Duration) {
	byCode := make(map[int]*models.Fund, len(funds))
	for _, f := range funds {
		byCode[f.SchemeCode] = f
	}

	s.mu.Lock()
	s.byCode = byCode
	s.funds = funds
	s.fetchedAt = fetchedAt
	s.expiry = expiry
	s.mu.Unlock()
}
