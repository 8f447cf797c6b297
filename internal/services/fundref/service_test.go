package fundref

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/models"
	"github.com/rupeeworks/folio/internal/storage"
)

// fakeRegistry is a scripted FundRegistryClient.
type fakeRegistry struct {
	funds   []*models.Fund
	err     error
	fetches int
}

func (c *fakeRegistry) FetchFunds(_ context.Context) ([]*models.Fund, error) {
	c.fetches++
	if c.err != nil {
		return nil, c.err
	}
	return c.funds, nil
}

func catalogFunds() []*models.Fund {
	return []*models.Fund{
		{SchemeCode: 1001, SchemeName: "Test Flexi Cap", Category: "Flexi Cap", NAV: 42.5},
		{SchemeCode: 1002, SchemeName: "Test Gilt", Category: "Gilt", NAV: 18.2},
	}
}

func TestGetFund(t *testing.T) {
	client := &fakeRegistry{funds: catalogFunds()}
	svc := NewService(client, nil, time.Minute, common.NewSilentLogger())

	fund, err := svc.GetFund(context.Background(), 1001)
	if err != nil {
		t.Fatalf("GetFund: %v", err)
	}
	if fund.SchemeName != "Test Flexi Cap" {
		t.Errorf("scheme name = %q", fund.SchemeName)
	}

	_, err = svc.GetFund(context.Background(), 9999)
	if !errors.Is(err, models.ErrFundNotFound) {
		t.Errorf("unknown code error = %v, want ErrFundNotFound", err)
	}
}

func TestCacheServesWithoutRefetch(t *testing.T) {
	client := &fakeRegistry{funds: catalogFunds()}
	svc := NewService(client, nil, time.Hour, common.NewSilentLogger())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.AllFunds(ctx); err != nil {
			t.Fatalf("AllFunds: %v", err)
		}
	}
	if client.fetches != 1 {
		t.Errorf("fetches = %d, want 1 while cache is fresh", client.fetches)
	}

	expiry := svc.CacheExpiry()
	if expiry.IsZero() || time.Until(expiry) > time.Hour {
		t.Errorf("cache expiry = %v", expiry)
	}
}

func TestStaleServeOnRefreshFailure(t *testing.T) {
	client := &fakeRegistry{funds: catalogFunds()}
	svc := NewService(client, nil, time.Hour, common.NewSilentLogger())

	ctx := context.Background()
	if _, err := svc.AllFunds(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	// Upstream goes down; an expired cache keeps serving.
	client.err = errors.New("registry unreachable")
	svc.mu.Lock()
	svc.fetchedAt = time.Now().Add(-2 * time.Hour)
	svc.mu.Unlock()

	funds, err := svc.AllFunds(ctx)
	if err != nil {
		t.Fatalf("stale serve: %v", err)
	}
	if len(funds) != 2 {
		t.Errorf("got %d funds from stale cache, want 2", len(funds))
	}
}

func TestStaticFallbackWhenNothingCached(t *testing.T) {
	client := &fakeRegistry{err: errors.New("registry unreachable")}
	svc := NewService(client, nil, time.Minute, common.NewSilentLogger())

	funds, err := svc.AllFunds(context.Background())
	if err != nil {
		t.Fatalf("AllFunds: %v", err)
	}
	if len(funds) != 5 {
		t.Errorf("got %d fallback funds, want 5", len(funds))
	}
	for _, f := range funds {
		if f.NAV != 100.0 {
			t.Errorf("fallback nav = %v, want placeholder 100.0", f.NAV)
		}
	}

	// Fallback data carries the shorter freshness window.
	if time.Until(svc.CacheExpiry()) > common.FreshnessFallback {
		t.Errorf("fallback expiry too far out: %v", svc.CacheExpiry())
	}
}

func TestSnapshotFallback(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewCatalogStore(filepath.Join(dir, "catalog"), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}

	// A healthy service persists its catalog.
	healthy := NewService(&fakeRegistry{funds: catalogFunds()}, store, time.Minute, common.NewSilentLogger())
	if err := healthy.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	// A fresh process with a dead registry recovers from the snapshot.
	cold := NewService(&fakeRegistry{err: errors.New("down")}, store, time.Minute, common.NewSilentLogger())
	fund, err := cold.GetFund(context.Background(), 1002)
	if err != nil {
		t.Fatalf("GetFund from snapshot: %v", err)
	}
	if fund.SchemeName != "Test Gilt" {
		t.Errorf("scheme name = %q", fund.SchemeName)
	}
}

func TestForceRefreshReportsError(t *testing.T) {
	client := &fakeRegistry{err: errors.New("registry unreachable")}
	svc := NewService(client, nil, time.Minute, common.NewSilentLogger())

	if err := svc.Refresh(context.Background(), true); err == nil {
		t.Error("forced refresh error = nil, want failure surfaced")
	}
	// Non-forced refresh swallows the failure and leaves fallback data.
	if err := svc.Refresh(context.Background(), false); err != nil {
		t.Errorf("background refresh error = %v, want nil", err)
	}
}
