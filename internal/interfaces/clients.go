package interfaces

import (
	"context"

	"github.com/rupeeworks/folio/internal/models"
)

// FundRegistryClient fetches the fund universe from the upstream registry.
type FundRegistryClient interface {
	// FetchFunds retrieves the full fund catalog.
	FetchFunds(ctx context.Context) ([]*models.Fund, error)
}
