// Package storage provides file-based persistence for the fund catalog
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/models"
)

const snapshotFile = "catalog.json"

// CatalogStore persists fund catalog snapshots to disk so the service
// can start with real data when the registry is unreachable.
type CatalogStore struct {
	basePath string
	logger   *common.Logger
}

// NewCatalogStore creates a catalog store rooted at basePath
func NewCatalogStore(basePath string, logger *common.Logger) (*CatalogStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &CatalogStore{
		basePath: basePath,
		logger:   logger,
	}, nil
}

type catalogSnapshot struct {
	SavedAt time.Time      `json:"saved_at"`
	Funds   []*models.Fund `json:"funds"`
}

// Save writes the catalog atomically via a temp file rename
func (s *CatalogStore) Save(funds []*models.Fund) error {
	snapshot := catalogSnapshot{
		SavedAt: time.Now(),
		Funds:   funds,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	target := filepath.Join(s.basePath, snapshotFile)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace catalog snapshot: %w", err)
	}

	s.logger.Debug().Int("funds", len(funds)).Str("path", target).Msg("Catalog snapshot saved")
	return nil
}

// Load reads the last saved catalog snapshot. Returns the funds and the
// time they were saved; os.ErrNotExist when no snapshot has been written.
func (s *CatalogStore) Load() ([]*models.Fund, time.Time, error) {
	target := filepath.Join(s.basePath, snapshotFile)

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, time.Time{}, err
	}

	var snapshot catalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	return snapshot.Funds, snapshot.SavedAt, nil
}
