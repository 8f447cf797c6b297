package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/models"
)

func TestCatalogSaveLoad(t *testing.T) {
	store, err := NewCatalogStore(filepath.Join(t.TempDir(), "catalog"), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}

	ret := 18.5
	funds := []*models.Fund{
		{SchemeCode: 1, SchemeName: "Alpha", Category: "Flexi Cap", NAV: 101.5, Return3Y: &ret},
		{SchemeCode: 2, SchemeName: "Beta", Category: "Gilt", NAV: 17.2},
	}

	before := time.Now()
	if err := store.Save(funds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, savedAt, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d funds, want 2", len(loaded))
	}
	if loaded[0].SchemeName != "Alpha" || loaded[0].NAV != 101.5 {
		t.Errorf("loaded[0] = %+v", loaded[0])
	}
	if loaded[0].Return3Y == nil || *loaded[0].Return3Y != 18.5 {
		t.Errorf("loaded[0].Return3Y = %v", loaded[0].Return3Y)
	}
	if savedAt.Before(before.Add(-time.Second)) || savedAt.After(time.Now().Add(time.Second)) {
		t.Errorf("saved_at = %v", savedAt)
	}
}

func TestCatalogSaveReplacesPrevious(t *testing.T) {
	store, err := NewCatalogStore(t.TempDir(), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}

	if err := store.Save([]*models.Fund{{SchemeCode: 1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save([]*models.Fund{{SchemeCode: 2}, {SchemeCode: 3}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].SchemeCode != 2 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestCatalogLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCatalogStore(dir, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "catalog.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Load(); err == nil {
		t.Error("Load of corrupt snapshot returned nil error")
	}
}

func TestCatalogLoadMissing(t *testing.T) {
	store, err := NewCatalogStore(t.TempDir(), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}

	_, _, err = store.Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}
