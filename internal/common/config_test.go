package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8086 {
		t.Errorf("default port = %d, want 8086", cfg.Server.Port)
	}
	if cfg.Registry.BaseURL != "http://localhost:3501" {
		t.Errorf("default registry url = %q", cfg.Registry.BaseURL)
	}
	if cfg.Registry.GetTimeout() != 60*time.Second {
		t.Errorf("default timeout = %v", cfg.Registry.GetTimeout())
	}
	if cfg.Catalog.GetRefresh() != 30*time.Minute {
		t.Errorf("default refresh = %v", cfg.Catalog.GetRefresh())
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.toml")
	content := `
environment = "production"

[server]
port = 9090

[registry]
base_url = "http://registry.internal:3501"

[catalog]
refresh = "15m"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Registry.BaseURL != "http://registry.internal:3501" {
		t.Errorf("registry url = %q", cfg.Registry.BaseURL)
	}
	if cfg.Catalog.GetRefresh() != 15*time.Minute {
		t.Errorf("refresh = %v", cfg.Catalog.GetRefresh())
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction = false for environment=production")
	}
	// Unspecified keys keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8086 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_PORT", "7777")
	t.Setenv("FOLIO_REGISTRY_URL", "http://override:3501")
	t.Setenv("BACKEND_URL", "http://legacy:3501")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.Server.Port)
	}
	// FOLIO_REGISTRY_URL wins over the legacy name.
	if cfg.Registry.BaseURL != "http://override:3501" {
		t.Errorf("registry url = %q", cfg.Registry.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLegacyBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://legacy:3501")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Registry.BaseURL != "http://legacy:3501" {
		t.Errorf("registry url = %q, want legacy override", cfg.Registry.BaseURL)
	}
}

func TestIsFresh(t *testing.T) {
	if IsFresh(time.Time{}, time.Hour) {
		t.Error("zero time must never be fresh")
	}
	if !IsFresh(time.Now().Add(-time.Minute), time.Hour) {
		t.Error("one minute old data inside a one hour TTL should be fresh")
	}
	if IsFresh(time.Now().Add(-2*time.Hour), time.Hour) {
		t.Error("expired data reported fresh")
	}
}
