package agentconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Platform.BatchSize != 1000 {
		t.Errorf("BatchSize = %d, want 1000", cfg.Platform.BatchSize)
	}
	if cfg.Platform.RetryLimit != 3 {
		t.Errorf("RetryLimit = %d, want 3", cfg.Platform.RetryLimit)
	}
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load() with missing file should not error, got %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"platform":{"batch_size":50,"host":"ingest.example.com"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Platform.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.Platform.BatchSize)
	}
	if cfg.Platform.Host != "ingest.example.com" {
		t.Errorf("Host = %q, want ingest.example.com", cfg.Platform.Host)
	}
	// unspecified fields keep their defaults
	if cfg.Platform.RetryLimit != 3 {
		t.Errorf("RetryLimit = %d, want 3 (default)", cfg.Platform.RetryLimit)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"platform":{"batch_size":50}}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TG_PLATFORM_BATCH_SIZE", "777")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Platform.BatchSize != 777 {
		t.Errorf("BatchSize = %d, want 777 (env override)", cfg.Platform.BatchSize)
	}
}

func TestLoadMalformedFileIsConfigError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with malformed JSON should error")
	}
}

func TestValidateRejectsOutOfRangeBatchSize(t *testing.T) {
	cfg := Defaults()
	cfg.Platform.BatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject batch_size=0")
	}

	cfg.Platform.BatchSize = 20000
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject batch_size=20000")
	}
}
