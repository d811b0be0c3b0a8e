package discovery

import "testing"

func TestDeriveAdaptiveConfigLowMemory(t *testing.T) {
	cfg := deriveAdaptiveConfig(DiscoveryResult{System: SystemInfo{TotalMemoryMB: 1024, CPUCores: 4}})
	if cfg.MaxMemoryMB != 32 || cfg.BatchSize != 50 {
		t.Errorf("got %+v, want MaxMemoryMB=32 BatchSize=50", cfg)
	}
}

func TestDeriveAdaptiveConfigHighMemory(t *testing.T) {
	cfg := deriveAdaptiveConfig(DiscoveryResult{System: SystemInfo{TotalMemoryMB: 16384, CPUCores: 4}})
	if cfg.MaxMemoryMB != 128 || cfg.BatchSize != 500 {
		t.Errorf("got %+v, want MaxMemoryMB=128 BatchSize=500", cfg)
	}
}

func TestDeriveAdaptiveConfigManyToolsReducesCPUAndSlowsCollection(t *testing.T) {
	cfg := deriveAdaptiveConfig(DiscoveryResult{
		System:        SystemInfo{TotalMemoryMB: 4096, CPUCores: 4},
		SecurityTools: []SecurityTool{{Name: "a", Active: true}, {Name: "b", Active: true}, {Name: "c", Active: true}},
	})
	if cfg.MaxCPUPercent != 4 {
		t.Errorf("MaxCPUPercent = %d, want 4 (5 baseline - 1)", cfg.MaxCPUPercent)
	}
	if cfg.CollectionInterval.Seconds() != 120 {
		t.Errorf("CollectionInterval = %v, want 120s", cfg.CollectionInterval)
	}
}

func TestDeriveAdaptiveConfigPCIAdaptation(t *testing.T) {
	cfg := deriveAdaptiveConfig(DiscoveryResult{
		System:       SystemInfo{TotalMemoryMB: 4096, CPUCores: 4},
		Organization: Organization{Compliance: CompliancePCIDSS},
	})
	if !cfg.EnableEncryption || cfg.RetentionDays != 365 || cfg.CollectionInterval.Seconds() != 30 {
		t.Errorf("got %+v, want encryption=true retention=365 interval=30s", cfg)
	}
}

func TestDeriveAdaptiveConfigHIPAARetentionWins(t *testing.T) {
	cfg := deriveAdaptiveConfig(DiscoveryResult{
		System:       SystemInfo{TotalMemoryMB: 4096, CPUCores: 4},
		Organization: Organization{Compliance: ComplianceHIPAA},
	})
	if !cfg.EnableEncryption || cfg.RetentionDays != 2190 {
		t.Errorf("got %+v, want encryption=true retention=2190", cfg)
	}
}

func TestOverallConfidenceFormula(t *testing.T) {
	if got := overallConfidence(85, 2); got != 82 {
		t.Errorf("overallConfidence(85,2) = %d, want 82", got)
	}
	if got := overallConfidence(0, 0); got != 25 {
		t.Errorf("overallConfidence(0,0) = %d, want 25", got)
	}
}
