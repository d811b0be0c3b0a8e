package discovery

import "time"

// deriveAdaptiveConfig implements tg_discovery_generate_config's rules:
// memory and CPU thresholds set baseline tuning, active tool count trims
// CPU further and slows collection, and detected compliance frameworks
// force encryption with framework-specific retention.
func deriveAdaptiveConfig(result DiscoveryResult) AdaptiveConfig {
	cfg := AdaptiveConfig{
		MaxMemoryMB:        64,
		BatchSize:          1000,
		MaxCPUPercent:      5,
		CollectionInterval: 300 * time.Second,
	}

	mem := result.System.TotalMemoryMB
	switch {
	case mem < 2048:
		cfg.MaxMemoryMB = 32
		cfg.BatchSize = 50
	case mem > 8192:
		cfg.MaxMemoryMB = 128
		cfg.BatchSize = 500
	}

	cores := result.System.CPUCores
	switch {
	case cores > 8:
		cfg.MaxCPUPercent = 10
	case cores < 4:
		cfg.MaxCPUPercent = 2
	}

	active := 0
	for _, t := range result.SecurityTools {
		if t.Active {
			active++
		}
	}
	if active >= 3 {
		cfg.MaxCPUPercent--
		cfg.CollectionInterval = 120 * time.Second
	}

	mask := result.Organization.Compliance
	if mask&CompliancePCIDSS != 0 {
		cfg.EnableEncryption = true
		cfg.RetentionDays = 365
		cfg.CollectionInterval = 30 * time.Second
	}
	if mask&ComplianceHIPAA != 0 {
		cfg.EnableEncryption = true
		if cfg.RetentionDays < 2190 {
			cfg.RetentionDays = 2190
		}
	}
	if mask&ComplianceSOX != 0 {
		cfg.EnableEncryption = true
		if cfg.RetentionDays < 2555 {
			cfg.RetentionDays = 2555
		}
	}

	return cfg
}
