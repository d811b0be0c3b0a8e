// Package agentconfig loads ThreatGuard agent configuration from a JSON
// file and TG_-prefixed environment variables, following the teacher
// agent's "file then override" pattern (config.Load in the original),
// generalized to the five keyed sections spec.md §6 defines.
package agentconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bgthreatai/threatguard-agent/internal/agenterr"
)

// Platform holds egress transport settings.
type Platform struct {
	Host             string `json:"host"`
	Port             int    `json:"port"`
	URI              string `json:"uri"`
	APIKey           string `json:"api_key"`
	BatchSize        int    `json:"batch_size"`
	BatchMaxWaitSecs int    `json:"batch_max_wait_seconds"`
	Timeout          int    `json:"timeout"` // seconds, HTTP client timeout
	RetryLimit       int    `json:"retry_limit"`
	Compress         bool   `json:"compress"`
	TLSVerify        bool   `json:"tls_verify"`
}

// Discovery holds Discovery Engine settings.
type Discovery struct {
	Enabled            bool   `json:"enabled"`
	IntervalSeconds    int    `json:"interval_seconds"`
	DetectOrganization bool   `json:"detect_organization"`
	DetectCompliance   bool   `json:"detect_compliance"`
	IncludeNetworkInfo bool   `json:"include_network_info"`
	ConfigPath         string `json:"config_path"`
}

// Security holds Filter Engine settings.
type Security struct {
	Enabled                  bool   `json:"enabled"`
	RulesFile                string `json:"rules_file"`
	EnableThreatIntel        bool   `json:"enable_threat_intel"`
	EnableBehavioralAnalysis bool   `json:"enable_behavioral_analysis"`
	DropNoise                bool   `json:"drop_noise"`
	MaxRules                 int    `json:"max_rules"`
}

// Logging holds log output settings.
type Logging struct {
	Level         string `json:"level"`
	FilePath      string `json:"file_path"`
	ConsoleOutput bool   `json:"console_output"`
	MaxFileSize   int    `json:"max_file_size"` // MB
	MaxFiles      int    `json:"max_files"`
}

// Performance holds resource budget settings.
type Performance struct {
	MaxMemoryMB     int  `json:"max_memory_mb"`
	MaxCPUPercent   int  `json:"max_cpu_percent"`
	EnableProfiling bool `json:"enable_profiling"`
}

// Config is the complete agent configuration.
type Config struct {
	Platform    Platform    `json:"platform"`
	Discovery   Discovery   `json:"discovery"`
	Security    Security    `json:"security"`
	Logging     Logging     `json:"logging"`
	Performance Performance `json:"performance"`
}

// EnvPrefix is the fixed prefix for environment variable overrides.
const EnvPrefix = "TG_"

// Defaults returns the built-in default configuration.
func Defaults() Config {
	return Config{
		Platform: Platform{
			URI:              "/v1/events",
			Port:             443,
			BatchSize:        1000,
			BatchMaxWaitSecs: 30,
			Timeout:          30,
			RetryLimit:       3,
			Compress:         true,
			TLSVerify:        true,
		},
		Discovery: Discovery{
			Enabled:            true,
			IntervalSeconds:    300,
			DetectOrganization: true,
			DetectCompliance:   true,
			IncludeNetworkInfo: true,
		},
		Security: Security{
			Enabled:                  true,
			EnableThreatIntel:        true,
			EnableBehavioralAnalysis: true,
			DropNoise:                true,
			MaxRules:                 10000,
		},
		Logging: Logging{
			Level:         "info",
			ConsoleOutput: true,
			MaxFileSize:   100,
			MaxFiles:      5,
		},
		Performance: Performance{
			MaxMemoryMB:   64,
			MaxCPUPercent: 5,
		},
	}
}

// Load builds a Config starting from Defaults, applying a JSON file
// (if path is non-empty and readable) and then TG_-prefixed
// environment variable overrides. File absence is not an error; a
// malformed file is a Config error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
				return cfg, agenterr.New(agenterr.Config, "parse_config_file", jsonErr)
			}
		} else if !os.IsNotExist(err) {
			return cfg, agenterr.New(agenterr.Config, "read_config_file", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, agenterr.New(agenterr.Config, "validate", err)
	}

	return cfg, nil
}

// Validate rejects out-of-range values per spec.md §4.3/§6.
func (c Config) Validate() error {
	if c.Platform.BatchSize < 1 || c.Platform.BatchSize > 10000 {
		return fmt.Errorf("platform.batch_size must be in [1,10000], got %d", c.Platform.BatchSize)
	}
	if c.Platform.RetryLimit < 0 {
		return fmt.Errorf("platform.retry_limit must be >= 0, got %d", c.Platform.RetryLimit)
	}
	if c.Platform.Timeout <= 0 {
		return fmt.Errorf("platform.timeout must be > 0, got %d", c.Platform.Timeout)
	}
	return nil
}

func applyEnv(c *Config) {
	// Platform
	envStr(&c.Platform.Host, "PLATFORM_HOST")
	envInt(&c.Platform.Port, "PLATFORM_PORT")
	envStr(&c.Platform.URI, "PLATFORM_URI")
	envStr(&c.Platform.APIKey, "PLATFORM_API_KEY")
	envInt(&c.Platform.BatchSize, "PLATFORM_BATCH_SIZE")
	envInt(&c.Platform.BatchMaxWaitSecs, "PLATFORM_BATCH_MAX_WAIT_SECONDS")
	envInt(&c.Platform.Timeout, "PLATFORM_TIMEOUT")
	envInt(&c.Platform.RetryLimit, "PLATFORM_RETRY_LIMIT")
	envBool(&c.Platform.Compress, "PLATFORM_COMPRESS")
	envBool(&c.Platform.TLSVerify, "PLATFORM_TLS_VERIFY")

	// Discovery
	envBool(&c.Discovery.Enabled, "DISCOVERY_ENABLED")
	envInt(&c.Discovery.IntervalSeconds, "DISCOVERY_INTERVAL_SECONDS")
	envBool(&c.Discovery.DetectOrganization, "DISCOVERY_DETECT_ORGANIZATION")
	envBool(&c.Discovery.DetectCompliance, "DISCOVERY_DETECT_COMPLIANCE")
	envBool(&c.Discovery.IncludeNetworkInfo, "DISCOVERY_INCLUDE_NETWORK_INFO")
	envStr(&c.Discovery.ConfigPath, "DISCOVERY_CONFIG_PATH")

	// Security
	envBool(&c.Security.Enabled, "SECURITY_ENABLED")
	envStr(&c.Security.RulesFile, "SECURITY_RULES_FILE")
	envBool(&c.Security.EnableThreatIntel, "SECURITY_ENABLE_THREAT_INTEL")
	envBool(&c.Security.EnableBehavioralAnalysis, "SECURITY_ENABLE_BEHAVIORAL_ANALYSIS")
	envBool(&c.Security.DropNoise, "SECURITY_DROP_NOISE")
	envInt(&c.Security.MaxRules, "SECURITY_MAX_RULES")

	// Logging
	envStr(&c.Logging.Level, "LOGGING_LEVEL")
	envStr(&c.Logging.FilePath, "LOGGING_FILE_PATH")
	envBool(&c.Logging.ConsoleOutput, "LOGGING_CONSOLE_OUTPUT")
	envInt(&c.Logging.MaxFileSize, "LOGGING_MAX_FILE_SIZE")
	envInt(&c.Logging.MaxFiles, "LOGGING_MAX_FILES")

	// Performance
	envInt(&c.Performance.MaxMemoryMB, "PERFORMANCE_MAX_MEMORY_MB")
	envInt(&c.Performance.MaxCPUPercent, "PERFORMANCE_MAX_CPU_PERCENT")
	envBool(&c.Performance.EnableProfiling, "PERFORMANCE_ENABLE_PROFILING")
}

func envStr(dst *string, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func envBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = b
		}
	}
}
