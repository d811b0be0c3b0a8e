// Package discovery implements the host/organization/compliance probe
// that seeds adaptive configuration for the rest of the agent. The
// Platform capability trait is satisfied by one build-tagged
// implementation per OS, mirroring the teacher's service_windows.go /
// service_other.go split.
package discovery

import (
	"time"

	"github.com/bgthreatai/threatguard-agent/internal/hostprobe"
)

// NetworkInterface is one network adapter observed on the host.
type NetworkInterface struct {
	Name     string
	Address  string
	Up       bool
	Running  bool
	Wired    bool
	Wireless bool
}

// SystemInfo is the immutable snapshot built once per discovery cycle.
type SystemInfo struct {
	Hostname      string
	PlatformName  string // "windows", "linux", "darwin"
	OSVersion     string
	Architecture  string
	CPUCores      int
	TotalMemoryMB uint64
	FreeDiskMB    uint64
	BootTime      time.Time
	Interfaces    []NetworkInterface
}

// SecurityToolType is a bitset of the categories a detected tool can belong to.
type SecurityToolType uint32

const (
	ToolAntivirus SecurityToolType = 1 << iota
	ToolFirewall
	ToolEncryption
	ToolEDR
	ToolIntrusionDetection
)

// SecurityTool is one detected endpoint security product.
type SecurityTool struct {
	Name       string
	Vendor     string
	Version    string
	Type       SecurityToolType
	Active     bool
	ConfigPath string
	LogPath    string
}

// DetectionMethod names how an Organization was identified.
type DetectionMethod string

const (
	MethodDomain      DetectionMethod = "domain"
	MethodCertificate DetectionMethod = "certificate"
	MethodDNS         DetectionMethod = "dns"
	MethodCloud       DetectionMethod = "cloud"
	MethodNone        DetectionMethod = "none"
)

// ComplianceMask is a bitset of inferred regulatory frameworks.
type ComplianceMask uint32

const (
	CompliancePCIDSS ComplianceMask = 1 << iota
	ComplianceHIPAA
	ComplianceSOX
	ComplianceISO27001
	ComplianceGDPR
	ComplianceNIST
)

// Organization is the identity inferred for the host's owning org.
type Organization struct {
	ID         string
	Name       string
	Domain     string
	Method     DetectionMethod
	Confidence int
	Compliance ComplianceMask
}

// DiscoveryResult is the immutable, atomically-published outcome of one scan.
type DiscoveryResult struct {
	System            SystemInfo
	Organization      Organization
	SecurityTools     []SecurityTool
	DiscoveryTime     time.Time
	OverallConfidence int
}

// AdaptiveConfig is the derived tuning suggested by a DiscoveryResult,
// published through the Orchestrator's Publisher (Orchestrator.Config).
// cmd/threatguard-agent reads it to resize the egress batcher; the filter
// package does not consume it.
type AdaptiveConfig struct {
	MaxMemoryMB        int
	BatchSize          int
	MaxCPUPercent      int
	CollectionInterval time.Duration
	EnableEncryption   bool
	RetentionDays      int
}

// toNetInterfaces converts the hostprobe collector's interface shape into
// the discovery package's own NetworkInterface, keeping hostprobe free of
// any discovery-specific type.
func toNetInterfaces(in []hostprobe.NetInterface) []NetworkInterface {
	out := make([]NetworkInterface, 0, len(in))
	for _, i := range in {
		out = append(out, NetworkInterface{
			Name:     i.Name,
			Address:  i.Address,
			Up:       i.Up,
			Running:  i.Running,
			Wired:    i.Wired,
			Wireless: i.Wireless,
		})
	}
	return out
}
