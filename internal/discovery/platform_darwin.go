//go:build darwin

package discovery

import (
	"context"
	"strings"

	"github.com/bgthreatai/threatguard-agent/internal/hostprobe"
	"github.com/bgthreatai/threatguard-agent/internal/shellprobe"
)

type darwinPlatform struct {
	collector hostprobe.Collector
	shell     shellprobe.Prober
}

func newPlatform(collector hostprobe.Collector) Platform {
	return &darwinPlatform{collector: collector, shell: shellprobe.System{}}
}

func (p *darwinPlatform) ScanSystem(ctx context.Context) (SystemInfo, error) {
	info, err := scanSystemCommon(ctx, p.collector, "/")
	if err != nil {
		return SystemInfo{}, err
	}
	if _, out, err := p.shell.CommandOutput(ctx, "sw_vers", "-productVersion"); err == nil {
		info.OSVersion = strings.TrimSpace(out)
	}
	return info, nil
}

// ScanSecurityTools probes Gatekeeper, SIP, and FileVault via the fixed
// argv shell trait spec.md §9 names explicitly for Darwin.
func (p *darwinPlatform) ScanSecurityTools(ctx context.Context) ([]SecurityTool, error) {
	var tools []SecurityTool

	if p.shell.CommandExists(ctx, "spctl") {
		_, out, _ := p.shell.CommandOutput(ctx, "spctl", "--status")
		tools = append(tools, SecurityTool{Name: "Gatekeeper", Vendor: "Apple", Type: ToolIntrusionDetection, Active: strings.Contains(out, "assessments enabled")})
	}

	if p.shell.CommandExists(ctx, "csrutil") {
		_, out, _ := p.shell.CommandOutput(ctx, "csrutil", "status")
		tools = append(tools, SecurityTool{Name: "System Integrity Protection", Vendor: "Apple", Type: ToolIntrusionDetection, Active: strings.Contains(out, "enabled")})
	}

	if p.shell.CommandExists(ctx, "fdesetup") {
		_, out, _ := p.shell.CommandOutput(ctx, "fdesetup", "status")
		tools = append(tools, SecurityTool{Name: "FileVault", Vendor: "Apple", Type: ToolEncryption, Active: strings.Contains(out, "FileVault is On")})
	}

	if p.shell.CommandExists(ctx, "defaults") {
		code, _, _ := p.shell.CommandOutput(ctx, "defaults", "read", "/Library/Preferences/com.apple.alf", "globalstate")
		tools = append(tools, SecurityTool{Name: "Application Firewall", Vendor: "Apple", Type: ToolFirewall, Active: code == 0})
	}

	return tools, nil
}

func (p *darwinPlatform) DetectCompliance(ctx context.Context, sys SystemInfo, org Organization) ComplianceMask {
	installPaths := []string{"/Library", "/usr/local", "/opt/homebrew"}
	return inferCompliance(org.Name, installPaths)
}

func (p *darwinPlatform) CheckServiceOrProcess(ctx context.Context, name string) bool {
	code, _, _ := p.shell.CommandOutput(ctx, "launchctl", "list", name)
	if code == 0 {
		return true
	}
	code, _, _ = p.shell.CommandOutput(ctx, "pgrep", "-x", name)
	return code == 0
}
