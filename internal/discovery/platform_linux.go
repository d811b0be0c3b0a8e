//go:build linux

package discovery

import (
	"context"
	"os"
	"strings"

	"github.com/bgthreatai/threatguard-agent/internal/hostprobe"
	"github.com/bgthreatai/threatguard-agent/internal/shellprobe"
)

type linuxPlatform struct {
	collector hostprobe.Collector
	shell     shellprobe.Prober
}

func newPlatform(collector hostprobe.Collector) Platform {
	return &linuxPlatform{collector: collector, shell: shellprobe.System{}}
}

func (p *linuxPlatform) ScanSystem(ctx context.Context) (SystemInfo, error) {
	info, err := scanSystemCommon(ctx, p.collector, "/")
	if err != nil {
		return SystemInfo{}, err
	}
	if b, err := os.ReadFile("/etc/os-release"); err == nil {
		info.OSVersion = parseOSRelease(string(b))
	}
	return info, nil
}

func parseOSRelease(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"`)
		}
	}
	return ""
}

// ScanSecurityTools shells out via the fixed argv capability trait (spec.md
// §9) to probe for ClamAV, auditd, AppArmor/SELinux, and ufw/firewalld —
// no command is ever built by string concatenation with untrusted input.
func (p *linuxPlatform) ScanSecurityTools(ctx context.Context) ([]SecurityTool, error) {
	var tools []SecurityTool

	if p.shell.CommandExists(ctx, "clamscan") || p.shell.CommandExists(ctx, "clamdscan") {
		_, out, _ := p.shell.CommandOutput(ctx, "clamscan", "--version")
		tools = append(tools, SecurityTool{Name: "ClamAV", Vendor: "Cisco Talos", Version: out, Type: ToolAntivirus, Active: p.serviceActive(ctx, "clamav-daemon")})
	}

	if p.shell.CommandExists(ctx, "auditctl") {
		tools = append(tools, SecurityTool{Name: "auditd", Vendor: "Linux Audit Project", Type: ToolIntrusionDetection, Active: p.serviceActive(ctx, "auditd")})
	}

	if p.shell.CommandExists(ctx, "aa-status") {
		code, _, _ := p.shell.CommandOutput(ctx, "aa-status", "--enabled")
		tools = append(tools, SecurityTool{Name: "AppArmor", Vendor: "Canonical", Type: ToolIntrusionDetection, Active: code == 0})
	} else if p.shell.CommandExists(ctx, "sestatus") {
		_, out, _ := p.shell.CommandOutput(ctx, "sestatus")
		tools = append(tools, SecurityTool{Name: "SELinux", Vendor: "Red Hat", Type: ToolIntrusionDetection, Active: strings.Contains(out, "enabled")})
	}

	if p.shell.CommandExists(ctx, "ufw") {
		_, out, _ := p.shell.CommandOutput(ctx, "ufw", "status")
		tools = append(tools, SecurityTool{Name: "ufw", Vendor: "Canonical", Type: ToolFirewall, Active: strings.Contains(out, "Status: active")})
	} else if p.shell.CommandExists(ctx, "firewall-cmd") {
		code, _, _ := p.shell.CommandOutput(ctx, "firewall-cmd", "--state")
		tools = append(tools, SecurityTool{Name: "firewalld", Vendor: "Red Hat", Type: ToolFirewall, Active: code == 0})
	}

	return tools, nil
}

func (p *linuxPlatform) serviceActive(ctx context.Context, name string) bool {
	code, _, _ := p.shell.CommandOutput(ctx, "systemctl", "is-active", name)
	return code == 0
}

func (p *linuxPlatform) DetectCompliance(ctx context.Context, sys SystemInfo, org Organization) ComplianceMask {
	installPaths := []string{"/etc", "/opt", "/usr/local"}
	return inferCompliance(org.Name, installPaths)
}

func (p *linuxPlatform) CheckServiceOrProcess(ctx context.Context, name string) bool {
	if p.serviceActive(ctx, name) {
		return true
	}
	code, _, _ := p.shell.CommandOutput(ctx, "pgrep", "-x", name)
	return code == 0
}
