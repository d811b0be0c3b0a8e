//go:build windows

package discovery

import (
	"context"
	"strings"

	"github.com/bgthreatai/threatguard-agent/internal/hostprobe"
	"github.com/bgthreatai/threatguard-agent/internal/wmi"
)

type windowsPlatform struct {
	collector hostprobe.Collector
}

func newPlatform(collector hostprobe.Collector) Platform {
	return &windowsPlatform{collector: collector}
}

func (p *windowsPlatform) ScanSystem(ctx context.Context) (SystemInfo, error) {
	info, err := scanSystemCommon(ctx, p.collector, "C:")
	if err != nil {
		return SystemInfo{}, err
	}

	if result, err := wmi.QuerySingle(ctx, "root\\CIMV2", "SELECT Version FROM Win32_OperatingSystem"); err == nil {
		if v, ok := wmi.GetPropertyString(result, "Version"); ok {
			info.OSVersion = v
		}
	}
	return info, nil
}

// ScanSecurityTools detects Defender, the Windows Firewall service, and
// BitLocker, reusing the WMI classes the teacher's DefenderCheck/
// FirewallCheck/BitLockerCheck query, generalized from pass/fail compliance
// checks into "is this tool present and active" detections.
func (p *windowsPlatform) ScanSecurityTools(ctx context.Context) ([]SecurityTool, error) {
	var tools []SecurityTool

	if t, ok := detectDefender(ctx); ok {
		tools = append(tools, t)
	}
	if t, ok := detectFirewallService(ctx); ok {
		tools = append(tools, t)
	}
	if t, ok := detectBitLocker(ctx); ok {
		tools = append(tools, t)
	}

	return tools, nil
}

func detectDefender(ctx context.Context) (SecurityTool, bool) {
	result, err := wmi.QuerySingle(ctx, "root\\Microsoft\\Windows\\Defender", "SELECT AMServiceEnabled, AntivirusEnabled, AMEngineVersion FROM MSFT_MpComputerStatus")
	if err != nil {
		return SecurityTool{}, false
	}
	enabled, _ := wmi.GetPropertyBool(result, "AntivirusEnabled")
	version, _ := wmi.GetPropertyString(result, "AMEngineVersion")
	return SecurityTool{
		Name:    "Windows Defender",
		Vendor:  "Microsoft",
		Version: version,
		Type:    ToolAntivirus | ToolEDR,
		Active:  enabled,
	}, true
}

func detectFirewallService(ctx context.Context) (SecurityTool, bool) {
	result, err := wmi.QuerySingle(ctx, "root\\CIMV2", "SELECT State, Status FROM Win32_Service WHERE Name='MpsSvc'")
	if err != nil {
		return SecurityTool{}, false
	}
	state, _ := wmi.GetPropertyString(result, "State")
	return SecurityTool{
		Name:   "Windows Firewall",
		Vendor: "Microsoft",
		Type:   ToolFirewall,
		Active: strings.EqualFold(state, "Running"),
	}, true
}

func detectBitLocker(ctx context.Context) (SecurityTool, bool) {
	result, err := wmi.QuerySingle(ctx, "root\\CIMV2\\Security\\MicrosoftVolumeEncryption", "SELECT ProtectionStatus FROM Win32_EncryptableVolume WHERE DriveLetter='C:'")
	if err != nil {
		return SecurityTool{}, false
	}
	status, _ := wmi.GetPropertyInt(result, "ProtectionStatus")
	return SecurityTool{
		Name:   "BitLocker",
		Vendor: "Microsoft",
		Type:   ToolEncryption,
		Active: status == 1,
	}, true
}

func (p *windowsPlatform) DetectCompliance(ctx context.Context, sys SystemInfo, org Organization) ComplianceMask {
	installPaths := []string{`C:\Program Files`, `C:\ProgramData`}
	return inferCompliance(org.Name, installPaths)
}

func (p *windowsPlatform) CheckServiceOrProcess(ctx context.Context, name string) bool {
	query := "SELECT State FROM Win32_Service WHERE Name='" + sanitizeWMIName(name) + "'"
	if result, err := wmi.QuerySingle(ctx, "root\\CIMV2", query); err == nil {
		state, _ := wmi.GetPropertyString(result, "State")
		if strings.EqualFold(state, "Running") {
			return true
		}
	}

	query = "SELECT Name FROM Win32_Process WHERE Name='" + sanitizeWMIName(name) + "'"
	_, err := wmi.QuerySingle(ctx, "root\\CIMV2", query)
	return err == nil
}

// sanitizeWMIName strips characters that have meaning inside a WQL string
// literal; name always originates from a fixed caller-provided constant,
// never untrusted input, but this keeps the query well-formed regardless.
func sanitizeWMIName(name string) string {
	return strings.NewReplacer("'", "", "\\", "").Replace(name)
}
