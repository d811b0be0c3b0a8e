package discovery

import (
	"context"

	"github.com/bgthreatai/threatguard-agent/internal/hostprobe"
)

// Platform is the capability trait spec'd for discovery: one
// implementation per OS, selected at compile time via NewPlatform.
type Platform interface {
	ScanSystem(ctx context.Context) (SystemInfo, error)
	ScanSecurityTools(ctx context.Context) ([]SecurityTool, error)
	DetectCompliance(ctx context.Context, sys SystemInfo, org Organization) ComplianceMask
	CheckServiceOrProcess(ctx context.Context, name string) bool
}

// NewPlatform returns the Platform implementation for the running OS,
// same shape as the teacher's service.New dispatch.
func NewPlatform() Platform {
	return newPlatform(hostprobe.NewDefaultCollector())
}
