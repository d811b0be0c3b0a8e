package discovery

import (
	"context"
	"fmt"
	"runtime"

	"github.com/bgthreatai/threatguard-agent/internal/hostprobe"
)

// scanSystemCommon builds the OS-independent parts of SystemInfo via the
// hostprobe.Collector, leaving platform-specific fields (OSVersion) to the
// caller. Shared by all three Platform implementations.
func scanSystemCommon(ctx context.Context, c hostprobe.Collector, diskPath string) (SystemInfo, error) {
	hostname, err := c.Hostname(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("hostname: %w", err)
	}

	cores, err := c.CPUCores(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("cpu cores: %w", err)
	}

	totalMB, _, err := c.MemoryMB(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("memory: %w", err)
	}

	// Disk and boot-time and interface failures degrade fields rather
	// than abort the scan (spec.md's "partial failures degrade fields").
	freeMB, _ := c.DiskFreeMB(ctx, diskPath)
	boot, _ := c.BootTime(ctx)
	ifaces, _ := c.Interfaces(ctx)

	return SystemInfo{
		Hostname:      hostname,
		PlatformName:  runtime.GOOS,
		Architecture:  runtime.GOARCH,
		CPUCores:      cores,
		TotalMemoryMB: totalMB,
		FreeDiskMB:    freeMB,
		BootTime:      boot,
		Interfaces:    toNetInterfaces(ifaces),
	}, nil
}
