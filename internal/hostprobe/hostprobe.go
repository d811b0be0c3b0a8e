// Package hostprobe wraps gopsutil's cross-platform host facts behind a
// small Collector interface, the way rcourtman-Pulse's hostagent package
// wraps gopsutil calls for testability. The three platform
// implementations in internal/discovery all build SystemInfo from the
// same Collector, differing only in security-tool and compliance
// detection, which genuinely need OS-specific code.
package hostprobe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
)

// NetInterface mirrors spec.md's NetworkInterface entity.
type NetInterface struct {
	Name     string
	Address  string
	Up       bool
	Running  bool
	Wired    bool
	Wireless bool
}

// Collector is the capability trait over gopsutil (and a handful of
// Go-native helpers) used by every platform implementation to build the
// OS-independent parts of SystemInfo.
type Collector interface {
	Hostname(ctx context.Context) (string, error)
	CPUCores(ctx context.Context) (int, error)
	MemoryMB(ctx context.Context) (totalMB, freeMB uint64, err error)
	DiskFreeMB(ctx context.Context, path string) (uint64, error)
	BootTime(ctx context.Context) (time.Time, error)
	Interfaces(ctx context.Context) ([]NetInterface, error)
}

// defaultCollector is the real gopsutil-backed implementation.
type defaultCollector struct{}

// NewDefaultCollector returns the production Collector.
func NewDefaultCollector() Collector {
	return &defaultCollector{}
}

func (c *defaultCollector) Hostname(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("host.Info: %w", err)
	}
	return info.Hostname, nil
}

func (c *defaultCollector) CPUCores(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("cpu.Counts: %w", err)
	}
	return n, nil
}

func (c *defaultCollector) MemoryMB(ctx context.Context) (uint64, uint64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("mem.VirtualMemory: %w", err)
	}
	const mb = 1024 * 1024
	return v.Total / mb, v.Available / mb, nil
}

func (c *defaultCollector) DiskFreeMB(ctx context.Context, path string) (uint64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("disk.Usage(%s): %w", path, err)
	}
	const mb = 1024 * 1024
	return u.Free / mb, nil
}

func (c *defaultCollector) BootTime(ctx context.Context) (time.Time, error) {
	secs, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("host.BootTime: %w", err)
	}
	return time.Unix(int64(secs), 0), nil
}

func (c *defaultCollector) Interfaces(ctx context.Context) ([]NetInterface, error) {
	ifaces, err := gopsnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("net.Interfaces: %w", err)
	}

	out := make([]NetInterface, 0, len(ifaces))
	for _, iface := range ifaces {
		addr := firstUsableAddress(iface.Addrs)
		if addr == "" {
			continue
		}

		flags := make(map[string]bool, len(iface.Flags))
		for _, f := range iface.Flags {
			flags[strings.ToLower(f)] = true
		}

		out = append(out, NetInterface{
			Name:     iface.Name,
			Address:  addr,
			Up:       flags["up"],
			Running:  flags["running"],
			Wired:    !flags["wireless"] && !strings.Contains(strings.ToLower(iface.Name), "wlan") && !strings.Contains(strings.ToLower(iface.Name), "wi-fi"),
			Wireless: flags["wireless"] || strings.Contains(strings.ToLower(iface.Name), "wlan") || strings.Contains(strings.ToLower(iface.Name), "wi-fi"),
		})

		if len(out) >= 8 {
			break // SystemInfo.interfaces is capped at 8 per spec.md
		}
	}
	return out, nil
}

// firstUsableAddress returns the first address that isn't 0.0.0.0 or
// link-local, matching spec.md's NetworkInterface invariant.
func firstUsableAddress(addrs gopsnet.InterfaceAddrList) string {
	for _, a := range addrs {
		ip := a.Addr
		if idx := strings.Index(ip, "/"); idx >= 0 {
			ip = ip[:idx]
		}
		if ip == "" || ip == "0.0.0.0" || ip == "::" {
			continue
		}
		if strings.HasPrefix(ip, "169.254.") || strings.HasPrefix(ip, "fe80:") {
			continue
		}
		return ip
	}
	return ""
}
