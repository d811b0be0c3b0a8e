package hostprobe

import (
	"context"
	"time"
)

// Fake is a scripted Collector for tests, in the spirit of spec.md §9's
// scripted test double for the shell-probe capability trait.
type Fake struct {
	HostnameVal   string
	HostnameErr   error
	CPUCoresVal   int
	CPUCoresErr   error
	TotalMemMB    uint64
	FreeMemMB     uint64
	MemErr        error
	DiskFreeMBVal uint64
	DiskErr       error
	BootTimeVal   time.Time
	BootTimeErr   error
	InterfacesVal []NetInterface
	InterfacesErr error
}

func (f *Fake) Hostname(ctx context.Context) (string, error) { return f.HostnameVal, f.HostnameErr }

func (f *Fake) CPUCores(ctx context.Context) (int, error) { return f.CPUCoresVal, f.CPUCoresErr }

func (f *Fake) MemoryMB(ctx context.Context) (uint64, uint64, error) {
	return f.TotalMemMB, f.FreeMemMB, f.MemErr
}

func (f *Fake) DiskFreeMB(ctx context.Context, path string) (uint64, error) {
	return f.DiskFreeMBVal, f.DiskErr
}

func (f *Fake) BootTime(ctx context.Context) (time.Time, error) {
	return f.BootTimeVal, f.BootTimeErr
}

func (f *Fake) Interfaces(ctx context.Context) ([]NetInterface, error) {
	return f.InterfacesVal, f.InterfacesErr
}
