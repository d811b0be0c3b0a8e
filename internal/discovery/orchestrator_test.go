package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakePlatform struct {
	sys        SystemInfo
	sysErr     error
	tools      []SecurityTool
	toolsErr   error
	compliance ComplianceMask
}

func (f *fakePlatform) ScanSystem(ctx context.Context) (SystemInfo, error) { return f.sys, f.sysErr }
func (f *fakePlatform) ScanSecurityTools(ctx context.Context) ([]SecurityTool, error) {
	return f.tools, f.toolsErr
}
func (f *fakePlatform) DetectCompliance(ctx context.Context, sys SystemInfo, org Organization) ComplianceMask {
	return f.compliance
}
func (f *fakePlatform) CheckServiceOrProcess(ctx context.Context, name string) bool { return false }

func TestOrchestratorPublishesResultWithHostname(t *testing.T) {
	plat := &fakePlatform{sys: SystemInfo{Hostname: "web01", CPUCores: 4}}
	o := NewOrchestrator(plat, zerolog.Nop(), time.Hour)

	o.RunOnce(t.Context())

	result, ok := o.Result()
	if !ok {
		t.Fatal("expected a published result")
	}
	if result.System.Hostname != "web01" {
		t.Errorf("Hostname = %q, want web01", result.System.Hostname)
	}
	if result.OverallConfidence < 0 || result.OverallConfidence > 100 {
		t.Errorf("OverallConfidence = %d, out of [0,100]", result.OverallConfidence)
	}
}

func TestOrchestratorScanSystemFailureAbortsCycle(t *testing.T) {
	plat := &fakePlatform{sysErr: errors.New("boom")}
	o := NewOrchestrator(plat, zerolog.Nop(), time.Hour)

	o.RunOnce(t.Context())

	if _, ok := o.Result(); ok {
		t.Error("expected no published result after scan_system failure")
	}
}

func TestOrchestratorSecurityToolsFailureYieldsEmptyList(t *testing.T) {
	plat := &fakePlatform{sys: SystemInfo{Hostname: "web01"}, toolsErr: errors.New("boom")}
	o := NewOrchestrator(plat, zerolog.Nop(), time.Hour)

	o.RunOnce(t.Context())

	result, ok := o.Result()
	if !ok {
		t.Fatal("expected a published result despite tool-scan failure")
	}
	if len(result.SecurityTools) != 0 {
		t.Errorf("SecurityTools = %v, want empty", result.SecurityTools)
	}
}

func TestOrchestratorSkipsOverlappingCycle(t *testing.T) {
	plat := &fakePlatform{sys: SystemInfo{Hostname: "web01"}}
	o := NewOrchestrator(plat, zerolog.Nop(), time.Hour)
	o.state.Store(stateScanning)

	o.RunOnce(t.Context())

	if _, ok := o.Result(); ok {
		t.Error("expected no published result when a cycle is already running")
	}
}

func TestOrchestratorOnResultCallback(t *testing.T) {
	plat := &fakePlatform{sys: SystemInfo{Hostname: "web01"}}
	o := NewOrchestrator(plat, zerolog.Nop(), time.Hour)

	var called bool
	o.OnResult(func(DiscoveryResult) { called = true })
	o.RunOnce(t.Context())

	if !called {
		t.Error("expected OnResult callback to fire")
	}
	if o.Config.Get().MaxMemoryMB == 0 {
		t.Error("expected AdaptiveConfig to be published")
	}
}
