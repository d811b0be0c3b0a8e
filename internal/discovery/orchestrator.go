package discovery

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/bgthreatai/threatguard-agent/internal/agentlog"
)

const (
	stateIdle int32 = iota
	stateScanning
	statePublishing
)

// scanBudget bounds scan() to the wall-clock budget spec.md §4.1 requires.
const scanBudget = 15 * time.Second

// Publisher exposes the latest AdaptiveConfig as an atomically-swapped
// pointer, following spec.md §9's "process-wide singletons, if used, are
// immutable after initialization."
type Publisher struct {
	ptr atomic.Pointer[AdaptiveConfig]
}

// Get returns the most recently published AdaptiveConfig, or the zero
// value before the first scan completes.
func (p *Publisher) Get() AdaptiveConfig {
	v := p.ptr.Load()
	if v == nil {
		return AdaptiveConfig{}
	}
	return *v
}

func (p *Publisher) set(cfg AdaptiveConfig) {
	p.ptr.Store(&cfg)
}

// Orchestrator runs the Idle -> Scanning -> Publishing -> Idle loop on a
// fixed schedule, skipping (and logging) a cycle that would overlap the
// previous one still in flight.
type Orchestrator struct {
	platform Platform
	log      zerolog.Logger
	interval time.Duration

	state     atomic.Int32
	resultPtr atomic.Pointer[DiscoveryResult]
	Config    Publisher

	onResult func(DiscoveryResult)
}

// NewOrchestrator builds an Orchestrator over the given Platform.
func NewOrchestrator(platform Platform, log zerolog.Logger, interval time.Duration) *Orchestrator {
	return &Orchestrator{platform: platform, log: agentlog.Component(log, "discovery"), interval: interval}
}

// OnResult registers a callback fired with each published DiscoveryResult,
// used by the pipeline wiring to emit the discovery event downstream.
func (o *Orchestrator) OnResult(fn func(DiscoveryResult)) {
	o.onResult = fn
}

// Result returns the most recently published DiscoveryResult, if any.
func (o *Orchestrator) Result() (DiscoveryResult, bool) {
	v := o.resultPtr.Load()
	if v == nil {
		return DiscoveryResult{}, false
	}
	return *v, true
}

// Run blocks, scanning every o.interval until ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single scan-and-publish cycle, skipping if a prior
// cycle is still in flight.
func (o *Orchestrator) RunOnce(ctx context.Context) {
	if !o.state.CompareAndSwap(stateIdle, stateScanning) {
		o.log.Warn().Msg("discovery scan skipped: previous cycle still running")
		return
	}
	defer o.state.Store(stateIdle)

	scanCtx, cancel := context.WithTimeout(ctx, scanBudget)
	defer cancel()

	result, err := o.scan(scanCtx)
	if err != nil {
		o.log.Error().Err(err).Msg("discovery scan failed")
		return
	}

	o.state.Store(statePublishing)
	o.publish(result)
}

func (o *Orchestrator) scan(ctx context.Context) (DiscoveryResult, error) {
	sys, err := o.platform.ScanSystem(ctx)
	if err != nil {
		return DiscoveryResult{}, err
	}

	org := DetectOrganization(ctx)

	tools, err := o.platform.ScanSecurityTools(ctx)
	if err != nil {
		tools = nil
	}
	org.Compliance = o.platform.DetectCompliance(ctx, sys, org)

	result := DiscoveryResult{
		System:        sys,
		Organization:  org,
		SecurityTools: tools,
		DiscoveryTime: time.Now(),
	}
	result.OverallConfidence = overallConfidence(org.Confidence, len(tools))
	return result, nil
}

// overallConfidence is the spec's flagged Open Question formula, kept
// literally as specified (not "fixed"): any nonzero tool count counts for
// as much as a strong org-detection confidence would.
func overallConfidence(orgConfidence, toolCount int) int {
	toolTerm := 50
	if toolCount > 0 {
		toolTerm = 80
	}
	return (orgConfidence + toolTerm) / 2
}

func (o *Orchestrator) publish(result DiscoveryResult) {
	o.resultPtr.Store(&result)
	adaptive := deriveAdaptiveConfig(result)
	o.Config.set(adaptive)
	o.log.Info().
		Str("hostname", result.System.Hostname).
		Str("organization", result.Organization.Name).
		Int("tool_count", len(result.SecurityTools)).
		Str("max_memory", humanize.Bytes(uint64(adaptive.MaxMemoryMB)*1024*1024)).
		Msg("discovery scan published")
	if o.onResult != nil {
		o.onResult(result)
	}
}
