// ThreatGuard Go Agent - Endpoint telemetry and compliance discovery
//
// This agent runs on monitored endpoints and reports discovery records
// and filtered security events to the ThreatGuard platform over batched,
// compressed HTTPS.
//
// Features:
// - Cross-platform discovery: system identity, installed security tools,
//   organization and compliance inference
// - Priority-resolved rule engine with threat-intel and behavioral state
// - Size/age-triggered batching with msgpack or JSON encoding and gzip
// - TLS 1.3 egress with bearer-token auth, retry/backoff, health model
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bgthreatai/threatguard-agent/internal/agentconfig"
	"github.com/bgthreatai/threatguard-agent/internal/agentlog"
	"github.com/bgthreatai/threatguard-agent/internal/discovery"
	"github.com/bgthreatai/threatguard-agent/internal/egress"
	"github.com/bgthreatai/threatguard-agent/internal/filter"
)

var (
	// Build-time variables
	Version   = "0.1.0"
	BuildTime = "unknown"
)

func main() {
	configFile := flag.String("config", "", "Config file path (optional)")
	version := flag.Bool("version", false, "Print version and exit")
	dryRun := flag.Bool("dry-run", false, "Run one discovery scan and print the result, then exit")
	flag.Parse()

	if *version {
		fmt.Printf("threatguard-agent %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := agentconfig.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := agentlog.New(agentlog.Options{
		Level:         cfg.Logging.Level,
		FilePath:      cfg.Logging.FilePath,
		ConsoleOutput: cfg.Logging.ConsoleOutput,
		MaxFileSizeMB: cfg.Logging.MaxFileSize,
		MaxFiles:      cfg.Logging.MaxFiles,
	})
	log.Info().Str("version", Version).Msg("threatguard agent starting")

	if *dryRun {
		runDryRun(log)
		return
	}

	agentID := uuid.NewString()
	log.Info().Str("agent_id", agentID).Msg("agent identity assigned for this process")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		cancel()
	}()

	rawEvents := make(chan filter.Event, 1000)

	// Discovery Engine: runs on a timer, emits one discovery record per
	// scan into the same pipeline raw events flow through.
	var orch *discovery.Orchestrator
	if cfg.Discovery.Enabled {
		orch = discovery.NewOrchestrator(
			discovery.NewPlatform(),
			log,
			time.Duration(cfg.Discovery.IntervalSeconds)*time.Second,
		)
		orch.OnResult(func(res discovery.DiscoveryResult) {
			select {
			case rawEvents <- discoveryEvent(res):
			default:
				log.Warn().Msg("raw event channel full, dropping discovery event")
			}
		})
		go orch.Run(ctx)
	}

	// Rule-Based Filter / Enricher
	store := filter.NewStore(filter.DefaultRules())
	if cfg.Security.RulesFile != "" {
		if f, openErr := os.Open(cfg.Security.RulesFile); openErr == nil {
			rules := filter.LoadRulesFile(f, log)
			f.Close()
			if len(rules) > 0 {
				store.Replace(rules)
			}
		} else {
			log.Warn().Err(openErr).Str("path", cfg.Security.RulesFile).Msg("failed to open rules file, using defaults")
		}
	}

	var intel *filter.ThreatIntelCache
	if cfg.Security.EnableThreatIntel {
		intel = filter.NewThreatIntelCache(10000, filter.PlaceholderSource{})
	}

	var behavioral *filter.BehavioralState
	if cfg.Security.EnableBehavioralAnalysis {
		behavioral = filter.NewBehavioralState(ctx)
	}

	engine := filter.NewEngine(store, intel, behavioral, agentID)

	// Batched Secure Egress
	batcher := egress.NewBatcher(cfg.Platform.BatchSize, time.Duration(cfg.Platform.BatchMaxWaitSecs)*time.Second)
	go batcher.WatchAge(ctx)

	client := egress.NewClient(egress.ClientConfig{
		Host:         cfg.Platform.Host,
		Port:         cfg.Platform.Port,
		URI:          cfg.Platform.URI,
		APIKey:       cfg.Platform.APIKey,
		AgentVersion: Version,
		RetryLimit:   cfg.Platform.RetryLimit,
		Compress:     cfg.Platform.Compress,
		TLSVerify:    cfg.Platform.TLSVerify,
		Timeout:      time.Duration(cfg.Platform.Timeout) * time.Second,
	}, egress.MsgpackEncoder{}, compressorFor(cfg.Platform.Compress))

	var wg sync.WaitGroup

	// filter pipeline goroutine: raw events in, filtered events to the batcher
	wg.Add(1)
	go func() {
		defer wg.Done()
		filterPipeline(ctx, log, engine, rawEvents, batcher)
	}()

	// egress sender goroutine: flushes on batch trigger or age timeout
	wg.Add(1)
	go func() {
		defer wg.Done()
		egressSender(ctx, log, client, batcher)
	}()

	// health reporter goroutine: periodic liveness log
	wg.Add(1)
	go func() {
		defer wg.Done()
		healthReporter(ctx, log, client)
	}()

	// Adaptive config from discovery re-sizes the batcher as compliance
	// and resource posture become known.
	if orch != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			adaptConfigLoop(ctx, orch, batcher)
		}()
	}

	// Optional external event source: newline-delimited JSON events read
	// from stdin, the simplest integration point for a forwarder that
	// feeds raw events this agent does not itself generate.
	if stdinHasData() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			readStdinEvents(ctx, log, rawEvents)
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down, flushing pending batch")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := client.Close(shutdownCtx, batcher); err != nil {
		log.Error().Err(err).Msg("final flush failed")
	}
	shutdownCancel()

	wg.Wait()
	log.Info().Msg("agent stopped")
}

func filterPipeline(ctx context.Context, log zerolog.Logger, engine *filter.Engine, rawEvents <-chan filter.Event, batcher *egress.Batcher) {
	plog := agentlog.Component(log, "filter")
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-rawEvents:
			if !ok {
				return
			}
			outcome, out := engine.Process(e)
			switch outcome {
			case filter.OutcomeDrop:
				plog.Debug().Msg("event dropped")
			case filter.OutcomePass, filter.OutcomeFlag, filter.OutcomeEnrich:
				batcher.Submit(out)
			}
		}
	}
}

func egressSender(ctx context.Context, log zerolog.Logger, client *egress.Client, batcher *egress.Batcher) {
	elog := agentlog.Component(log, "egress")
	for {
		select {
		case <-ctx.Done():
			return
		case <-batcher.Trigger():
			batch := batcher.Flush()
			if batch == nil {
				continue
			}
			if err := client.Send(ctx, batch); err != nil {
				elog.Error().Err(err).Int("batch_size", batch.Count()).Msg("batch send failed")
			}
		}
	}
}

func healthReporter(ctx context.Context, log zerolog.Logger, client *egress.Client) {
	hlog := agentlog.Component(log, "health")
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := client.Health().Snapshot()
			hlog.Info().
				Str("status", string(snap.Status)).
				Int64("events_sent", snap.EventsSent).
				Int64("events_failed", snap.EventsFailed).
				Int64("events_in_flight", snap.EventsInFlight).
				Int64("consecutive_failures", snap.ConsecutiveFailures).
				Msg("egress health")
		}
	}
}

func adaptConfigLoop(ctx context.Context, orch *discovery.Orchestrator, batcher *egress.Batcher) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cfg := orch.Config.Get()
			if cfg.BatchSize > 0 {
				batcher.Resize(cfg.BatchSize, cfg.CollectionInterval)
			}
		}
	}
}

func discoveryEvent(res discovery.DiscoveryResult) filter.Event {
	tools := make([]string, 0, len(res.SecurityTools))
	for _, t := range res.SecurityTools {
		tools = append(tools, t.Name)
	}
	return filter.Event{
		"timestamp":  res.DiscoveryTime.Unix(),
		"event_type": "threatguard_discovery",
		"hostname":   res.System.Hostname,
		"platform":   res.System.PlatformName,
		"organization": map[string]interface{}{
			"name":       res.Organization.Name,
			"id":         res.Organization.ID,
			"confidence": res.Organization.Confidence,
		},
		"security_tools": tools,
		"compliance":     uint32(res.Organization.Compliance),
		"confidence":     res.OverallConfidence,
	}
}

func readStdinEvents(ctx context.Context, log zerolog.Logger, rawEvents chan<- filter.Event) {
	slog := agentlog.Component(log, "stdin")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var e filter.Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			slog.Warn().Err(err).Msg("skipping malformed stdin event")
			continue
		}
		select {
		case rawEvents <- e:
		case <-ctx.Done():
			return
		}
	}
}

func stdinHasData() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) == 0
}

func compressorFor(compress bool) egress.Compressor {
	if compress {
		return egress.GzipCompressor{}
	}
	return egress.NoopCompressor{}
}

func runDryRun(log zerolog.Logger) {
	ctx := context.Background()
	platform := discovery.NewPlatform()
	orch := discovery.NewOrchestrator(platform, log, time.Minute)

	orch.RunOnce(ctx)

	res, ok := orch.Result()
	if !ok {
		fmt.Fprintln(os.Stderr, "discovery scan produced no result")
		os.Exit(1)
	}

	fmt.Println("=== Discovery Result ===")
	fmt.Printf("Hostname:     %s\n", res.System.Hostname)
	fmt.Printf("Platform:     %s %s\n", res.System.PlatformName, res.System.OSVersion)
	fmt.Printf("Organization: %s (method=%s, confidence=%d)\n", res.Organization.Name, res.Organization.Method, res.Organization.Confidence)
	fmt.Printf("Security Tools:\n")
	for _, t := range res.SecurityTools {
		fmt.Printf("  - %s (type=%d, active=%v)\n", t.Name, t.Type, t.Active)
	}
	fmt.Printf("Compliance Mask: %b\n", res.Organization.Compliance)
	fmt.Printf("Overall Confidence: %d\n", res.OverallConfidence)
}
