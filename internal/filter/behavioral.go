package filter

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	sessionTTL      = 300 * time.Second
	sessionBound    = 1000
	processTTL      = 600 * time.Second
	processBound    = 5000
	sweepInterval   = 30 * time.Second
	loginWarnCount  = 10
)

// suspiciousProcesses is lifted from tg_security_track_process's fixed list.
var suspiciousProcesses = map[string]bool{
	"nc.exe":      true,
	"netcat":      true,
	"ncat":        true,
	"psexec":      true,
	"wmic":        true,
	"powershell":  true,
	"mimikatz":    true,
	"procdump":    true,
	"lsass":       true,
	"tor.exe":     true,
	"proxychains": true,
}

// Session tracks login activity for one user:source_ip key.
type Session struct {
	Count     int
	FirstSeen time.Time
	expiresAt time.Time
}

// ProcessObservation tracks the last-seen status of one user:process key.
type ProcessObservation struct {
	Status    string // "normal" or "suspicious"
	FirstSeen time.Time
	expiresAt time.Time
}

// BehavioralState holds the bounded, TTL-expiring session and process
// maps spec.md §4.2 describes. Expired entries are removed by a background
// sweep goroutine rather than on each call; the sweep holds the same
// mutex as TrackLogin and TrackProcess, which wait for it to finish.
type BehavioralState struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	processes map[string]*ProcessObservation
}

// NewBehavioralState builds an empty BehavioralState and starts its sweep
// goroutine, stopped when ctx is cancelled.
func NewBehavioralState(ctx context.Context) *BehavioralState {
	b := &BehavioralState{
		sessions:  make(map[string]*Session),
		processes: make(map[string]*ProcessObservation),
	}
	go b.sweepLoop(ctx)
	return b
}

func (b *BehavioralState) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			b.sweep(now)
		}
	}
}

func (b *BehavioralState) sweep(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, s := range b.sessions {
		if now.After(s.expiresAt) {
			delete(b.sessions, k)
		}
	}
	for k, p := range b.processes {
		if now.After(p.expiresAt) {
			delete(b.processes, k)
		}
	}
}

// TrackLogin increments the session for user:sourceIP and reports whether
// the login count has crossed the warning threshold within the TTL window.
func (b *BehavioralState) TrackLogin(user, sourceIP string) (warn bool) {
	key := user + ":" + sourceIP
	now := time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[key]
	if !ok {
		if len(b.sessions) >= sessionBound {
			return false
		}
		s = &Session{FirstSeen: now}
		b.sessions[key] = s
	}
	s.Count++
	s.expiresAt = now.Add(sessionTTL)

	return s.Count > loginWarnCount
}

// TrackProcess classifies name against the suspicious-process list and
// records the observation for user:process, reporting whether this
// observation is suspicious.
func (b *BehavioralState) TrackProcess(user, name string) (suspicious bool) {
	key := user + ":" + name
	now := time.Now()
	status := "normal"
	if suspiciousProcesses[strings.ToLower(name)] {
		status = "suspicious"
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.processes[key]
	if !ok {
		if len(b.processes) >= processBound {
			return status == "suspicious"
		}
		p = &ProcessObservation{FirstSeen: now}
		b.processes[key] = p
	}
	p.Status = status
	p.expiresAt = now.Add(processTTL)

	return status == "suspicious"
}
