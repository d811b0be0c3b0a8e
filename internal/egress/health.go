package egress

import (
	"sync"
	"sync/atomic"
	"time"
)

// Status is the coarse health classification spec.md §4.3 defines.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// unhealthyThreshold is the number of consecutive send failures after
// which the client is classified unhealthy.
const unhealthyThreshold = 3

// Health tracks the atomic counters spec.md §4.3 names and derives a
// Status from them. Safe for concurrent use by the sender goroutine and
// a health-reporter goroutine.
type Health struct {
	eventsSent          atomic.Int64
	eventsFailed        atomic.Int64
	eventsInFlight      atomic.Int64
	connectionErrors    atomic.Int64
	httpErrors          atomic.Int64
	consecutiveFailures atomic.Int64

	mu            sync.Mutex
	lastSuccess   time.Time
	lastErrorKind string
	lastErrorTime time.Time
}

// Snapshot is an immutable point-in-time view of Health, safe to log or
// expose without holding any lock.
type Snapshot struct {
	EventsSent          int64
	EventsFailed        int64
	EventsInFlight      int64
	ConnectionErrors    int64
	HTTPErrors          int64
	ConsecutiveFailures int64
	LastSuccess         time.Time
	LastErrorKind       string
	LastErrorTime       time.Time
	Status              Status
}

func (h *Health) beginSend(n int) { h.eventsInFlight.Add(int64(n)) }

func (h *Health) recordSuccess(n int) {
	h.eventsInFlight.Add(int64(-n))
	h.eventsSent.Add(int64(n))
	h.consecutiveFailures.Store(0)

	h.mu.Lock()
	h.lastSuccess = time.Now()
	h.mu.Unlock()
}

func (h *Health) recordFailure(n int, kind string, connErr bool) {
	h.eventsInFlight.Add(int64(-n))
	h.eventsFailed.Add(int64(n))
	h.consecutiveFailures.Add(1)
	if connErr {
		h.connectionErrors.Add(1)
	} else {
		h.httpErrors.Add(1)
	}

	h.mu.Lock()
	h.lastErrorKind = kind
	h.lastErrorTime = time.Now()
	h.mu.Unlock()
}

// Snapshot returns the current immutable view, classified healthy,
// degraded, or unhealthy by consecutive-failure count.
func (h *Health) Snapshot() Snapshot {
	h.mu.Lock()
	lastSuccess, lastErrorKind, lastErrorTime := h.lastSuccess, h.lastErrorKind, h.lastErrorTime
	h.mu.Unlock()

	consecutive := h.consecutiveFailures.Load()

	status := StatusHealthy
	switch {
	case consecutive >= unhealthyThreshold:
		status = StatusUnhealthy
	case consecutive > 0:
		status = StatusDegraded
	}

	return Snapshot{
		EventsSent:          h.eventsSent.Load(),
		EventsFailed:        h.eventsFailed.Load(),
		EventsInFlight:      h.eventsInFlight.Load(),
		ConnectionErrors:    h.connectionErrors.Load(),
		HTTPErrors:          h.httpErrors.Load(),
		ConsecutiveFailures: consecutive,
		LastSuccess:         lastSuccess,
		LastErrorKind:       lastErrorKind,
		LastErrorTime:       lastErrorTime,
		Status:              status,
	}
}
