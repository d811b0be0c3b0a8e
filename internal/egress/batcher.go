package egress

import (
	"context"
	"sync"
	"time"

	"github.com/bgthreatai/threatguard-agent/internal/filter"
)

// Batcher is a single-writer-append, single-reader-flush buffer. Submit is
// safe from the filter pipeline goroutine; Flush is intended for the
// egress sender goroutine alone (spec.md §3's ownership rule: "Batch is
// exclusively owned by the Egress component").
type Batcher struct {
	mu        sync.Mutex
	batch     Batch
	batchSize int
	maxWait   time.Duration
	triggerCh chan struct{}
}

// NewBatcher builds a Batcher flushing at batchSize events or maxWait age,
// whichever comes first (spec.md §4.3).
func NewBatcher(batchSize int, maxWait time.Duration) *Batcher {
	return &Batcher{batchSize: batchSize, maxWait: maxWait, triggerCh: make(chan struct{}, 1)}
}

// Submit appends e to the current batch, signaling Trigger if the count
// threshold is crossed.
func (b *Batcher) Submit(e filter.Event) {
	b.mu.Lock()
	if b.batch.StartTime.IsZero() {
		b.batch.StartTime = time.Now()
	}
	b.batch.Events = append(b.batch.Events, e)
	full := len(b.batch.Events) >= b.batchSize
	b.mu.Unlock()

	if full {
		b.signal()
	}
}

func (b *Batcher) signal() {
	select {
	case b.triggerCh <- struct{}{}:
	default:
	}
}

// Trigger fires when a flush should happen: count threshold from Submit,
// or age threshold from WatchAge.
func (b *Batcher) Trigger() <-chan struct{} { return b.triggerCh }

// WatchAge polls batch age against maxWait and signals Trigger when
// crossed, until ctx is cancelled. Run as its own goroutine.
func (b *Batcher) WatchAge(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.mu.Lock()
			age := b.batch.Age()
			empty := len(b.batch.Events) == 0
			b.mu.Unlock()
			if !empty && age >= b.maxWait {
				b.signal()
			}
		}
	}
}

// Flush atomically takes the current batch and resets the buffer to
// empty, returning nil if nothing is buffered.
func (b *Batcher) Flush() *Batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.batch.Events) == 0 {
		return nil
	}
	out := b.batch
	b.batch = Batch{}
	return &out
}

// Pending reports the current buffered count.
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.batch.Events)
}

// Resize updates the count/age thresholds, used when the Discovery
// Engine's AdaptiveConfig changes mid-run (spec.md §4.1: compliance and
// resource posture influence batch size and interval). maxWait of zero
// leaves the age threshold unchanged.
func (b *Batcher) Resize(batchSize int, maxWait time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if batchSize > 0 {
		b.batchSize = batchSize
	}
	if maxWait > 0 {
		b.maxWait = maxWait
	}
}
