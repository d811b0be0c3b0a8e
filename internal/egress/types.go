// Package egress implements batched, compressed, authenticated delivery
// of filtered events to the ingestion endpoint.
package egress

import (
	"time"

	"github.com/bgthreatai/threatguard-agent/internal/filter"
)

// Batch is the buffered event sequence exclusively owned by the egress
// component. Batch itself enforces no bound. Batcher signals a flush once
// count reaches max-batch-size or age reaches max-batch-wait (age is
// polled once a second), but it does not cap either: events submitted
// before the flush runs are still appended to the same batch.
type Batch struct {
	Events    []filter.Event
	StartTime time.Time
}

// Count is the number of buffered events.
func (b *Batch) Count() int { return len(b.Events) }

// Age is how long the batch has been accumulating.
func (b *Batch) Age() time.Duration {
	if b.StartTime.IsZero() {
		return 0
	}
	return time.Since(b.StartTime)
}
