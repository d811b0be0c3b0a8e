package egress

import (
	"testing"
	"time"

	"github.com/bgthreatai/threatguard-agent/internal/filter"
)

func TestBatcherFlushesImmediatelyAtBatchSizeOne(t *testing.T) {
	b := NewBatcher(1, time.Hour)
	b.Submit(filter.Event{"a": "1"})

	select {
	case <-b.Trigger():
	default:
		t.Fatal("expected a trigger signal when batch_size=1 is crossed")
	}

	batch := b.Flush()
	if batch == nil || batch.Count() != 1 {
		t.Fatalf("got %v, want a 1-event batch", batch)
	}
}

func TestBatcherFlushOnEmptyReturnsNil(t *testing.T) {
	b := NewBatcher(10, time.Hour)
	if batch := b.Flush(); batch != nil {
		t.Errorf("expected nil flush on empty batcher, got %v", batch)
	}
}

func TestBatcherOrderingIsPreserved(t *testing.T) {
	b := NewBatcher(10, time.Hour)
	for i := 0; i < 5; i++ {
		b.Submit(filter.Event{"i": i})
	}
	batch := b.Flush()
	for i, e := range batch.Events {
		if e["i"] != i {
			t.Errorf("event[%d][\"i\"] = %v, want %d", i, e["i"], i)
		}
	}
}

func TestBatcherResetsAfterFlush(t *testing.T) {
	b := NewBatcher(10, time.Hour)
	b.Submit(filter.Event{"a": "1"})
	b.Flush()
	if b.Pending() != 0 {
		t.Errorf("Pending() = %d after flush, want 0", b.Pending())
	}
}
