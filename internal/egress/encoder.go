package egress

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bgthreatai/threatguard-agent/internal/filter"
)

// Encoder serializes a batch of events into a wire payload and reports
// the Content-Type header that goes with it.
type Encoder interface {
	Encode(events []filter.Event) ([]byte, error)
	ContentType() string
}

// MsgpackEncoder is the default binary encoding (spec.md §4.3), matching
// the original out_threatguard_platform's msgpack_sbuffer batch buffer.
type MsgpackEncoder struct{}

func (MsgpackEncoder) Encode(events []filter.Event) ([]byte, error) {
	return msgpack.Marshal(events)
}

func (MsgpackEncoder) ContentType() string { return "application/msgpack" }

// JSONEncoder is the human-readable alternative encoding spec.md §6 keeps
// as acceptable, useful for tests that want inspectable payloads.
type JSONEncoder struct{}

func (JSONEncoder) Encode(events []filter.Event) ([]byte, error) {
	return json.Marshal(events)
}

func (JSONEncoder) ContentType() string { return "application/json" }
