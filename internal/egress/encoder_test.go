package egress

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bgthreatai/threatguard-agent/internal/filter"
)

func TestMsgpackEncoderRoundTrip(t *testing.T) {
	events := []filter.Event{{"a": "1"}, {"b": "2"}}
	enc := MsgpackEncoder{}

	data, err := enc.Encode(events)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var out []map[string]interface{}
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("got %d events, want 2", len(out))
	}
	if enc.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q", enc.ContentType())
	}
}

func TestJSONEncoderRoundTrip(t *testing.T) {
	events := []filter.Event{{"a": "1"}}
	enc := JSONEncoder{}

	data, err := enc.Encode(events)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty JSON payload")
	}
	if enc.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q", enc.ContentType())
	}
}
