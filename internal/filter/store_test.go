package filter

import (
	"testing"
	"time"
)

func TestStoreReplaceIsVisibleToNewSnapshot(t *testing.T) {
	s := NewStore(DefaultRules())
	if len(s.Snapshot()) != 10 {
		t.Fatalf("got %d rules, want 10", len(s.Snapshot()))
	}

	s.Replace([]Rule{{ID: 1, Enabled: true}})
	if len(s.Snapshot()) != 1 {
		t.Errorf("got %d rules after Replace, want 1", len(s.Snapshot()))
	}
}

func TestStoreRecordMatchUpdatesStats(t *testing.T) {
	s := NewStore([]Rule{{ID: 1, Enabled: true}})
	when := time.Now()
	s.RecordMatch(1, when)

	rules := s.Snapshot()
	if rules[0].MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", rules[0].MatchCount)
	}
	if !rules[0].LastMatch.Equal(when) {
		t.Errorf("LastMatch = %v, want %v", rules[0].LastMatch, when)
	}
}
