package filter

import "testing"

func TestExactMatch(t *testing.T) {
	r := Rule{Kind: KindExact, Field: "severity", Pattern: "critical"}
	if !r.matches(Event{"severity": "critical"}, nil) {
		t.Error("expected exact match")
	}
	if r.matches(Event{"severity": "Critical"}, nil) {
		t.Error("exact match must be byte-for-byte, case-sensitive")
	}
}

func TestExistsMatch(t *testing.T) {
	r := Rule{Kind: KindExists, Field: "dst_ip"}
	if !r.matches(Event{"dst_ip": ""}, nil) {
		t.Error("exists should match regardless of value")
	}
	if r.matches(Event{}, nil) {
		t.Error("exists should not match when the field is absent")
	}
}

func TestRegexSubstringFallback(t *testing.T) {
	r := Rule{Kind: KindRegex, Field: "message", Pattern: "malware"}
	if !r.matches(Event{"message": "detected malware.exe dropper"}, nil) {
		t.Error("expected substring match")
	}
}

func TestThreatIntelExplicitField(t *testing.T) {
	intel := NewThreatIntelCache(10, fakeSource{known: map[string]bool{"evil.com": true}})
	r := Rule{Kind: KindThreatIntel, Field: "domain"}
	if !r.matches(Event{"domain": "evil.com"}, intel) {
		t.Error("expected threat-intel field match")
	}
	if r.matches(Event{"domain": "good.com"}, intel) {
		t.Error("unexpected match for unknown indicator")
	}
}

func TestThreatIntelRejectsNonFixedField(t *testing.T) {
	intel := NewThreatIntelCache(10, fakeSource{known: map[string]bool{"evil.com": true}})
	r := Rule{Kind: KindThreatIntel, Field: "comment"}
	if r.matches(Event{"comment": "evil.com"}, intel) {
		t.Error("threat-intel rule with a non-fixed field name should never match")
	}
}

func TestBehavioralKeywordMatch(t *testing.T) {
	r := Rule{Kind: KindBehavioral, Field: "event_type"}
	if !r.matches(Event{"event_type": "sudo_invoked"}, nil) {
		t.Error("expected behavioral keyword match")
	}
	if r.matches(Event{"event_type": "file_read"}, nil) {
		t.Error("unexpected behavioral match")
	}
}

func TestComplianceKeywordMatch(t *testing.T) {
	r := Rule{Kind: KindCompliance, Compliance: CompliancePCIDSS}
	if !r.matches(Event{"message": "card payment declined"}, nil) {
		t.Error("expected PCI keyword match")
	}
	if r.matches(Event{"message": "disk cleanup finished"}, nil) {
		t.Error("unexpected compliance match")
	}
}
