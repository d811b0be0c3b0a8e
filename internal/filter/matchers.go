package filter

import "strings"

// threatIntelFields is the fixed field set a threat-intel rule checks
// when field/pattern are given explicitly (spec.md §4.2).
var threatIntelFields = []string{"src_ip", "dst_ip", "domain", "url", "file_hash"}

// behavioralKeywords flags privilege-escalation-flavored event_type values.
var behavioralKeywords = []string{"privilege", "escalation", "sudo"}

// matches reports whether rule r matches event e, given the side-state
// the engine threads through for threat-intel/behavioral/compliance kinds.
func (r Rule) matches(e Event, intel *ThreatIntelCache) bool {
	switch r.Kind {
	case KindExact:
		v, ok := stringField(e, r.Field)
		return ok && v == r.Pattern

	case KindRegex:
		v, ok := stringField(e, r.Field)
		return ok && strings.Contains(v, r.Pattern)

	case KindExists:
		_, ok := e[r.Field]
		return ok

	case KindThreatIntel:
		return matchThreatIntel(e, r, intel)

	case KindBehavioral:
		return matchBehavioral(e, r)

	case KindCompliance:
		return matchCompliance(e, r)

	default:
		return false
	}
}

// matchThreatIntel implements the Open Question resolution: a "*"
// field/pattern means ignore field/pattern entirely and check every
// string field in the event against the cache. Otherwise only the named
// field (which must be one of the fixed threat-intel field names) is
// checked.
func matchThreatIntel(e Event, r Rule, intel *ThreatIntelCache) bool {
	if intel == nil {
		return false
	}

	if r.Field == "*" || r.Pattern == "*" {
		for _, v := range e {
			if s, ok := v.(string); ok && s != "" && intel.Lookup(s) {
				return true
			}
		}
		return false
	}

	if !isThreatIntelField(r.Field) {
		return false
	}
	v, ok := stringField(e, r.Field)
	if !ok || v == "" {
		return false
	}
	return intel.Lookup(v)
}

func isThreatIntelField(field string) bool {
	for _, f := range threatIntelFields {
		if f == field {
			return true
		}
	}
	return false
}

func matchBehavioral(e Event, r Rule) bool {
	v, ok := stringField(e, "event_type")
	if !ok {
		return false
	}
	v = strings.ToLower(v)
	for _, kw := range behavioralKeywords {
		if strings.Contains(v, kw) {
			return true
		}
	}
	return false
}

// complianceKeywords lists the event-content keywords per framework,
// scoped to the categories a rule's ComplianceMask names. They differ from
// internal/discovery's organization-name keyword sets.
var complianceKeywords = map[ComplianceMask][]string{
	CompliancePCIDSS: {"payment", "card", "transaction"},
	ComplianceHIPAA:  {"patient", "medical", "health", "phi"},
	ComplianceSOX:    {"audit", "financial", "ledger"},
	ComplianceNIST:   {"classified", "federal", "clearance"},
	ComplianceGDPR:   {"personal data", "consent", "subject access"},
}

func matchCompliance(e Event, r Rule) bool {
	for mask, keywords := range complianceKeywords {
		if r.Compliance&mask == 0 {
			continue
		}
		for _, v := range e {
			s, ok := v.(string)
			if !ok {
				continue
			}
			sLower := strings.ToLower(s)
			for _, kw := range keywords {
				if strings.Contains(sLower, kw) {
					return true
				}
			}
		}
	}
	return false
}

func stringField(e Event, field string) (string, bool) {
	v, ok := e[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
