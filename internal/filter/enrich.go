package filter

import "time"

// enrich adds the fixed enrichment fields spec.md §4.2 names. Applying it
// twice to the same event is a no-op on tg_security_tag (it is always set
// to the same literal), which is what the idempotence testable property
// checks.
func (eng *Engine) enrich(e Event, r Rule) Event {
	out := e.Clone()
	out["tg_security_tag"] = "flagged"
	out["tg_detection_time"] = time.Now().Unix()
	// priority is already 0-100, so scaling to tg_threat_score is the identity.
	out["tg_threat_score"] = r.Priority
	out["tg_agent_id"] = eng.agentID
	return out
}
