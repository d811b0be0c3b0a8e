package filter

import (
	"strings"
	"time"
)

// Engine evaluates one event per call against the current Store
// snapshot: a single pass, highest-priority match wins, ties break by
// lowest rule id (spec.md §4.2, §8).
type Engine struct {
	store      *Store
	intel      *ThreatIntelCache
	behavioral *BehavioralState
	agentID    string
}

// NewEngine builds an Engine. intel and behavioral may be nil to disable
// their respective rule kinds, in which case the engine is pure per-event
// (spec.md: "pure per-event when behavioral/threat-intel features are
// disabled").
func NewEngine(store *Store, intel *ThreatIntelCache, behavioral *BehavioralState, agentID string) *Engine {
	return &Engine{store: store, intel: intel, behavioral: behavioral, agentID: agentID}
}

// Process runs event e through every enabled rule in one pass and returns
// the resulting Outcome plus the (possibly enriched) event.
func (eng *Engine) Process(e Event) (Outcome, Event) {
	rules := eng.store.Snapshot()

	var winner *Rule
	for i := range rules {
		r := rules[i]
		if !r.Enabled {
			continue
		}
		if !r.matches(e, eng.intel) {
			continue
		}
		if winner == nil || r.Priority > winner.Priority || (r.Priority == winner.Priority && r.ID < winner.ID) {
			rCopy := r
			winner = &rCopy
		}
	}

	warn := eng.trackBehavioralSideEffects(e)

	if winner == nil {
		return OutcomePass, e
	}

	if winner.Kind == KindBehavioral && warn && winner.Action == ActionPass {
		winner.Action = ActionFlag
	}

	eng.store.RecordMatch(winner.ID, time.Now())

	switch winner.Action {
	case ActionDrop:
		return OutcomeDrop, e
	case ActionFlag:
		return OutcomeFlag, eng.enrich(e, *winner)
	case ActionEnrich:
		return OutcomeEnrich, eng.enrich(e, *winner)
	default:
		return OutcomePass, e
	}
}

// trackBehavioralSideEffects updates session/process observation state
// for login- and process-flavored events, independent of whether a rule
// actually matched, and reports whether either crossed its warning
// threshold.
func (eng *Engine) trackBehavioralSideEffects(e Event) bool {
	if eng.behavioral == nil {
		return false
	}

	eventType, _ := stringField(e, "event_type")
	user, _ := stringField(e, "user")
	if user == "" {
		return false
	}

	switch strings.ToLower(eventType) {
	case "login", "login_failed":
		sourceIP, _ := stringField(e, "source_ip")
		return eng.behavioral.TrackLogin(user, sourceIP)
	case "process":
		proc, _ := stringField(e, "process")
		if proc == "" {
			return false
		}
		return eng.behavioral.TrackProcess(user, proc)
	default:
		return false
	}
}
