package core

// ActionMap is the parsed form of a jsaction attribute: eventType -> action
// name (possibly namespace-qualified). At most one action per event type;
// unknown event types simply have no entry.
type ActionMap map[string]string

// EmptyActionMap is the process-wide immutable sentinel bound to any
// element with no (or an empty) jsaction attribute, so attribute-less
// elements never each carry their own allocation.
var EmptyActionMap = ActionMap{}

// Clone returns a shallow copy of m, used when namespace qualification must
// rewrite values without mutating a cached, published map.
func (m ActionMap) Clone() ActionMap {
	if len(m) == 0 {
		return EmptyActionMap
	}
	out := make(ActionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// EventRecord is the structured value the contract hands to the dispatcher
// (or queues) for every observed event.
type EventRecord struct {
	// EventType is the semantic event type the action was resolved under
	// ("click", "clickmod", "clickkey", "mouseenter", ...), not necessarily
	// the raw DOM event type.
	EventType string

	// Event is the DOM event, possibly a Clone() taken to survive past the
	// synchronous dispatch window (see DOMEvent.Clone).
	Event DOMEvent

	// TargetElement is the original event target.
	TargetElement Element

	// Action is the resolved action name, empty if no ancestor matched.
	Action string

	// ActionElement is the ancestor that bound Action, nil if none matched.
	ActionElement Element

	// TimeStamp is captured once at record construction.
	TimeStamp float64
}

// Global returns a copy of the record with Action/ActionElement cleared and
// EventType "clickonly" rewritten back to "click", for the pre-match global
// event record every dispatch-wide listener observes (spec.md §4.6 step 3).
func (r EventRecord) Global() EventRecord {
	g := r
	g.Action = ""
	g.ActionElement = nil
	if g.EventType == "clickonly" {
		g.EventType = "click"
	}
	return g
}
