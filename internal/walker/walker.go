// Package walker implements the ancestor walker and action resolver (C3):
// starting from the event target, walk toward the container and return the
// first ancestor that binds the event's semantic type to an action.
//
// Two walking strategies exist (DOM-parent, the default, and event-path, an
// opt-in using the event's composedPath()) behind one interface, mirroring
// the teacher's core.EngineBackend strategy-interface pattern used there to
// switch V8/QuickJS behind one Engine facade.
package walker

import "github.com/jsaction-go/contract/internal/core"

// ActionLookup resolves the bound action (if any) for one element, already
// scoped to whatever action-map key fallback the caller's semantic event
// type requires (e.g. "click" falls back to "clickonly"; "clickkey" checks
// only "click"). Bound by internal/delegate to internal/parser.Cache.
type ActionLookup func(el core.Element) (action string, ok bool)

// Walker resolves the first ancestor of target, up to and including
// container, for which lookup returns a bound action.
type Walker interface {
	Walk(event core.DOMEvent, target, container core.Element, lookup ActionLookup) (actionElement core.Element, action string, matched bool)
}

// New returns the configured Walker: event-path when useEventPath is true
// and the host binding supports it, DOM-parent otherwise.
func New(useEventPath bool) Walker {
	if useEventPath {
		return eventPathWalker{fallback: domParentWalker{}}
	}
	return domParentWalker{}
}

// domParentWalker walks via Node.ParentNode (which already folds in any
// Owner() logical-reparenting override), the default mode.
type domParentWalker struct{}

func (domParentWalker) Walk(_ core.DOMEvent, target, container core.Element, lookup ActionLookup) (core.Element, string, bool) {
	cur := target
	for {
		if action, ok := lookup(cur); ok {
			return cur, action, true
		}
		if container != nil && cur.Same(container) {
			return nil, "", false
		}
		parent, ok := cur.ParentNode()
		if !ok {
			return nil, "", false
		}
		el, isEl := parent.Element()
		if !isEl {
			return nil, "", false
		}
		cur = el
	}
}

// eventPathWalker iterates the event's propagation path (composedPath())
// when the host binding supplies one; better performance with composed
// shadow trees. Falls back to domParentWalker when the binding doesn't
// support PropagationPath (equivalent semantics either way, per spec.md
// §4.3).
type eventPathWalker struct {
	fallback domParentWalker
}

func (w eventPathWalker) Walk(event core.DOMEvent, target, container core.Element, lookup ActionLookup) (core.Element, string, bool) {
	path, ok := event.PropagationPath()
	if !ok {
		return w.fallback.Walk(event, target, container, lookup)
	}

	for _, el := range path {
		if action, ok := lookup(el); ok {
			return el, action, true
		}
		if container != nil && el.Same(container) {
			return nil, "", false
		}
	}
	return nil, "", false
}
