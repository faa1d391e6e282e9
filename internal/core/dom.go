// Package core defines the DOM abstraction and shared value types used by
// every contract component (parser, namespace resolver, walker, classifier,
// fast-click machine, delegated handler, registry). It has no dependency on
// a concrete DOM binding: internal/domwasm (syscall/js, real browsers) and
// internal/domfake (in-memory, tests) both implement these
// interfaces.
package core

// Node is the minimal walkable unit of the host document tree.
type Node interface {
	// ParentNode returns the logical parent used for ancestor walking: the
	// node's Owner override if one is set (logical re-parenting for shadow
	// or virtualized trees), otherwise its real DOM parentNode. ok is false
	// at the root of the tree.
	ParentNode() (Node, bool)

	// Element returns this node as an Element, if it is one. Text/comment
	// nodes return ok=false.
	Element() (Element, bool)
}

// Element is a Node that can carry attributes and be an event target.
type Element interface {
	Node

	// TagName returns the element's tag name, upper-cased (e.g. "DIV", "A").
	TagName() string

	// GetAttribute reads an attribute value defensively: some detached or
	// foreign nodes do not expose an attribute accessor at all, in which
	// case ok is false and the caller treats it as absent (never an error).
	GetAttribute(name string) (value string, ok bool)

	// Same reports whether two Elements refer to the same underlying node.
	// Element values are not required to be comparable with ==.
	Same(other Element) bool
}

// DOMEvent is the raw event delivered to a registered listener. Semantics
// mirror the subset of the DOM Event/MouseEvent/TouchEvent/KeyboardEvent/
// CustomEvent interfaces the contract actually consults.
type DOMEvent interface {
	// Type is the raw DOM event type ("click", "touchstart", "keydown", ...).
	Type() string

	// Target is the original event target.
	Target() Element

	// RelatedTarget is set for mouseover/mouseout (ok is false otherwise).
	RelatedTarget() (Element, bool)

	// Modifier keys, relevant to click vs clickmod classification.
	CtrlKey() bool
	MetaKey() bool
	ShiftKey() bool
	AltKey() bool

	// Button is the MouseEvent.button value (0 = left/primary, 1 = middle).
	Button() int

	// KeyCode is the KeyboardEvent.keyCode (or .which) value.
	KeyCode() int

	// TouchCount is TouchEvent.targetTouches.length; >1 disables fast-click
	// for that event (explicit multi-touch bailout, spec.md §9).
	TouchCount() int

	// Coordinates returns the event's viewport (clientX, clientY). ok is
	// false for event types that carry no coordinates.
	Coordinates() (x, y float64, ok bool)

	// TimeStamp is captured once, at Event Record construction, and is
	// preserved across resolution even if the walk restarts.
	TimeStamp() float64

	DefaultPrevented() bool
	PreventDefault()
	StopPropagation()

	// PropagationPath returns the event's composed propagation path from
	// target to root, for event-path walking mode. ok is false if the host
	// binding does not support composedPath().
	PropagationPath() ([]Element, bool)

	// CustomType extracts detail._type from a CustomEvent. ok is false if
	// this is not a custom event or the inner type is missing.
	CustomType() (string, bool)

	// SyntheticTag reports the fast-click sentinel tag set on a
	// synthesized click, so the suppression sweeper can recognize and let
	// it pass through instead of re-suppressing it.
	SyntheticTag() (string, bool)

	// Clone produces a value snapshot of the event whose field values
	// survive past the synchronous dispatch window (hosts may recycle or
	// invalidate the live event object once the handler returns). Clone is
	// only required when an Event Record is queued rather than dispatched
	// immediately.
	Clone() DOMEvent
}
