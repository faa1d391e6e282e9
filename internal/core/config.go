package core

// ErrorReporter receives a recovered panic value from a defensive operation
// (e.g. blur()/selection-clear in the fast-click path) instead of letting it
// vanish silently. Optional; nil disables reporting.
type ErrorReporter func(recovered any, where string)

// Config holds the contract's feature flags. The source keeps these as
// compile-time constants (USE_EVENT_PATH, JSNAMESPACE_SUPPORT, ...) so a
// disabled subsystem can be dead-code-eliminated from the shipped bundle;
// here they are an explicit, immutable-after-construction struct so that
// multiple independent Contracts can coexist in one process and tests are
// deterministic (spec.md §9).
type Config struct {
	// UseEventPath selects event-path walking (composedPath()) over the
	// default DOM-parent walk.
	UseEventPath bool

	// NamespaceSupport enables jsnamespace qualification of bare action
	// names.
	NamespaceSupport bool

	// A11yClickSupport maps Enter/Space keydown on focusable elements to a
	// synthetic "clickkey" semantic event.
	A11yClickSupport bool

	// MouseSpecialSupport enables mouseenter/mouseleave emulation from
	// mouseover/mouseout.
	MouseSpecialSupport bool

	// FastClickSupport enables the touch-to-click synthesis state machine.
	FastClickSupport bool

	// StopPropagation calls stopPropagation on every handled event except
	// the Gecko + focus + input/textarea caret-breaking case.
	StopPropagation bool

	// CustomEventSupport enables custom event dispatch via detail._type.
	CustomEventSupport bool

	// DefaultEventType is used for jsaction clauses with no explicit
	// "type:" prefix. Mutable via SetDefaultEventType; initially "click".
	DefaultEventType string

	// ErrorReporter optionally observes recovered panics from defensive
	// operations. Never required for correctness.
	ErrorReporter ErrorReporter
}

// DefaultConfig returns the contract's default feature set: every
// subsystem enabled, DOM-parent walking, default event type "click".
func DefaultConfig() Config {
	return Config{
		UseEventPath:        false,
		NamespaceSupport:    true,
		A11yClickSupport:    true,
		MouseSpecialSupport: true,
		FastClickSupport:    true,
		StopPropagation:     true,
		CustomEventSupport:  true,
		DefaultEventType:    "click",
	}
}

// Report forwards a recovered value to the configured ErrorReporter, if
// any. Never panics itself.
func (c Config) Report(recovered any, where string) {
	if c.ErrorReporter == nil || recovered == nil {
		return
	}
	defer func() { _ = recover() }()
	c.ErrorReporter(recovered, where)
}
