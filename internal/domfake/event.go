package domfake

import "github.com/jsaction-go/contract/internal/core"

// Event is an in-memory core.DOMEvent, constructed directly by tests rather
// than produced by a browser.
type Event struct {
	typ     string
	target  core.Element
	related core.Element
	hasRel  bool

	ctrl, meta, shift, alt bool
	button                 int
	keyCode                int
	touchCount             int
	x, y                   float64
	hasCoords              bool

	timeStamp float64

	prevented bool
	stopped   bool

	path    []core.Element
	hasPath bool

	customType string
	hasCustom  bool

	synthTag  string
	hasSynth  bool
}

// NewEvent creates a bare event of the given raw type targeting target.
func NewEvent(typ string, target core.Element) *Event {
	return &Event{typ: typ, target: target}
}

// WithRelatedTarget sets RelatedTarget, for mouseover/mouseout fixtures.
func (e *Event) WithRelatedTarget(el core.Element) *Event {
	e.related, e.hasRel = el, true
	return e
}

// WithModifiers sets the modifier keys consulted for click vs clickmod.
func (e *Event) WithModifiers(ctrl, meta, shift, alt bool) *Event {
	e.ctrl, e.meta, e.shift, e.alt = ctrl, meta, shift, alt
	return e
}

// WithButton sets MouseEvent.button.
func (e *Event) WithButton(b int) *Event {
	e.button = b
	return e
}

// WithKeyCode sets KeyboardEvent.keyCode, for a11y-click fixtures.
func (e *Event) WithKeyCode(code int) *Event {
	e.keyCode = code
	return e
}

// WithTouchCount sets TouchEvent.targetTouches.length.
func (e *Event) WithTouchCount(n int) *Event {
	e.touchCount = n
	return e
}

// WithCoordinates sets clientX/clientY.
func (e *Event) WithCoordinates(x, y float64) *Event {
	e.x, e.y, e.hasCoords = x, y, true
	return e
}

// WithTimeStamp sets the captured Event Record timestamp.
func (e *Event) WithTimeStamp(ts float64) *Event {
	e.timeStamp = ts
	return e
}

// WithPropagationPath sets the composedPath() result, for event-path
// walking mode fixtures.
func (e *Event) WithPropagationPath(path []core.Element) *Event {
	e.path, e.hasPath = path, true
	return e
}

// WithCustomType sets detail._type, for custom-event fixtures.
func (e *Event) WithCustomType(t string) *Event {
	e.customType, e.hasCustom = t, true
	return e
}

// WithSyntheticTag marks the event as fast-click's synthesized click.
func (e *Event) WithSyntheticTag(tag string) *Event {
	e.synthTag, e.hasSynth = tag, true
	return e
}

func (e *Event) Type() string   { return e.typ }
func (e *Event) Target() core.Element { return e.target }

func (e *Event) RelatedTarget() (core.Element, bool) { return e.related, e.hasRel }

func (e *Event) CtrlKey() bool  { return e.ctrl }
func (e *Event) MetaKey() bool  { return e.meta }
func (e *Event) ShiftKey() bool { return e.shift }
func (e *Event) AltKey() bool   { return e.alt }

func (e *Event) Button() int     { return e.button }
func (e *Event) KeyCode() int    { return e.keyCode }
func (e *Event) TouchCount() int { return e.touchCount }

func (e *Event) Coordinates() (float64, float64, bool) { return e.x, e.y, e.hasCoords }

func (e *Event) TimeStamp() float64 { return e.timeStamp }

func (e *Event) DefaultPrevented() bool { return e.prevented }
func (e *Event) PreventDefault()        { e.prevented = true }
func (e *Event) StopPropagation()       { e.stopped = true }

// Stopped reports whether StopPropagation was called, for test assertions.
func (e *Event) Stopped() bool { return e.stopped }

func (e *Event) PropagationPath() ([]core.Element, bool) { return e.path, e.hasPath }

func (e *Event) CustomType() (string, bool) { return e.customType, e.hasCustom }

func (e *Event) SyntheticTag() (string, bool) { return e.synthTag, e.hasSynth }

func (e *Event) Clone() core.DOMEvent {
	clone := *e
	return &clone
}

var _ core.DOMEvent = (*Event)(nil)
