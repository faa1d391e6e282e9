// Package delegate implements the delegated handler (C6): the
// per-event-type, per-container listener that glues the classifier,
// ancestor walker, and fast-click machine together, produces an Event
// Record, and either dispatches or queues it.
package delegate

import (
	"github.com/jsaction-go/contract/internal/classify"
	"github.com/jsaction-go/contract/internal/core"
	"github.com/jsaction-go/contract/internal/fastclick"
	"github.com/jsaction-go/contract/internal/nsresolve"
	"github.com/jsaction-go/contract/internal/parser"
	"github.com/jsaction-go/contract/internal/walker"
)

// Sink receives the records a Handler produces. Implemented by the root
// Contract, which alone knows whether a dispatcher is currently attached.
type Sink interface {
	// Attached reports whether a dispatcher is currently attached.
	Attached() bool
	// DispatchGlobal is invoked only when Attached(), once per handled
	// native event (even on no match), with Action/ActionElement cleared.
	DispatchGlobal(core.EventRecord)
	// DispatchMatched is invoked only when Attached() and the walk
	// matched.
	DispatchMatched(core.EventRecord)
	// Enqueue is invoked only when !Attached() and the walk matched. The
	// record's Event has already been Clone()d.
	Enqueue(core.EventRecord)
}

// eventTarget adapts a core.Element into fastclick.Target.
type eventTarget struct{ core.Element }

func (e eventTarget) Same(other fastclick.Target) bool {
	o, ok := other.(eventTarget)
	return ok && e.Element.Same(o.Element)
}

func asTarget(el core.Element) fastclick.Target {
	if el == nil {
		return nil
	}
	return eventTarget{el}
}

// Handler is the contract-wide delegated listener, constructed once per
// registered semantic event type by the root Contract (spec.md §4.6: "one
// handler... per registered semantic event type").
type Handler struct {
	cfg                 core.Config
	attrs               *parser.Cache
	walk                walker.Walker
	fc                  *fastclick.Machine
	sink                Sink
	geckoCaretException func(nativeType string, target core.Element) bool
	newSynthClick       func(target core.Element, x, y float64) core.DOMEvent
}

// New creates a delegated handler. attrs and ns are shared across every
// Handler the Contract constructs (one parsed-attribute cache, one
// namespace cache, whatever the number of registered event types); fc is
// shared similarly — spec.md §3's invariant of "at most one in-flight
// fast-click sequence at a time" only holds if every handler shares the
// same Machine. geckoCaretException implements the Gecko-focus-on-
// input/textarea stopPropagation exception from spec.md §4.6 step 5; pass
// nil to never except (e.g. the fake DOM used in tests has no Gecko
// concept). newSynthClick constructs the DOM event fast-click dispatches
// on synthesis; unused (may be nil) when FastClickSupport is off.
func New(cfg core.Config, attrs *parser.Cache, _ *nsresolve.Resolver, fc *fastclick.Machine, sink Sink, geckoCaretException func(nativeType string, target core.Element) bool, newSynthClick func(target core.Element, x, y float64) core.DOMEvent) *Handler {
	return &Handler{
		cfg:                 cfg,
		attrs:               attrs,
		walk:                walker.New(cfg.UseEventPath),
		fc:                  fc,
		sink:                sink,
		geckoCaretException: geckoCaretException,
		newSynthClick:       newSynthClick,
	}
}

// Handle processes one raw DOM event of nativeType, fired on container.
func (h *Handler) Handle(nativeType string, event core.DOMEvent, container core.Element) {
	var midSequence classify.FastClickQuery
	if h.cfg.FastClickSupport && h.fc != nil {
		midSequence = func(core.DOMEvent) bool { return false } // ignore-on-entry is handled explicitly below, not via this hook
	}

	if h.cfg.FastClickSupport && h.fc != nil {
		switch nativeType {
		case "touchstart":
			h.handleTouchStart(event, container)
			return
		case "touchmove":
			h.handleTouchMove(event)
			// touchmove still participates in normal resolution below
		case "touchend":
			if h.handleTouchEnd(event, container) {
				return
			}
		}

		// handleTouchEnd's dispatch closure resolves the synthesized click
		// directly (resolveAndEmit), never through element.dispatchEvent, so the
		// isSynth branch here only guards a host binding that chooses to
		// redeliver it natively anyway; such a redelivery always passes
		// through untouched rather than being suppressed twice.
		if isMouseCascade(nativeType) {
			_, isSynth := event.SyntheticTag()
			if h.fc.OnMouseEvent(nativeType, asTarget(event.Target()), coordX(event), coordY(event), isSynth) {
				event.StopPropagation()
				event.PreventDefault()
				return
			}
			if nativeType == "mousedown" || nativeType == "mouseup" {
				// Installed only to sweep the mouse-event cascade a
				// synthesized click triggers (spec.md §4.8); never a
				// registered semantic event on their own.
				return
			}
		}
	}

	result := classify.Classify(nativeType, event, h.cfg.A11yClickSupport, h.cfg.MouseSpecialSupport, h.cfg.CustomEventSupport, midSequence)
	h.resolveAndEmit(result, event, container)
}

func isMouseCascade(nativeType string) bool {
	switch nativeType {
	case "mousedown", "mouseup", "click":
		return true
	default:
		return false
	}
}

func coordX(event core.DOMEvent) float64 { x, _, _ := event.Coordinates(); return x }
func coordY(event core.DOMEvent) float64 { _, y, _ := event.Coordinates(); return y }

// handleTouchStart evaluates fast-click eligibility (target not a native
// form control; target's own Action Map binds "click" but neither
// "touchstart" nor "touchend") and feeds the IDLE->PENDING transition.
func (h *Handler) handleTouchStart(event core.DOMEvent, container core.Element) {
	target := event.Target()
	am := h.attrs.ActionMapFor(target, container)
	_, hasClick := am[classify.Click]
	_, hasTouchStart := am[classify.TouchStart]
	_, hasTouchEnd := am[classify.TouchEnd]
	eligible := !formControl(target.TagName()) && hasClick && !hasTouchStart && !hasTouchEnd

	x, y, _ := event.Coordinates()
	ignore := h.fc.OnTouchStart(asTarget(target), x, y, eligible, event.TouchCount() > 1)

	if ignore {
		h.emitEmpty(classify.TouchStart, event)
		return
	}

	result := classify.Result{Tag: classify.TouchStart}
	h.resolveAndEmit(result, event, container)
}

func (h *Handler) handleTouchMove(event core.DOMEvent) {
	target := event.Target()
	x, y, _ := event.Coordinates()
	h.fc.OnTouchMove(asTarget(target), x, y)
}

// handleTouchEnd feeds the PENDING->SUPPRESSING transition. Returns true
// if the touchend was claimed by fast-click (synthesized a click and
// suppressed the touchend itself), in which case the caller must not also
// run normal resolution for this touchend.
func (h *Handler) handleTouchEnd(event core.DOMEvent, container core.Element) bool {
	target := event.Target()
	x, y, _ := event.Coordinates()

	dispatch := func(t fastclick.Target, x, y float64) bool {
		et, ok := t.(eventTarget)
		if !ok || h.newSynthClick == nil {
			return false
		}
		synth := h.newSynthClick(et.Element, x, y)
		result := classify.Result{Tag: classify.Click}
		h.resolveAndEmit(result, synth, container)
		return synth.DefaultPrevented()
	}

	claimed := h.fc.OnTouchEnd(asTarget(target), x, y, event.DefaultPrevented(), dispatch)
	if !claimed {
		return false
	}
	event.StopPropagation()
	event.PreventDefault()
	return true
}

func formControl(tag string) bool {
	switch tag {
	case "INPUT", "TEXTAREA", "SELECT", "OPTION":
		return true
	default:
		return false
	}
}

// resolveAndEmit runs the ancestor walk for a classification result and
// emits/enqueues the resulting records, per spec.md §4.6 steps 2-7.
func (h *Handler) resolveAndEmit(result classify.Result, event core.DOMEvent, container core.Element) {
	if result.Dropped {
		return
	}
	if result.PreventDefault {
		event.PreventDefault()
	}
	if result.Ignore {
		h.emitEmpty(result.Tag, event)
		return
	}

	lookup := h.lookupFor(result.Tag, container)
	actionElement, action, matched := h.walk.Walk(event, event.Target(), container, lookup)

	record := core.EventRecord{
		EventType:     result.Tag,
		Event:         event,
		TargetElement: event.Target(),
		TimeStamp:     event.TimeStamp(),
	}
	if matched {
		record.Action = action
		record.ActionElement = actionElement
	}

	h.emit(record, matched)

	h.applyDefaults(result.Tag, event, record, matched)
}

func (h *Handler) emitEmpty(semanticType string, event core.DOMEvent) {
	record := core.EventRecord{
		EventType:     semanticType,
		Event:         event,
		TargetElement: event.Target(),
		TimeStamp:     event.TimeStamp(),
	}
	h.emit(record, false)
}

// emit implements spec.md §4.6 steps 3-4: dispatcher attached -> global
// record always, matched record if any; dispatcher absent -> enqueue a
// cloned matched record only.
func (h *Handler) emit(record core.EventRecord, matched bool) {
	if h.sink == nil {
		return
	}
	if h.sink.Attached() {
		h.sink.DispatchGlobal(record.Global())
		if matched {
			h.sink.DispatchMatched(record)
		}
		return
	}
	if matched {
		cloned := record
		cloned.Event = record.Event.Clone()
		h.sink.Enqueue(cloned)
	}
}

// applyDefaults implements spec.md §4.6 steps 5-6: stopPropagation (unless
// the Gecko+focus+input/textarea exception applies) and preventDefault on
// anchor click/clickmod matches.
func (h *Handler) applyDefaults(semanticType string, event core.DOMEvent, record core.EventRecord, matched bool) {
	if h.cfg.StopPropagation {
		exempt := h.geckoCaretException != nil && h.geckoCaretException(semanticType, event.Target())
		if !exempt {
			event.StopPropagation()
		}
	}

	if matched && (semanticType == classify.Click || semanticType == classify.ClickMod) && record.ActionElement != nil && record.ActionElement.TagName() == "A" {
		event.PreventDefault()
	}
}

// lookupFor returns the ActionLookup for semanticType, implementing the
// click/clickonly/clickkey key-fallback rules from spec.md §4.4: a real
// click matches "click" or "clickonly"; a synthesized clickkey matches
// only "click" (an element binding only "clickonly" never receives
// keyboard activation); every other semantic type matches its own key
// verbatim.
func (h *Handler) lookupFor(semanticType string, container core.Element) walker.ActionLookup {
	switch semanticType {
	case classify.Click:
		return func(el core.Element) (string, bool) {
			am := h.attrs.ActionMapFor(el, container)
			if a, ok := am[classify.Click]; ok {
				return a, true
			}
			a, ok := am[classify.ClickOnly]
			return a, ok
		}
	case classify.ClickKey:
		return func(el core.Element) (string, bool) {
			am := h.attrs.ActionMapFor(el, container)
			a, ok := am[classify.Click]
			return a, ok
		}
	default:
		return func(el core.Element) (string, bool) {
			am := h.attrs.ActionMapFor(el, container)
			a, ok := am[semanticType]
			return a, ok
		}
	}
}
