// Package jsaction implements a declarative, DOM-event-delegation contract:
// a page declares jsaction="click:action" attributes instead of wiring a
// listener per element, and one Contract instance per container subtree
// resolves, classifies, and (optionally) synthesizes the events those
// attributes bind to, handing structured Event Records to an attached
// Dispatcher or queuing them until one is attached.
package jsaction

import (
	"sync"

	"github.com/jsaction-go/contract/internal/classify"
	"github.com/jsaction-go/contract/internal/core"
	"github.com/jsaction-go/contract/internal/delegate"
	"github.com/jsaction-go/contract/internal/fastclick"
	"github.com/jsaction-go/contract/internal/nsresolve"
	"github.com/jsaction-go/contract/internal/parser"
	"github.com/jsaction-go/contract/internal/registry"
)

// Re-exported value types, so callers never need to import internal/core.
type (
	// EventRecord is the structured value handed to a Dispatcher.
	EventRecord = core.EventRecord
	// ActionMap is the parsed form of one element's jsaction attribute.
	ActionMap = core.ActionMap
	// Config holds a Contract's feature flags; see DefaultConfig.
	Config = core.Config
	// Element is the minimal DOM element a host binding must provide.
	Element = core.Element
	// DOMEvent is the raw event a host binding delivers to a Contract.
	DOMEvent = core.DOMEvent
	// ContainerHandle identifies a registered container, for removal.
	ContainerHandle = registry.Handle
)

// DefaultConfig returns the contract's default feature set (every subsystem
// on, DOM-parent walking, default event type "click").
func DefaultConfig() core.Config { return core.DefaultConfig() }

// Dispatcher receives the Event Records a Contract produces. DispatchOne
// delivers a single freshly-resolved record as it happens; DispatchBatch
// delivers either the one-record global pre-match notification
// (isGlobal=true) or the backlog flushed from the pre-dispatcher queue the
// moment a Dispatcher first attaches (isGlobal=false). Split from the
// source's single `dispatch(records, isGlobal)` union signature into two
// methods (see DESIGN.md) because Go has no natural "maybe a slice, maybe
// one value" union.
type Dispatcher interface {
	DispatchOne(record core.EventRecord)
	DispatchBatch(records []core.EventRecord, isGlobal bool)
}

// Binding is what a host DOM implementation must supply so a Contract can
// install native listeners and synthesize clicks, without depending on a
// concrete binding (internal/domwasm, internal/domfake) itself.
type Binding interface {
	// AddEventListener installs handler for eventType on el, returning an
	// opaque reference used later for exact removal.
	AddEventListener(el core.Element, eventType string, handler func(core.DOMEvent)) (listenerRef any)
	// RemoveEventListener detaches a previously installed listener.
	RemoveEventListener(el core.Element, eventType string, listenerRef any)
	// NewSyntheticClick constructs a "click" DOMEvent targeting el at
	// (x, y), tagged so the fast-click suppression sweep recognizes it.
	NewSyntheticClick(el core.Element, x, y float64) core.DOMEvent
	// GeckoFocusCaretException reports whether stopPropagation must be
	// skipped for this (semantic type, target) pair — Gecko's
	// focus-on-input/textarea caret-positioning bug (spec.md §4.6 step 5).
	// A binding with no such quirk (e.g. internal/domfake) always returns
	// false.
	GeckoFocusCaretException(semanticType string, target core.Element) bool
	// IsIOS reports whether the user agent matches iPhone/iPad/iPod
	// (spec.md §4.7), gating the cursor:pointer bubble-fix workaround. A
	// binding with no real user agent (e.g. internal/domfake) always
	// returns false.
	IsIOS() bool
}

// eventTypeRegistration records enough to install a handler's listener on
// newly added containers (registry.Installer) and to know which raw
// listener types back one registered semantic event name.
type eventTypeRegistration struct {
	handler *delegate.Handler
	natives []string
}

// Contract is one declarative event-delegation domain: a set of registered
// event types, a set of registered containers, a shared attribute/namespace
// cache, and a shared fast-click machine.
type Contract struct {
	cfg     core.Config
	binding Binding

	attrs *parser.Cache
	ns    *nsresolve.Resolver
	fc    *fastclick.Machine

	registry *registry.Registry

	mu         sync.Mutex
	registered map[string]*eventTypeRegistration // semantic name -> registration
	dispatcher Dispatcher
	queue      []core.EventRecord
	recorder   Recorder
}

// Recorder observes a Contract's operation for internal/metrics, without
// the contract package depending on Prometheus. A nil Recorder (the
// default) costs nothing beyond the nil check.
type Recorder interface {
	RecordDispatch(semanticType string, global, matched bool)
	RecordQueueDepth(depth int)
	RecordContainers(active, nested int)
}

// SetRecorder attaches r to observe this Contract's dispatch, queue, and
// container-registration activity.
func (c *Contract) SetRecorder(r Recorder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorder = r
}

// NewContract creates a Contract bound to a host DOM binding.
func NewContract(cfg core.Config, binding Binding) *Contract {
	c := &Contract{
		cfg:        cfg,
		binding:    binding,
		registered: make(map[string]*eventTypeRegistration),
	}
	c.ns = nsresolve.New()
	resolveNS := nsresolve.NamespaceResolver(nil)
	if cfg.NamespaceSupport {
		resolveNS = c.ns.Resolve
	}
	c.attrs = parser.New(cfg.DefaultEventType, resolveNS)

	if cfg.FastClickSupport {
		c.fc = fastclick.New(fastclick.Hooks{
			Blur:           func() { blurActiveElement(binding) },
			ClearSelection: func() { clearSelection(binding) },
			Report:         func(recovered any, where string) { cfg.Report(recovered, where) },
		})
	}

	c.registry = registry.New(cfg.StopPropagation, binding.IsIOS(), func(container core.Element, eventType string, ref any) {
		binding.RemoveEventListener(container, eventType, ref)
	})
	return c
}

// SetDefaultEventType changes the default event type used for jsaction
// clauses with no explicit "type:" prefix (spec.md §4.1 step 5).
func (c *Contract) SetDefaultEventType(t string) { c.attrs.SetDefaultEventType(t) }

// AddEvent registers name ("click", "mouseenter", a custom event name,
// ...) for delegation. When FastClickSupport is on and name is "click",
// touchstart/touchend/touchmove are also wired so the fast-click machine
// observes the full touch sequence (spec.md §4.8).
func (c *Contract) AddEvent(name string) {
	c.mu.Lock()
	if _, exists := c.registered[name]; exists {
		c.mu.Unlock()
		return
	}

	handler := delegate.New(c.cfg, c.attrs, c.ns, c.fc, c, c.binding.GeckoFocusCaretException, c.binding.NewSyntheticClick)
	reg := &eventTypeRegistration{handler: handler, natives: nativesFor(name, c.cfg.FastClickSupport, c.cfg.A11yClickSupport)}
	c.registered[name] = reg
	c.mu.Unlock()

	for _, native := range reg.natives {
		native := native
		c.registry.AddEvent(native, func(container core.Element) any {
			return c.binding.AddEventListener(container, native, func(event core.DOMEvent) {
				handler.Handle(native, event, container)
			})
		})
	}
}

// nativesFor returns the raw DOM listener types one semantic registration
// must install. Registering "click" also wires the touch sequence (when
// FastClickSupport is on) and keydown (when A11yClickSupport is on, so
// Enter/Space on a click-bound element classifies as "clickkey" through
// this same handler, sharing its click/clickonly action-lookup fallback).
func nativesFor(name string, fastClick, a11yClick bool) []string {
	switch name {
	case classify.Click:
		natives := []string{"click"}
		if fastClick {
			natives = append(natives, "touchstart", "touchmove", "touchend", "mousedown", "mouseup")
		}
		if a11yClick {
			natives = append(natives, "keydown")
		}
		return natives
	case classify.MouseEnter:
		return []string{"mouseover"}
	case classify.MouseLeave:
		return []string{"mouseout"}
	default:
		return []string{name}
	}
}

// AddContainer registers root as a delegation container. Returns a handle
// for later RemoveContainer.
func (c *Contract) AddContainer(root core.Element) ContainerHandle {
	h := c.registry.AddContainer(root)
	c.recordContainers()
	return h
}

// RemoveContainer unregisters a previously added container.
func (c *Contract) RemoveContainer(h ContainerHandle) {
	c.registry.RemoveContainer(h)
	c.recordContainers()
}

func (c *Contract) recordContainers() {
	c.mu.Lock()
	r := c.recorder
	c.mu.Unlock()
	if r == nil {
		return
	}
	active, nested := c.registry.Counts()
	r.RecordContainers(active, nested)
}

// DispatchTo attaches d as the Contract's dispatcher, flushing any Event
// Records accumulated in the pre-dispatcher queue to it as one batch
// (spec.md §4.9 drain-once semantics: the queue is emptied and never
// refilled once a dispatcher is attached).
func (c *Contract) DispatchTo(d Dispatcher) {
	c.mu.Lock()
	c.dispatcher = d
	backlog := c.queue
	c.queue = nil
	c.mu.Unlock()

	if len(backlog) > 0 {
		d.DispatchBatch(backlog, false)
	}
}

// Attached implements delegate.Sink.
func (c *Contract) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatcher != nil
}

// DispatchGlobal implements delegate.Sink.
func (c *Contract) DispatchGlobal(record core.EventRecord) {
	c.mu.Lock()
	d, r := c.dispatcher, c.recorder
	c.mu.Unlock()
	if r != nil {
		r.RecordDispatch(record.EventType, true, false)
	}
	if d != nil {
		d.DispatchBatch([]core.EventRecord{record}, true)
	}
}

// DispatchMatched implements delegate.Sink.
func (c *Contract) DispatchMatched(record core.EventRecord) {
	c.mu.Lock()
	d, r := c.dispatcher, c.recorder
	c.mu.Unlock()
	if r != nil {
		r.RecordDispatch(record.EventType, false, true)
	}
	if d != nil {
		d.DispatchOne(record)
	}
}

// Enqueue implements delegate.Sink.
func (c *Contract) Enqueue(record core.EventRecord) {
	c.mu.Lock()
	d, r := c.dispatcher, c.recorder
	var depth int
	if d == nil {
		c.queue = append(c.queue, record)
		depth = len(c.queue)
	}
	c.mu.Unlock()

	if r != nil {
		r.RecordDispatch(record.EventType, false, true)
		if d == nil {
			r.RecordQueueDepth(depth)
		}
	}
	// A dispatcher attached between the Attached() check in
	// internal/delegate and this call; don't drop the record.
	if d != nil {
		d.DispatchOne(record)
	}
}

// QueueDepth reports the number of records currently queued, for
// internal/metrics.
func (c *Contract) QueueDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// ActiveContainers reports every currently active container root, for
// internal/metrics and internal/inspector.
func (c *Contract) ActiveContainers() []core.Element { return c.registry.ActiveContainers() }

// ContainerCounts reports (active, nested) container counts.
func (c *Contract) ContainerCounts() (active, nested int) { return c.registry.Counts() }

// FastClickState reports the fast-click machine's current phase, or
// fastclick.IDLE if fast-click is disabled.
func (c *Contract) FastClickState() fastclick.State {
	if c.fc == nil {
		return fastclick.IDLE
	}
	return c.fc.State()
}

func blurActiveElement(b Binding) {
	type blurrer interface{ BlurActiveElement() }
	if bl, ok := b.(blurrer); ok {
		bl.BlurActiveElement()
	}
}

func clearSelection(b Binding) {
	type selectionClearer interface{ ClearSelection() }
	if sc, ok := b.(selectionClearer); ok {
		sc.ClearSelection()
	}
}
