package domfake

import (
	"sync"

	"github.com/jsaction-go/contract/internal/core"
)

// listenerEntry is one installed (element, eventType) -> handler binding.
type listenerEntry struct {
	ref       int
	node      *Node
	eventType string
	fn        func(core.DOMEvent)
}

// Binding is an in-memory jsaction.Binding: Fire walks the event's target
// up through its ancestors (mirroring native bubbling) and invokes every
// installed listener it finds for the event's raw type, stopping early if
// a listener calls StopPropagation. Tests drive a Contract entirely
// through AddEventListener (installed by the Contract itself) and Fire
// (driven by the test).
type Binding struct {
	mu        sync.Mutex
	listeners []*listenerEntry
	nextRef   int

	blurred         int
	selectionClears int
}

// NewBinding creates an empty test binding.
func NewBinding() *Binding { return &Binding{} }

func (b *Binding) AddEventListener(el core.Element, eventType string, handler func(core.DOMEvent)) any {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextRef++
	entry := &listenerEntry{ref: b.nextRef, node: el.(*Node), eventType: eventType, fn: handler}
	b.listeners = append(b.listeners, entry)
	return entry.ref
}

func (b *Binding) RemoveEventListener(el core.Element, eventType string, listenerRef any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ref, ok := listenerRef.(int)
	if !ok {
		return
	}
	for i, entry := range b.listeners {
		if entry.ref == ref {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *Binding) NewSyntheticClick(el core.Element, x, y float64) core.DOMEvent {
	return NewEvent("click", el).WithCoordinates(x, y).WithSyntheticTag("_fastclick")
}

func (b *Binding) GeckoFocusCaretException(string, core.Element) bool { return false }

func (b *Binding) IsIOS() bool { return false }

func (b *Binding) BlurActiveElement() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blurred++
}

func (b *Binding) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectionClears++
}

// Blurred reports how many times BlurActiveElement fired, for assertions.
func (b *Binding) Blurred() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blurred
}

// SelectionClears reports how many times ClearSelection fired.
func (b *Binding) SelectionClears() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectionClears
}

// Fire simulates native dispatch: bubble event from its target up through
// ancestors, invoking every listener installed for event.Type() along the
// way, in nearest-first order, stopping once StopPropagation has been
// called.
func (b *Binding) Fire(event *Event) {
	cur, ok := event.Target().(*Node)
	if !ok {
		return
	}
	for {
		for _, entry := range b.matching(cur, event.Type()) {
			entry.fn(event)
			if event.Stopped() {
				return
			}
		}
		parent, ok := cur.ParentNode()
		if !ok {
			return
		}
		el, isEl := parent.Element()
		if !isEl {
			return
		}
		cur = el.(*Node)
	}
}

func (b *Binding) matching(node *Node, eventType string) []*listenerEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*listenerEntry
	for _, entry := range b.listeners {
		if entry.eventType == eventType && entry.node.Same(node) {
			out = append(out, entry)
		}
	}
	return out
}
